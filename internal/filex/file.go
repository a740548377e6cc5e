// Package filex prepares on-disk locations for local storage.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDataDir resolves dir to an absolute path and creates it, owner-only,
// if it does not exist yet. A relative dir is taken from the working
// directory.
func EnsureDataDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}
