package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("loads from json", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"http_addr":        "127.0.0.1:8080",
			"grpc_addr":        ":50051",
			"storage_driver":   "badger",
			"badger_dir":       "/var/lib/notes",
			"secret_key":       testSecret,
			"jwt_algorithm":    "HS512",
			"access_token_ttl": "15m",
			"bcrypt_cost":      11,
			"cors_origins":     []string{"https://notes.example"},
			"log_level":        "debug",
			"log_format":       "text",
			"shutdown_timeout": "3s",
		})
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg))

		assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddr)
		assert.Equal(t, ":50051", cfg.GRPCAddr)
		assert.Equal(t, DriverBadger, cfg.StorageDriver)
		assert.Equal(t, "/var/lib/notes", cfg.BadgerDir)
		assert.Equal(t, testSecret, cfg.SecretKey)
		assert.Equal(t, "HS512", cfg.JWTAlgorithm)
		assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
		assert.Equal(t, 11, cfg.BcryptCost)
		assert.Equal(t, []string{"https://notes.example"}, cfg.CORSOrigins)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("partial file keeps earlier values", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{"secret_key": testSecret})
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg))

		assert.Equal(t, ":8000", cfg.HTTPAddr)
		assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
		assert.Equal(t, testSecret, cfg.SecretKey)
	})

	t.Run("no config flag means no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{HTTPAddr: "defaults:1234", SecretKey: "key"}
		require.NoError(t, parseJson(cfg))

		assert.Equal(t, "defaults:1234", cfg.HTTPAddr)
		assert.Equal(t, "key", cfg.SecretKey)
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"testbin", "-config", bad}

		require.Error(t, parseJson(&Config{}))
	})

	t.Run("missing file", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(t.TempDir(), "absent.json")}

		require.Error(t, parseJson(&Config{}))
	})
}
