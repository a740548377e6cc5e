package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is bcrypt's input limit. Longer passwords are rejected
// instead of being silently truncated.
const MaxPasswordBytes = 72

// wipe clears plaintext copies once bcrypt is done with them.
var wipe = common.WipeByteArray

var passwordTooLongDetail = fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes)

// PasswordHasher hashes and verifies passwords with bcrypt. Every Hash call
// draws a fresh random salt, so equal passwords hash to different values.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using the given bcrypt cost. A cost of
// zero selects bcrypt.DefaultCost.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &PasswordHasher{cost: cost}, nil
}

// Hash returns the bcrypt hash of plaintext.
func (h *PasswordHasher) Hash(plaintext string) ([]byte, error) {
	if len(plaintext) > MaxPasswordBytes {
		return nil, common.Invalid(passwordTooLongDetail)
	}

	pw := []byte(plaintext)
	defer wipe(pw)

	hash, err := bcrypt.GenerateFromPassword(pw, h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, common.Invalid(passwordTooLongDetail)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// Verify reports whether plaintext matches storedHash. A malformed or empty
// stored hash never matches.
func (h *PasswordHasher) Verify(plaintext string, storedHash []byte) bool {
	if len(storedHash) == 0 {
		return false
	}
	pw := []byte(plaintext)
	defer wipe(pw)

	return bcrypt.CompareHashAndPassword(storedHash, pw) == nil
}
