// Package users stores registered accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

// Repository is the credential store. Create assigns a fresh ID and fails
// with common.ErrDuplicateEmail if the email is taken. GetByEmail is an exact
// match and fails with common.ErrNotFound, or common.ErrInconsistentState
// when more than one record matches.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
