// Package notes stores user notes.
package notes

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

// Repository is the note persistence layer. It does not decide who may see a
// note; Update and Delete still take the owner as a write condition so a
// note that changed hands or vanished after it was loaded is reported as
// common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id string) (*models.Note, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id, ownerID string) error
}
