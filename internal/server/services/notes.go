package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/timex"
	"github.com/google/uuid"
)

// NoteService scopes every note operation to the caller. A note that does not
// exist and a note owned by someone else are both common.ErrNotFound.
type NoteService struct {
	notes notes.Repository
	now   func() time.Time
	log   logging.Logger
}

// NoteOption customises a NoteService.
type NoteOption func(*NoteService)

// WithNoteClock replaces time.Now.
func WithNoteClock(now func() time.Time) NoteOption {
	return func(s *NoteService) { s.now = now }
}

func NewNoteService(repo notes.Repository, log logging.Logger, opts ...NoteOption) *NoteService {
	s := &NoteService{
		notes: repo,
		now:   time.Now,
		log:   log.With("module", "notes"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *NoteService) Create(ctx context.Context, ownerID, title, content string) (*models.Note, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthorized
	}

	now := timex.StorageTime(s.now())
	n := &models.Note{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.notes.Create(ctx, n); err != nil {
		s.log.Error(ctx, "create note failed", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return n, nil
}

// ListByOwner returns the owner's notes, most recently updated first. The
// result is never nil.
func (s *NoteService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthorized
	}

	list, err := s.notes.ListByOwner(ctx, ownerID)
	if err != nil {
		s.log.Error(ctx, "list notes failed", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("error listing notes: %w", err)
	}

	result := make([]*models.Note, 0, len(list))
	for _, n := range list {
		// Backends are trusted to filter, but a stray record must never leak.
		if n.OwnerID == ownerID {
			result = append(result, normalize(n))
		}
	}
	slices.SortFunc(result, models.CompareNotes)
	return result, nil
}

func (s *NoteService) GetByID(ctx context.Context, noteID, ownerID string) (*models.Note, error) {
	return s.loadAndAuthorize(ctx, noteID, ownerID)
}

// Update overwrites title and content. UpdatedAt always moves forward past
// its previous value.
func (s *NoteService) Update(ctx context.Context, noteID, ownerID, title, content string) (*models.Note, error) {
	n, err := s.loadAndAuthorize(ctx, noteID, ownerID)
	if err != nil {
		return nil, err
	}

	now := timex.StorageTime(s.now())
	if !now.After(n.UpdatedAt) {
		now = n.UpdatedAt.Add(time.Microsecond)
	}
	n.Title = title
	n.Content = content
	n.UpdatedAt = now

	if err := s.notes.Update(ctx, n); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		s.log.Error(ctx, "update note failed", "note_id", noteID, "error", err)
		return nil, fmt.Errorf("error updating note: %w", err)
	}
	return n, nil
}

// Delete reports false, without an error, when the note is absent or owned
// by someone else.
func (s *NoteService) Delete(ctx context.Context, noteID, ownerID string) (bool, error) {
	if _, err := s.loadAndAuthorize(ctx, noteID, ownerID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.notes.Delete(ctx, noteID, ownerID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		s.log.Error(ctx, "delete note failed", "note_id", noteID, "error", err)
		return false, fmt.Errorf("error deleting note: %w", err)
	}
	return true, nil
}

// loadAndAuthorize is the single ownership check for id-based operations.
func (s *NoteService) loadAndAuthorize(ctx context.Context, noteID, ownerID string) (*models.Note, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthorized
	}
	if _, err := uuid.Parse(noteID); err != nil {
		return nil, common.ErrNotFound
	}

	n, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		s.log.Error(ctx, "load note failed", "note_id", noteID, "error", err)
		return nil, fmt.Errorf("error loading note: %w", err)
	}

	if n.OwnerID != ownerID {
		s.log.Warn(ctx, "note access denied", "note_id", noteID, "owner_id", ownerID)
		return nil, common.ErrNotFound
	}
	return normalize(n), nil
}

func normalize(n *models.Note) *models.Note {
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = n.UpdatedAt.UTC()
	return n
}
