package notes

import (
	"context"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/kvx"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

const (
	notePrefix       = "note:"
	ownerIndexPrefix = "note-owner:"
)

// BadgerRepository keeps each note as a JSON document under note:<id> with a
// note-owner:<owner>:<id> index key for listing.
type BadgerRepository struct {
	db *badger.DB
}

func NewBadgerRepository(db *badger.DB) *BadgerRepository {
	return &BadgerRepository{db: db}
}

func noteKey(id string) []byte {
	return []byte(notePrefix + id)
}

func ownerPrefix(ownerID string) []byte {
	return []byte(ownerIndexPrefix + ownerID + ":")
}

func ownerKey(ownerID, id string) []byte {
	return append(ownerPrefix(ownerID), id...)
}

func (r *BadgerRepository) Create(ctx context.Context, n *models.Note) error {
	if err := ctx.Err(); err != nil {
		return kvx.Wrap(err)
	}
	return kvx.Update(r.db, func(txn *badger.Txn) error {
		if err := kvx.SetJSON(txn, noteKey(n.ID), n); err != nil {
			return err
		}
		return txn.Set(ownerKey(n.OwnerID, n.ID), nil)
	})
}

func (r *BadgerRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, kvx.Wrap(err)
	}
	n := &models.Note{}
	err := kvx.View(r.db, func(txn *badger.Txn) error {
		return kvx.GetJSON(txn, noteKey(id), n)
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// ListByOwner returns the owner's notes sorted by models.CompareNotes.
func (r *BadgerRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, kvx.Wrap(err)
	}

	result := make([]*models.Note, 0)
	prefix := ownerPrefix(ownerID)
	err := kvx.View(r.db, func(txn *badger.Txn) error {
		for _, k := range kvx.KeysWithPrefix(txn, prefix) {
			id := strings.TrimPrefix(string(k), string(prefix))
			n := &models.Note{}
			if err := kvx.GetJSON(txn, noteKey(id), n); err != nil {
				return err
			}
			result = append(result, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(result, models.CompareNotes)
	return result, nil
}

func (r *BadgerRepository) Update(ctx context.Context, n *models.Note) error {
	if err := ctx.Err(); err != nil {
		return kvx.Wrap(err)
	}
	return kvx.Update(r.db, func(txn *badger.Txn) error {
		current := &models.Note{}
		if err := kvx.GetJSON(txn, noteKey(n.ID), current); err != nil {
			return err
		}
		if current.OwnerID != n.OwnerID {
			return common.ErrNotFound
		}
		current.Title = n.Title
		current.Content = n.Content
		current.UpdatedAt = n.UpdatedAt
		return kvx.SetJSON(txn, noteKey(n.ID), current)
	})
}

func (r *BadgerRepository) Delete(ctx context.Context, id, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return kvx.Wrap(err)
	}
	return kvx.Update(r.db, func(txn *badger.Txn) error {
		current := &models.Note{}
		if err := kvx.GetJSON(txn, noteKey(id), current); err != nil {
			return err
		}
		if current.OwnerID != ownerID {
			return common.ErrNotFound
		}
		if err := txn.Delete(noteKey(id)); err != nil {
			return err
		}
		return txn.Delete(ownerKey(ownerID, id))
	})
}
