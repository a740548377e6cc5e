package users

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/kvx"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/timex"
	"github.com/google/uuid"
)

const (
	userPrefix       = "user:"
	emailIndexPrefix = "user-email:"
)

// BadgerRepository keeps each user as a JSON document under user:<id> and
// enforces email uniqueness through a user-email:<email> index key written
// in the same transaction.
type BadgerRepository struct {
	db *badger.DB
}

func NewBadgerRepository(db *badger.DB) *BadgerRepository {
	return &BadgerRepository{db: db}
}

func userKey(id string) []byte {
	return []byte(userPrefix + id)
}

func emailKey(email string) []byte {
	return []byte(emailIndexPrefix + email)
}

func (r *BadgerRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, kvx.Wrap(err)
	}

	u := *user
	u.ID = uuid.NewString()
	u.CreatedAt = timex.StorageTime(time.Now())

	err := kvx.Update(r.db, func(txn *badger.Txn) error {
		taken, err := kvx.Exists(txn, emailKey(u.Email))
		if err != nil {
			return err
		}
		if taken {
			return common.ErrDuplicateEmail
		}
		if err := txn.Set(emailKey(u.Email), []byte(u.ID)); err != nil {
			return err
		}
		return kvx.SetJSON(txn, userKey(u.ID), &u)
	})
	if errors.Is(err, badger.ErrConflict) {
		// Lost twice to a concurrent writer of the same email.
		return nil, common.ErrDuplicateEmail
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *BadgerRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, kvx.Wrap(err)
	}

	u := &models.User{}
	err := kvx.View(r.db, func(txn *badger.Txn) error {
		item, err := txn.Get(emailKey(email))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return common.ErrNotFound
			}
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := kvx.GetJSON(txn, userKey(string(id)), u); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrInconsistentState
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u, nil
}
