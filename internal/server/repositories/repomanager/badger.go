package repomanager

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/kvx"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/users"
)

// BadgerRepositoryManager vends Badger document repositories over one
// embedded store.
type BadgerRepositoryManager struct {
	db    *badger.DB
	users *users.BadgerRepository
	notes *notes.BadgerRepository
}

// NewBadgerRepositoryManager opens the store in dir; an empty dir keeps
// everything in memory.
func NewBadgerRepositoryManager(dir string) (*BadgerRepositoryManager, error) {
	db, err := kvx.Open(dir)
	if err != nil {
		return nil, err
	}
	return &BadgerRepositoryManager{
		db:    db,
		users: users.NewBadgerRepository(db),
		notes: notes.NewBadgerRepository(db),
	}, nil
}

func (m *BadgerRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *BadgerRepositoryManager) Notes() notes.Repository {
	return m.notes
}

func (m *BadgerRepositoryManager) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return kvx.Wrap(err)
	}
	if m.db.IsClosed() {
		return fmt.Errorf("%w: badger is closed", common.ErrStoreUnavailable)
	}
	return nil
}

func (m *BadgerRepositoryManager) Close() error {
	return m.db.Close()
}
