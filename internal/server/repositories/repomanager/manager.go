// Package repomanager builds the repositories for the configured storage
// backend and owns the single shared storage client.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories sharing one storage client.
type RepositoryManager interface {
	Users() users.Repository
	Notes() notes.Repository
	Ping(ctx context.Context) error
	Close() error
}

// New opens the backend selected by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		return NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	case config.DriverBadger:
		return NewBadgerRepositoryManager(cfg.BadgerDir)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
