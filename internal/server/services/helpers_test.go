package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dmitrijs2005/notekeeper/internal/kvx"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func openStore(t *testing.T) *badger.DB {
	t.Helper()
	db, err := kvx.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestUserService(t *testing.T, repo users.Repository) (*UserService, *auth.TokenService) {
	t.Helper()
	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(testSecret, "HS256")
	require.NoError(t, err)
	svc, err := NewUserService(repo, hasher, tokens, 30*time.Minute, logging.Nop())
	require.NoError(t, err)
	return svc, tokens
}

// stepClock returns strictly increasing times one second apart.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// fixedClock always returns the same instant.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// fakeNotesRepo wraps a real repository and lets tests inject failures or
// simulate a note disappearing between load and write.
type fakeNotesRepo struct {
	notes.Repository
	getErr    error
	listOut   []*models.Note
	updateErr error
	deleteErr error
}

func (f *fakeNotesRepo) GetByID(ctx context.Context, id string) (*models.Note, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Repository.GetByID(ctx, id)
}

func (f *fakeNotesRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	if f.listOut != nil {
		return f.listOut, nil
	}
	return f.Repository.ListByOwner(ctx, ownerID)
}

func (f *fakeNotesRepo) Update(ctx context.Context, n *models.Note) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.Repository.Update(ctx, n)
}

func (f *fakeNotesRepo) Delete(ctx context.Context, id, ownerID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.Repository.Delete(ctx, id, ownerID)
}

type fakeUsersRepo struct {
	getOut *models.User
	getErr error
	calls  int
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	return nil, f.getErr
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.calls++
	return f.getOut, f.getErr
}
