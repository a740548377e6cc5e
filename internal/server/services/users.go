// Package services contains server-side business logic. UserService handles
// registration and login; NoteService enforces note ownership.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/users"
)

// Session is the result of a successful login.
type Session struct {
	AccessToken string
	TokenType   string
	UserID      string
	ExpiresAt   time.Time
}

// UserService composes the credential store, password hashing and the token
// service.
type UserService struct {
	users     users.Repository
	hasher    *auth.PasswordHasher
	tokens    *auth.TokenService
	tokenTTL  time.Duration
	dummyHash []byte
	log       logging.Logger
}

// NewUserService precomputes a dummy hash so logins for unknown emails cost
// the same bcrypt comparison as real ones.
func NewUserService(repo users.Repository, hasher *auth.PasswordHasher, tokens *auth.TokenService, tokenTTL time.Duration, log logging.Logger) (*UserService, error) {
	dummy, err := hasher.Hash(string(common.GenerateRandByteArray(16)))
	if err != nil {
		return nil, fmt.Errorf("compute dummy hash: %w", err)
	}
	return &UserService{
		users:     repo,
		hasher:    hasher,
		tokens:    tokens,
		tokenTTL:  tokenTTL,
		dummyHash: dummy,
		log:       log.With("module", "users"),
	}, nil
}

// Register validates and stores a new account.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, common.Invalid("password is required")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, common.ErrDuplicateEmail
		}
		s.log.Error(ctx, "create user failed", "error", err)
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login checks the credentials and issues a session token. Unknown email and
// wrong password both yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil && len(user.PasswordHash) > 0:
	case err == nil, errors.Is(err, common.ErrNotFound):
		s.hasher.Verify(password, s.dummyHash)
		return nil, common.ErrInvalidCredentials
	default:
		s.log.Error(ctx, "lookup user failed", "error", err)
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(user.ID, s.tokenTTL)
	if err != nil {
		s.log.Error(ctx, "issue token failed", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrInternal, err)
	}

	return &Session{
		AccessToken: token,
		TokenType:   common.TokenType,
		UserID:      user.ID,
		ExpiresAt:   exp,
	}, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", common.Invalid("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", common.Invalid("invalid email address")
	}
	return email, nil
}
