// Package access authenticates requests and binds the caller's identity to
// the request context. It is the only source of owner ids for note
// operations.
package access

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

// TokenValidator returns the subject of a valid token.
type TokenValidator interface {
	Validate(token string) (string, error)
}

type ctxKey struct{}

// Gate validates bearer tokens. Every failure satisfies
// errors.Is(err, common.ErrUnauthorized) while keeping the token error kind.
type Gate struct {
	tokens TokenValidator
	log    logging.Logger
}

func NewGate(tokens TokenValidator, log logging.Logger) *Gate {
	return &Gate{tokens: tokens, log: log.With("module", "access")}
}

// Authenticate validates rawToken and returns a context carrying the owner id.
func (g *Gate) Authenticate(ctx context.Context, rawToken string) (context.Context, string, error) {
	if rawToken == "" {
		return ctx, "", fmt.Errorf("%w: missing token", common.ErrUnauthorized)
	}

	ownerID, err := g.tokens.Validate(rawToken)
	if err != nil {
		g.log.Debug(ctx, "token rejected", "error", err)
		return ctx, "", fmt.Errorf("%w: %w", common.ErrUnauthorized, err)
	}

	return WithOwnerID(ctx, ownerID), ownerID, nil
}

// WithOwnerID binds ownerID to ctx.
func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, ownerID)
}

// OwnerID returns the authenticated owner bound by the gate.
func OwnerID(ctx context.Context) (string, error) {
	id, ok := ctx.Value(ctxKey{}).(string)
	if !ok || id == "" {
		return "", common.ErrUnauthorized
	}
	return id, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// value. The scheme is matched case-insensitively.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}
