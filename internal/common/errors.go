// Package common defines shared constants and sentinel errors used across
// the notekeeper server layers. Callers should use errors.Is to match these
// values; most of them reach callers wrapped with extra context.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("user with this email already exists")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrInconsistentState = errors.New("inconsistent store state")

	// Service-level errors.
	ErrInternal           = errors.New("internal error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrValidation         = errors.New("validation error")

	// Token validation errors. All of them are reported to clients as
	// ErrUnauthorized; the distinction is kept for server-side diagnostics.
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenMalformed      = errors.New("token malformed")
	ErrTokenBadSignature   = errors.New("token signature invalid")
	ErrTokenMissingSubject = errors.New("token has no subject")
)

// ValidationError is a client input problem. Detail is a fixed message that
// transports may show to clients as is; it never carries a wrapped error.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Detail
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid returns a ValidationError with the given client-facing detail.
func Invalid(detail string) error {
	return &ValidationError{Detail: detail}
}

// ValidationDetail returns the client-facing detail of a validation error,
// or a generic one when err carries none.
func ValidationDetail(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Detail != "" {
		return ve.Detail
	}
	return "invalid request"
}
