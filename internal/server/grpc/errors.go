package grpc

import (
	"errors"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/access"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC statuses without leaking internal
// error text.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrDuplicateEmail):
		return status.Error(codes.AlreadyExists, common.ErrDuplicateEmail.Error())
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, common.ValidationDetail(err))
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "Incorrect email or password")
	case errors.Is(err, common.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, access.UnauthorizedDetail)
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, "Note not found")
	case errors.Is(err, common.ErrStoreUnavailable):
		return status.Error(codes.Unavailable, "service unavailable")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
