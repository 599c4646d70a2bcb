package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/amit-tzadok/LDR/internal/model"
)

// errorCodes maps domain errors to gRPC codes. The sentinel text is the
// user-facing message.
var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{model.ErrInvalidInviteCode, codes.NotFound},
	{model.ErrAlreadyMember, codes.AlreadyExists},
	{model.ErrSpaceFull, codes.FailedPrecondition},
	{model.ErrInviteTypeMismatch, codes.FailedPrecondition},
	{model.ErrNotAMember, codes.PermissionDenied},
	{model.ErrReadFailure, codes.Unavailable},
	{model.ErrJoinIncomplete, codes.Unavailable},
	{model.ErrMembershipConflict, codes.Aborted},
	{model.ErrEmailTaken, codes.AlreadyExists},
	{model.ErrInvalidCredentials, codes.Unauthenticated},
	{model.ErrInvalidToken, codes.Unauthenticated},
	{model.ErrTokenRevoked, codes.Unauthenticated},
	{model.ErrTokenExpired, codes.Unauthenticated},
	{model.ErrTokenMismatch, codes.Unauthenticated},
	{model.ErrStorageDisabled, codes.FailedPrecondition},
	{model.ErrNotFound, codes.NotFound},
}

func handleError(err error) error {
	if st, ok := status.FromError(err); ok && st.Code() != codes.Unknown {
		return err
	}

	// Validation errors carry their detail after the sentinel.
	if errors.Is(err, model.ErrInvalidArgument) {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	for _, m := range errorCodes {
		if errors.Is(err, m.err) {
			return status.Error(m.code, m.err.Error())
		}
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
