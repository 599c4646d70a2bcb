package handler

import (
	"context"

	"github.com/amit-tzadok/LDR/internal/api/grpc/proto"
	"github.com/amit-tzadok/LDR/internal/logger"
	"github.com/amit-tzadok/LDR/internal/model"
)

// AuthService defines account and session operations.
type AuthService interface {
	SignUp(ctx context.Context, params model.SignUpParams) (model.Tokens, error)
	SignIn(ctx context.Context, email, password string) (model.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (model.Tokens, error)
	SignOut(ctx context.Context, refreshToken string, everywhere bool) error
}

// Auth handles gRPC endpoints for authentication.
type Auth struct {
	proto.UnimplementedAuthServer
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

// SignUp registers an account and returns a session.
func (h *Auth) SignUp(ctx context.Context, req *proto.SignUpRequest) (*proto.Session, error) {
	h.logger.Debug("Auth handler: processing sign up request",
		"login", req.Email)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	tokens, err := h.authService.SignUp(ctx, model.SignUpParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.logger.Error("Auth handler: sign up failed",
			"login", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: sign up completed",
		"login", req.Email,
		"user_id", tokens.UserID)

	return toProtoSession(tokens), nil
}

// SignIn verifies credentials and returns a session.
func (h *Auth) SignIn(ctx context.Context, req *proto.SignInRequest) (*proto.Session, error) {
	h.logger.Debug("Auth handler: processing sign in request",
		"login", req.Email)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	tokens, err := h.authService.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: sign in failed",
			"login", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: sign in completed",
		"login", req.Email,
		"user_id", tokens.UserID)

	return toProtoSession(tokens), nil
}

// Refresh exchanges a refresh token for a new token pair.
func (h *Auth) Refresh(ctx context.Context, req *proto.RefreshRequest) (*proto.Session, error) {
	h.logger.Debug("Auth handler: processing token refresh request")

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	tokens, err := h.authService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		h.logger.Error("Auth handler: token refresh failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: token refresh successful",
		"user_id", tokens.UserID)

	return toProtoSession(tokens), nil
}

// SignOut ends the caller's session, or all of them with AllDevices.
func (h *Auth) SignOut(ctx context.Context, req *proto.SignOutRequest) (*proto.Empty, error) {
	h.logger.Debug("Auth handler: processing sign out request")

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if err := h.authService.SignOut(ctx, req.RefreshToken, req.AllDevices); err != nil {
		h.logger.Error("Auth handler: sign out failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	return &proto.Empty{}, nil
}
