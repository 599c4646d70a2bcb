package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/amit-tzadok/LDR/internal/api/grpc/proto"
	"github.com/amit-tzadok/LDR/internal/logger"
	"github.com/amit-tzadok/LDR/internal/model"
)

// ProfileService defines profile operations.
type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (model.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch model.MemberMetaPatch) (model.Profile, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, data []byte) (model.Profile, error)
}

// Profile handles gRPC endpoints for profiles.
type Profile struct {
	proto.UnimplementedProfilesServer
	profileService ProfileService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewProfile creates a new Profile handler.
func NewProfile(profileService ProfileService, contextManager model.ContextManager, logger *logger.Logger) *Profile {
	return &Profile{
		profileService: profileService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Profile) GetProfile(ctx context.Context, _ *proto.Empty) (*proto.Profile, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	profile, err := h.profileService.GetProfile(ctx, userID)
	if err != nil {
		h.logger.Error("Profile handler: get profile failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return toProtoProfile(profile), nil
}

func (h *Profile) UpdateProfile(ctx context.Context, req *proto.UpdateProfileRequest) (*proto.Profile, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	profile, err := h.profileService.UpdateProfile(ctx, userID, model.MemberMetaPatch{
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		h.logger.Error("Profile handler: update profile failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return toProtoProfile(profile), nil
}

func (h *Profile) UploadAvatar(ctx context.Context, req *proto.UploadAvatarRequest) (*proto.Profile, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	h.logger.Debug("Profile handler: processing avatar upload",
		"user_id", userID,
		"content_type", req.ContentType,
		"bytes", len(req.Data))

	profile, err := h.profileService.UploadAvatar(ctx, userID, req.ContentType, req.Data)
	if err != nil {
		h.logger.Error("Profile handler: avatar upload failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return toProtoProfile(profile), nil
}
