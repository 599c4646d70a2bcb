package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/amit-tzadok/LDR/internal/api/grpc/proto"
	"github.com/amit-tzadok/LDR/internal/logger"
	"github.com/amit-tzadok/LDR/internal/model"
)

// SpaceService defines the space membership operations.
type SpaceService interface {
	CreateSpace(ctx context.Context, userID uuid.UUID) (model.SpaceInvite, error)
	JoinSpace(ctx context.Context, userID uuid.UUID, invite string) (model.Space, error)
	LeaveSpace(ctx context.Context, userID uuid.UUID, spaceID string) error
	SwitchActiveSpace(ctx context.Context, userID uuid.UUID, spaceID string) error
	RenameSpace(ctx context.Context, userID uuid.UUID, spaceID string, name string) error
	GetSpace(ctx context.Context, userID uuid.UUID, spaceID string) (model.SpaceView, error)
	ListSpaces(ctx context.Context, userID uuid.UUID) ([]model.SpaceView, error)
	ListRecoverableSpaces(ctx context.Context, userID uuid.UUID) ([]model.RecoverableSpace, error)
	RecoverSpace(ctx context.Context, userID uuid.UUID, spaceID string) error
	GetSpaceSettings(ctx context.Context, userID uuid.UUID, spaceID string) (model.SpaceSettings, error)
	UpdateSpaceSettings(ctx context.Context, userID uuid.UUID, spaceID string, patch model.SpaceSettingsPatch) (model.SpaceSettings, error)
}

// Reconciler removes stale space codes from a profile.
type Reconciler interface {
	Reconcile(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// MetaBackfiller rebuilds the membersMeta of a space.
type MetaBackfiller interface {
	BackfillMembersMeta(ctx context.Context, userID uuid.UUID, spaceID string) (model.Space, error)
}

// Space handles gRPC endpoints for spaces.
type Space struct {
	proto.UnimplementedSpacesServer
	spaceService   SpaceService
	reconciler     Reconciler
	backfiller     MetaBackfiller
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewSpace creates a new Space handler.
func NewSpace(
	spaceService SpaceService,
	reconciler Reconciler,
	backfiller MetaBackfiller,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Space {
	return &Space{
		spaceService:   spaceService,
		reconciler:     reconciler,
		backfiller:     backfiller,
		contextManager: contextManager,
		logger:         logger,
	}
}

// CreateSpace creates a space owned by the caller and returns its invites.
func (h *Space) CreateSpace(ctx context.Context, _ *proto.CreateSpaceRequest) (*proto.CreateSpaceResponse, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	invite, err := h.spaceService.CreateSpace(ctx, userID)
	if err != nil {
		h.logger.Error("Space handler: create space failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &proto.CreateSpaceResponse{
		SpaceID:        invite.SpaceID,
		PairInviteCode: invite.PairInviteCode,
		TrioInviteCode: invite.TrioInviteCode,
		PairInviteLink: invite.PairInviteLink,
		TrioInviteLink: invite.TrioInviteLink,
	}, nil
}

// JoinSpace adds the caller to the space an invite code or link designates.
func (h *Space) JoinSpace(ctx context.Context, req *proto.JoinSpaceRequest) (*proto.Space, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	space, err := h.spaceService.JoinSpace(ctx, userID, req.Invite)
	if err != nil {
		h.logger.Info("Space handler: join rejected",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return toProtoSpace(space), nil
}

func (h *Space) LeaveSpace(ctx context.Context, req *proto.SpaceRequest) (*proto.Empty, error) {
	return h.spaceCall(ctx, req, "leave space", h.spaceService.LeaveSpace)
}

func (h *Space) SwitchActiveSpace(ctx context.Context, req *proto.SpaceRequest) (*proto.Empty, error) {
	return h.spaceCall(ctx, req, "switch active space", h.spaceService.SwitchActiveSpace)
}

func (h *Space) RecoverSpace(ctx context.Context, req *proto.SpaceRequest) (*proto.Empty, error) {
	return h.spaceCall(ctx, req, "recover space", h.spaceService.RecoverSpace)
}

func (h *Space) spaceCall(ctx context.Context, req *proto.SpaceRequest, op string, call func(context.Context, uuid.UUID, string) error) (*proto.Empty, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if err := call(ctx, userID, req.SpaceID); err != nil {
		h.logger.Error("Space handler: "+op+" failed",
			"user_id", userID,
			"space_id", req.SpaceID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &proto.Empty{}, nil
}

// RenameSpace sets or clears the custom name of a space.
func (h *Space) RenameSpace(ctx context.Context, req *proto.RenameSpaceRequest) (*proto.Empty, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if err := h.spaceService.RenameSpace(ctx, userID, req.SpaceID, req.Name); err != nil {
		h.logger.Error("Space handler: rename space failed",
			"user_id", userID,
			"space_id", req.SpaceID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &proto.Empty{}, nil
}

// GetSpaceSettings returns the shared dates of a space.
func (h *Space) GetSpaceSettings(ctx context.Context, req *proto.SpaceRequest) (*proto.SpaceSettings, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	settings, err := h.spaceService.GetSpaceSettings(ctx, userID, req.SpaceID)
	if err != nil {
		return nil, handleError(err)
	}

	return toProtoSpaceSettings(req.SpaceID, settings), nil
}

// UpdateSpaceSettings sets or clears the dates present in the request.
func (h *Space) UpdateSpaceSettings(ctx context.Context, req *proto.UpdateSpaceSettingsRequest) (*proto.SpaceSettings, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	patch, err := toSettingsPatch(req)
	if err != nil {
		return nil, handleError(err)
	}

	settings, err := h.spaceService.UpdateSpaceSettings(ctx, userID, req.SpaceID, patch)
	if err != nil {
		h.logger.Error("Space handler: update settings failed",
			"user_id", userID,
			"space_id", req.SpaceID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return toProtoSpaceSettings(req.SpaceID, settings), nil
}

// GetSpace returns a space with its resolved members.
func (h *Space) GetSpace(ctx context.Context, req *proto.SpaceRequest) (*proto.Space, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	view, err := h.spaceService.GetSpace(ctx, userID, req.SpaceID)
	if err != nil {
		return nil, handleError(err)
	}

	return toProtoSpaceView(view), nil
}

// ListSpaces returns the spaces listed in the caller's profile.
func (h *Space) ListSpaces(ctx context.Context, _ *proto.Empty) (*proto.ListSpacesResponse, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	views, err := h.spaceService.ListSpaces(ctx, userID)
	if err != nil {
		h.logger.Error("Space handler: list spaces failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	out := &proto.ListSpacesResponse{Spaces: make([]*proto.Space, 0, len(views))}
	for _, v := range views {
		out.Spaces = append(out.Spaces, toProtoSpaceView(v))
	}
	return out, nil
}

// ListRecoverableSpaces returns every space that lists the caller as a member.
func (h *Space) ListRecoverableSpaces(ctx context.Context, _ *proto.Empty) (*proto.ListSpacesResponse, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	spaces, err := h.spaceService.ListRecoverableSpaces(ctx, userID)
	if err != nil {
		h.logger.Error("Space handler: list recoverable spaces failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	out := &proto.ListSpacesResponse{Spaces: make([]*proto.Space, 0, len(spaces))}
	for _, s := range spaces {
		ps := toProtoSpace(s.Space)
		ps.InProfile = s.InProfile
		out.Spaces = append(out.Spaces, ps)
	}
	return out, nil
}

// ReconcileMemberships runs a reconciliation pass for the caller immediately.
func (h *Space) ReconcileMemberships(ctx context.Context, _ *proto.Empty) (*proto.ReconcileMembershipsResponse, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	removed, err := h.reconciler.Reconcile(ctx, userID)
	if err != nil {
		h.logger.Error("Space handler: reconcile failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	if removed == nil {
		removed = []string{}
	}
	return &proto.ReconcileMembershipsResponse{Removed: removed}, nil
}

// BackfillMembersMeta rebuilds membersMeta of a space from member profiles.
func (h *Space) BackfillMembersMeta(ctx context.Context, req *proto.SpaceRequest) (*proto.Space, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	space, err := h.backfiller.BackfillMembersMeta(ctx, userID, req.SpaceID)
	if err != nil {
		h.logger.Error("Space handler: backfill failed",
			"user_id", userID,
			"space_id", req.SpaceID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return toProtoSpace(space), nil
}
