package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amit-tzadok/LDR/internal/invite"
	"github.com/amit-tzadok/LDR/internal/logger"
	"github.com/amit-tzadok/LDR/internal/model"
)

// maxJoinAttempts bounds how often a join re-reads the space after losing a
// compare-and-swap race before giving up.
const maxJoinAttempts = 3

// maxProfileWriteAttempts bounds retries of the profile update that follows a
// successful space write.
const maxProfileWriteAttempts = 2

type Space struct {
	spaceStore      model.SpaceStore
	profileStore    model.ProfileStore
	userStore       model.UserStore
	invites         *invite.Generator
	broker          model.Broker
	dissolveOnLeave bool
	logger          *logger.Logger
}

func NewSpace(
	spaceStore model.SpaceStore,
	profileStore model.ProfileStore,
	userStore model.UserStore,
	invites *invite.Generator,
	broker model.Broker,
	dissolveOnLeave bool,
	logger *logger.Logger,
) *Space {
	return &Space{
		spaceStore:      spaceStore,
		profileStore:    profileStore,
		userStore:       userStore,
		invites:         invites,
		broker:          broker,
		dissolveOnLeave: dissolveOnLeave,
		logger:          logger,
	}
}

// CreateSpace creates a space owned by userID and makes it the caller's active space.
func (s *Space) CreateSpace(ctx context.Context, userID uuid.UUID) (model.SpaceInvite, error) {
	pair, trio, err := s.invites.CodePair()
	if err != nil {
		return model.SpaceInvite{}, fmt.Errorf("failed to generate invite codes: %w", err)
	}

	meta := model.MemberMeta{ID: userID}
	profile, err := s.profileStore.GetByID(ctx, userID)
	switch {
	case err == nil:
		meta = model.MemberMetaFromProfile(profile)
	case !errors.Is(err, model.ErrNotFound):
		s.logger.Warn("Space service: failed to read creator profile, seeding meta from account",
			"user_id", userID,
			"error", err.Error())
	}
	if meta.Email == "" {
		meta.Email = s.accountEmail(ctx, userID)
	}

	space := model.Space{
		ID:             s.invites.SpaceID(),
		Members:        []uuid.UUID{userID},
		PairInviteCode: pair,
		TrioInviteCode: trio,
		MembersMeta:    map[uuid.UUID]model.MemberMeta{userID: meta},
		Status:         model.SpaceStatusActive,
		CreatedBy:      userID,
	}

	space, err = s.spaceStore.Create(ctx, space)
	if err != nil {
		return model.SpaceInvite{}, fmt.Errorf("failed to create space: %w", err)
	}

	if _, err := s.profileStore.AddMembership(ctx, userID, space.ID); err != nil {
		s.logger.Error("Space service: space created but profile not updated",
			"user_id", userID,
			"space_id", space.ID,
			"error", err.Error())
		return model.SpaceInvite{}, fmt.Errorf("failed to add space to profile: %w", err)
	}

	s.logger.Info("Space service: space created",
		"user_id", userID,
		"space_id", space.ID)

	return model.SpaceInvite{
		SpaceID:        space.ID,
		PairInviteCode: space.PairInviteCode,
		TrioInviteCode: space.TrioInviteCode,
		PairInviteLink: s.invites.Link(space.PairInviteCode),
		TrioInviteLink: s.invites.Link(space.TrioInviteCode),
	}, nil
}

// accountEmail returns the sign-in email of userID, or "" when unreadable.
func (s *Space) accountEmail(ctx context.Context, userID uuid.UUID) string {
	if s.userStore == nil {
		return ""
	}
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("Space service: failed to read account email",
			"user_id", userID,
			"error", err.Error())
		return ""
	}
	return user.Email
}

// JoinSpace admits userID to the space matching the invite token or link.
func (s *Space) JoinSpace(ctx context.Context, userID uuid.UUID, inviteInput string) (model.Space, error) {
	code := invite.Parse(inviteInput)
	if code == "" {
		return model.Space{}, model.ErrInvalidInviteCode
	}

	space, err := s.spaceStore.GetByInviteCode(ctx, code)
	if errors.Is(err, model.ErrNotFound) {
		return model.Space{}, model.ErrInvalidInviteCode
	}
	if err != nil {
		return model.Space{}, readFailure(err)
	}
	if !space.IsActive() {
		return model.Space{}, model.ErrInvalidInviteCode
	}

	inviteType, ok := space.InviteTypeFor(code)
	if !ok {
		return model.Space{}, model.ErrInvalidInviteCode
	}

	meta := model.MemberMeta{ID: userID}
	if profile, err := s.profileStore.GetByID(ctx, userID); err == nil {
		meta = model.MemberMetaFromProfile(profile)
	} else {
		s.logger.Warn("Space service: joiner profile unreadable, using placeholder meta",
			"user_id", userID,
			"error", err.Error())
	}

	joined, err := s.addMember(ctx, space, userID, inviteType, meta)
	if err != nil {
		return model.Space{}, err
	}

	publishBestEffort(ctx, s.broker, model.Event{
		Kind:    model.EventSpaceUpdated,
		SpaceID: joined.ID,
		ActorID: userID,
		At:      time.Now(),
	}, s.logger)

	if err := s.recordMembership(ctx, userID, joined.ID); err != nil {
		s.logger.Error("Space service: joined space but profile not updated",
			"user_id", userID,
			"space_id", joined.ID,
			"error", err.Error())
		return model.Space{}, fmt.Errorf("%w: %w", model.ErrJoinIncomplete, err)
	}

	s.logger.Info("Space service: member joined",
		"user_id", userID,
		"space_id", joined.ID,
		"invite_type", inviteType,
		"members", len(joined.Members))

	return joined, nil
}

// recordMembership adds spaceID to the profile of userID, retrying once.
// The space write already happened, so giving up leaves a membership that
// only RecoverSpace can bring back into the profile.
func (s *Space) recordMembership(ctx context.Context, userID uuid.UUID, spaceID string) error {
	var err error
	for attempt := 0; attempt < maxProfileWriteAttempts; attempt++ {
		if _, err = s.profileStore.AddMembership(ctx, userID, spaceID); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			break
		}
		s.logger.Warn("Space service: profile update failed, retrying",
			"user_id", userID,
			"space_id", spaceID,
			"attempt", attempt+1,
			"error", err.Error())
	}
	return fmt.Errorf("failed to add space to profile: %w", err)
}

// addMember validates the join against the current snapshot and appends the
// member with a conditional write. A lost race re-reads the space so the
// caller gets the error matching the new state.
func (s *Space) addMember(ctx context.Context, space model.Space, userID uuid.UUID, inviteType model.InviteType, meta model.MemberMeta) (model.Space, error) {
	for attempt := 0; attempt < maxJoinAttempts; attempt++ {
		if err := validateJoin(space, userID, inviteType); err != nil {
			return model.Space{}, err
		}

		joined, err := s.spaceStore.AddMember(ctx, space.ID, userID, meta, len(space.Members))
		if err == nil {
			return joined, nil
		}
		if !errors.Is(err, model.ErrMembershipConflict) {
			return model.Space{}, fmt.Errorf("failed to add member: %w", err)
		}

		s.logger.Debug("Space service: join lost a concurrent update, re-reading space",
			"user_id", userID,
			"space_id", space.ID,
			"attempt", attempt+1)

		space, err = s.spaceStore.GetByID(ctx, space.ID)
		if errors.Is(err, model.ErrNotFound) {
			return model.Space{}, model.ErrInvalidInviteCode
		}
		if err != nil {
			return model.Space{}, readFailure(err)
		}
		if !space.IsActive() {
			return model.Space{}, model.ErrInvalidInviteCode
		}
	}

	return model.Space{}, model.ErrMembershipConflict
}

// validateJoin applies the join checks in their documented order.
func validateJoin(space model.Space, userID uuid.UUID, inviteType model.InviteType) error {
	switch {
	case space.HasMember(userID):
		return model.ErrAlreadyMember
	case len(space.Members) >= model.MaxSpaceMembers:
		return model.ErrSpaceFull
	case len(space.Members) != inviteType.RequiredMembers():
		return model.ErrInviteTypeMismatch
	}
	return nil
}

// LeaveSpace removes userID from the space and the space from the caller's profile.
func (s *Space) LeaveSpace(ctx context.Context, userID uuid.UUID, spaceID string) error {
	profile, err := s.profileStore.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	memberships := profile.Memberships().UpgradeLegacy()

	space, err := s.spaceStore.GetByID(ctx, spaceID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return readFailure(err)
	}
	inSpace := err == nil && space.HasMember(userID)

	if !inSpace && !memberships.Contains(spaceID) {
		return model.ErrNotAMember
	}

	if inSpace {
		remaining, err := s.spaceStore.RemoveMember(ctx, spaceID, userID)
		if err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}

		if s.dissolveOnLeave && len(remaining.Members) <= 1 {
			if err := s.spaceStore.SetStatus(ctx, spaceID, model.SpaceStatusDissolved); err != nil {
				s.logger.Error("Space service: failed to dissolve space",
					"space_id", spaceID,
					"error", err.Error())
			} else {
				s.logger.Info("Space service: space dissolved",
					"space_id", spaceID,
					"remaining_members", len(remaining.Members))
			}
		}
	}

	if err := s.profileStore.SetMemberships(ctx, userID, memberships.Without(spaceID)); err != nil {
		return fmt.Errorf("failed to update profile memberships: %w", err)
	}

	publishBestEffort(ctx, s.broker, model.Event{
		Kind:    model.EventSpaceUpdated,
		SpaceID: spaceID,
		ActorID: userID,
		At:      time.Now(),
	}, s.logger)

	s.logger.Info("Space service: member left",
		"user_id", userID,
		"space_id", spaceID)

	return nil
}

// SwitchActiveSpace selects spaceID for feature-collection scoping.
func (s *Space) SwitchActiveSpace(ctx context.Context, userID uuid.UUID, spaceID string) error {
	profile, err := s.profileStore.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	memberships := profile.Memberships().UpgradeLegacy()
	if !memberships.Contains(spaceID) {
		return model.ErrNotAMember
	}

	memberships.ActiveCoupleCode = &spaceID
	if err := s.profileStore.SetMemberships(ctx, userID, memberships); err != nil {
		return fmt.Errorf("failed to update active space: %w", err)
	}

	return nil
}

// RenameSpace sets the custom display name. A blank name clears it.
func (s *Space) RenameSpace(ctx context.Context, userID uuid.UUID, spaceID string, name string) error {
	if _, err := s.memberSpace(ctx, userID, spaceID); err != nil {
		return err
	}

	var customName *string
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		customName = &trimmed
	}

	if err := s.spaceStore.SetCustomName(ctx, spaceID, customName); err != nil {
		return fmt.Errorf("failed to rename space: %w", err)
	}

	publishBestEffort(ctx, s.broker, model.Event{
		Kind:    model.EventSpaceUpdated,
		SpaceID: spaceID,
		ActorID: userID,
		At:      time.Now(),
	}, s.logger)

	return nil
}

// GetSpaceSettings returns the shared dates of a space. Unset dates are nil.
func (s *Space) GetSpaceSettings(ctx context.Context, userID uuid.UUID, spaceID string) (model.SpaceSettings, error) {
	space, err := s.memberSpace(ctx, userID, spaceID)
	if err != nil {
		return model.SpaceSettings{}, err
	}
	return space.Settings, nil
}

// UpdateSpaceSettings changes the dates present in patch and leaves the
// others untouched.
func (s *Space) UpdateSpaceSettings(ctx context.Context, userID uuid.UUID, spaceID string, patch model.SpaceSettingsPatch) (model.SpaceSettings, error) {
	if patch.IsEmpty() {
		return model.SpaceSettings{}, fmt.Errorf("%w: no settings to update", model.ErrInvalidArgument)
	}
	if _, err := s.memberSpace(ctx, userID, spaceID); err != nil {
		return model.SpaceSettings{}, err
	}

	settings, err := s.spaceStore.UpdateSettings(ctx, spaceID, patch)
	if errors.Is(err, model.ErrNotFound) {
		return model.SpaceSettings{}, model.ErrNotAMember
	}
	if err != nil {
		return model.SpaceSettings{}, fmt.Errorf("failed to update space settings: %w", err)
	}

	publishBestEffort(ctx, s.broker, model.Event{
		Kind:    model.EventSpaceUpdated,
		SpaceID: spaceID,
		ActorID: userID,
		At:      time.Now(),
	}, s.logger)

	s.logger.Info("Space service: settings updated",
		"user_id", userID,
		"space_id", spaceID)

	return settings, nil
}

// GetSpace returns the space as seen by one of its members.
func (s *Space) GetSpace(ctx context.Context, userID uuid.UUID, spaceID string) (model.SpaceView, error) {
	space, err := s.memberSpace(ctx, userID, spaceID)
	if err != nil {
		return model.SpaceView{}, err
	}

	var active string
	if profile, err := s.profileStore.GetByID(ctx, userID); err == nil {
		active = profile.Memberships().UpgradeLegacy().Active()
	}

	return s.view(ctx, space, active), nil
}

// ListSpaces returns the spaces listed in the caller's profile. Spaces that
// cannot be read or no longer contain the caller are skipped.
func (s *Space) ListSpaces(ctx context.Context, userID uuid.UUID) ([]model.SpaceView, error) {
	profile, err := s.profileStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	memberships := profile.Memberships().UpgradeLegacy()

	views := make([]model.SpaceView, 0, len(memberships.Couples))
	for _, code := range memberships.Couples {
		space, err := s.spaceStore.GetByID(ctx, code)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				s.logger.Warn("Space service: skipping unreadable space",
					"user_id", userID,
					"space_id", code,
					"error", err.Error())
			}
			continue
		}
		if !space.IsActive() || !space.HasMember(userID) {
			continue
		}
		views = append(views, s.view(ctx, space, memberships.Active()))
	}

	return views, nil
}

// ListRecoverableSpaces returns every active space whose members include the caller.
func (s *Space) ListRecoverableSpaces(ctx context.Context, userID uuid.UUID) ([]model.RecoverableSpace, error) {
	profile, err := s.profileStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	memberships := profile.Memberships().UpgradeLegacy()

	spaces, err := s.spaceStore.ListByMember(ctx, userID)
	if err != nil {
		return nil, readFailure(err)
	}

	out := make([]model.RecoverableSpace, 0, len(spaces))
	for _, space := range spaces {
		if !space.IsActive() {
			continue
		}
		out = append(out, model.RecoverableSpace{
			Space:     space,
			InProfile: memberships.Contains(space.ID),
		})
	}
	return out, nil
}

// RecoverSpace re-adds a space the caller is still a member of to their profile.
func (s *Space) RecoverSpace(ctx context.Context, userID uuid.UUID, spaceID string) error {
	space, err := s.memberSpace(ctx, userID, spaceID)
	if err != nil {
		return err
	}
	if !space.IsActive() {
		return model.ErrNotAMember
	}

	if _, err := s.profileStore.AddMembership(ctx, userID, spaceID); err != nil {
		return fmt.Errorf("failed to add space to profile: %w", err)
	}

	s.logger.Info("Space service: space recovered",
		"user_id", userID,
		"space_id", spaceID)

	return nil
}

// memberSpace loads spaceID and checks that userID belongs to it.
func (s *Space) memberSpace(ctx context.Context, userID uuid.UUID, spaceID string) (model.Space, error) {
	space, err := s.spaceStore.GetByID(ctx, spaceID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Space{}, model.ErrNotAMember
	}
	if err != nil {
		return model.Space{}, readFailure(err)
	}
	if !space.HasMember(userID) {
		return model.Space{}, model.ErrNotAMember
	}
	return space, nil
}

func (s *Space) view(ctx context.Context, space model.Space, activeSpaceID string) model.SpaceView {
	members := resolveMembers(ctx, s.profileStore, space, s.logger)
	return model.SpaceView{
		Space:           space,
		DisplayName:     space.DisplayName(memberNames(members)),
		ResolvedMembers: members,
		PairInviteLink:  s.invites.Link(space.PairInviteCode),
		TrioInviteLink:  s.invites.Link(space.TrioInviteCode),
		Selected:        space.ID == activeSpaceID,
	}
}
