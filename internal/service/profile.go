package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amit-tzadok/LDR/internal/logger"
	"github.com/amit-tzadok/LDR/internal/model"
)

// MaxAvatarSize is the largest accepted avatar upload in bytes.
const MaxAvatarSize = 5 << 20

type Profile struct {
	profileStore model.ProfileStore
	spaceStore   model.SpaceStore
	storage      model.Storage
	broker       model.Broker
	logger       *logger.Logger
}

// NewProfile creates the profile service. storage may be nil, which disables avatar uploads.
func NewProfile(
	profileStore model.ProfileStore,
	spaceStore model.SpaceStore,
	storage model.Storage,
	broker model.Broker,
	logger *logger.Logger,
) *Profile {
	return &Profile{
		profileStore: profileStore,
		spaceStore:   spaceStore,
		storage:      storage,
		broker:       broker,
		logger:       logger,
	}
}

// GetProfile returns the caller's profile, upgrading a legacy single-space
// profile to the multi-space model on first read.
func (s *Profile) GetProfile(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	profile, err := s.profileStore.GetByID(ctx, userID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	if !profile.NeedsLegacyUpgrade() {
		return profile, nil
	}

	upgraded := profile.Memberships().UpgradeLegacy()
	if err := s.profileStore.SetMemberships(ctx, userID, upgraded); err != nil {
		s.logger.Warn("Profile service: failed to persist legacy upgrade",
			"user_id", userID,
			"error", err.Error())
	} else {
		s.logger.Info("Profile service: upgraded legacy profile",
			"user_id", userID,
			"space_id", upgraded.Active())
	}

	profile.Couples = upgraded.Couples
	profile.ActiveCoupleCode = upgraded.ActiveCoupleCode
	return profile, nil
}

// UpdateProfile saves display attributes and propagates them to the
// membersMeta of every space the user belongs to.
func (s *Profile) UpdateProfile(ctx context.Context, userID uuid.UUID, patch model.MemberMetaPatch) (model.Profile, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return model.Profile{}, fmt.Errorf("%w: name must not be blank", model.ErrInvalidArgument)
		}
		patch.Name = &name
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		patch.Email = &email
	}
	if patch.IsEmpty() {
		return model.Profile{}, fmt.Errorf("%w: nothing to update", model.ErrInvalidArgument)
	}

	profile, err := s.profileStore.UpdateDetails(ctx, userID, patch)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	s.propagate(ctx, profile, patch)

	return profile, nil
}

// propagate patches membersMeta in each of the user's spaces. Failures are
// logged and never returned.
func (s *Profile) propagate(ctx context.Context, profile model.Profile, patch model.MemberMetaPatch) {
	for _, spaceID := range profile.Memberships().UpgradeLegacy().Couples {
		if err := s.spaceStore.PatchMemberMeta(ctx, spaceID, profile.ID, patch); err != nil {
			s.logger.Warn("Profile service: failed to propagate member meta",
				"user_id", profile.ID,
				"space_id", spaceID,
				"error", err.Error())
			continue
		}

		publishBestEffort(ctx, s.broker, model.Event{
			Kind:    model.EventSpaceUpdated,
			SpaceID: spaceID,
			ActorID: profile.ID,
			At:      time.Now(),
		}, s.logger)
	}
}

// UploadAvatar stores an image and makes it the caller's photo.
func (s *Profile) UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, data []byte) (model.Profile, error) {
	if s.storage == nil {
		return model.Profile{}, model.ErrStorageDisabled
	}
	if len(data) == 0 || len(data) > MaxAvatarSize {
		return model.Profile{}, fmt.Errorf("%w: avatar must be between 1 byte and %d bytes", model.ErrInvalidArgument, MaxAvatarSize)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return model.Profile{}, fmt.Errorf("%w: avatar must be an image", model.ErrInvalidArgument)
	}

	key := avatarKey(userID, mediaType)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), mediaType); err != nil {
		return model.Profile{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	photoURL := s.storage.URL(key)
	profile, err := s.UpdateProfile(ctx, userID, model.MemberMetaPatch{PhotoURL: &photoURL})
	if err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Error("Profile service: failed to delete orphaned avatar",
				"user_id", userID,
				"key", key,
				"error", delErr.Error())
		}
		return model.Profile{}, err
	}

	s.logger.Info("Profile service: avatar uploaded",
		"user_id", userID,
		"key", key,
		"bytes", len(data))

	return profile, nil
}

func avatarKey(userID uuid.UUID, mediaType string) string {
	ext := ""
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	return fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New(), ext)
}

// BackfillMembersMeta rebuilds the membersMeta of a space from its members'
// profiles. A member whose profile cannot be read keeps its cached entry.
func (s *Profile) BackfillMembersMeta(ctx context.Context, userID uuid.UUID, spaceID string) (model.Space, error) {
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

	meta := make(map[uuid.UUID]model.MemberMeta, len(space.Members))
	for _, memberID := range space.Members {
		profile, err := s.profileStore.GetByID(ctx, memberID)
		if err == nil {
			meta[memberID] = model.MemberMetaFromProfile(profile)
			continue
		}

		s.logger.Warn("Profile service: member profile unreadable during backfill",
			"space_id", spaceID,
			"user_id", memberID,
			"error", err.Error())
		if cached, ok := space.MembersMeta[memberID]; ok {
			meta[memberID] = cached
		} else {
			meta[memberID] = model.MemberMeta{ID: memberID}
		}
	}

	if err := s.spaceStore.ReplaceMembersMeta(ctx, spaceID, meta); err != nil {
		return model.Space{}, fmt.Errorf("failed to replace members meta: %w", err)
	}

	publishBestEffort(ctx, s.broker, model.Event{
		Kind:    model.EventSpaceUpdated,
		SpaceID: spaceID,
		ActorID: userID,
		At:      time.Now(),
	}, s.logger)

	space.MembersMeta = meta
	return space, nil
}
