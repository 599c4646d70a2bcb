package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amit-tzadok/LDR/internal/logger"
	"github.com/amit-tzadok/LDR/internal/model"
)

// Sessions issues the token pair behind each signed-in device. Refresh
// tokens are single use: presenting one that was already rotated or revoked
// ends every session of its user.
type Sessions struct {
	manager    model.TokenManager
	store      model.RefreshTokenStore
	refreshTTL time.Duration
	now        func() time.Time
	logger     *logger.Logger
}

// NewSessions creates Sessions. refreshTTL sets the stored expiry and should
// match the manager's refresh lifetime.
func NewSessions(manager model.TokenManager, store model.RefreshTokenStore, refreshTTL time.Duration, logger *logger.Logger) *Sessions {
	return &Sessions{
		manager:    manager,
		store:      store,
		refreshTTL: refreshTTL,
		now:        time.Now,
		logger:     logger,
	}
}

// Start opens a new session for userID.
func (s *Sessions) Start(ctx context.Context, userID uuid.UUID) (model.Tokens, error) {
	tokens, record, err := s.mint(userID)
	if err != nil {
		return model.Tokens{}, err
	}
	if err := s.store.Create(ctx, record); err != nil {
		return model.Tokens{}, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return tokens, nil
}

// Rotate exchanges a refresh token for a new pair.
func (s *Sessions) Rotate(ctx context.Context, refreshToken string) (model.Tokens, error) {
	current, err := s.lookup(ctx, refreshToken)
	if err != nil {
		return model.Tokens{}, err
	}

	if current.Spent() {
		s.logger.Warn("Sessions: spent refresh token presented, ending all sessions",
			"user_id", current.UserID,
			"jti", current.JTI)
		if err := s.store.RevokeAllByUser(ctx, current.UserID); err != nil {
			return model.Tokens{}, fmt.Errorf("failed to end sessions: %w", err)
		}
		return model.Tokens{}, model.ErrTokenRevoked
	}
	if current.ExpiredAt(s.now()) {
		return model.Tokens{}, model.ErrTokenExpired
	}

	tokens, next, err := s.mint(current.UserID)
	if err != nil {
		return model.Tokens{}, err
	}
	next.RotatedFrom = &current.JTI

	if err := s.store.Rotate(ctx, current.JTI, next); err != nil {
		if errors.Is(err, model.ErrTokenRevoked) {
			return model.Tokens{}, err
		}
		return model.Tokens{}, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return tokens, nil
}

// End revokes the session behind refreshToken, or every session of its user
// when everywhere is set.
func (s *Sessions) End(ctx context.Context, refreshToken string, everywhere bool) error {
	current, err := s.lookup(ctx, refreshToken)
	if err != nil {
		return err
	}

	if everywhere {
		if err := s.store.RevokeAllByUser(ctx, current.UserID); err != nil {
			return fmt.Errorf("failed to end sessions: %w", err)
		}
		return nil
	}
	if err := s.store.RevokeByJTI(ctx, current.JTI); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// VerifyAccess returns the user an access token was issued to.
func (s *Sessions) VerifyAccess(_ context.Context, accessToken string) (uuid.UUID, error) {
	return s.manager.ParseAccessToken(accessToken)
}

// lookup resolves a presented refresh token to its stored record.
func (s *Sessions) lookup(ctx context.Context, refreshToken string) (model.RefreshToken, error) {
	userID, jti, err := s.manager.ParseRefreshToken(refreshToken)
	if err != nil {
		return model.RefreshToken{}, err
	}

	record, err := s.store.GetByJTI(ctx, jti)
	if errors.Is(err, model.ErrNotFound) {
		return model.RefreshToken{}, model.ErrInvalidToken
	}
	if err != nil {
		return model.RefreshToken{}, fmt.Errorf("failed to get refresh token: %w", err)
	}

	if record.UserID != userID || subtle.ConstantTimeCompare(record.TokenHash, hashToken(refreshToken)) != 1 {
		return model.RefreshToken{}, model.ErrTokenMismatch
	}
	return record, nil
}

func (s *Sessions) mint(userID uuid.UUID) (model.Tokens, model.RefreshToken, error) {
	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return model.Tokens{}, model.RefreshToken{}, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, jti, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return model.Tokens{}, model.RefreshToken{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	now := s.now()
	record := model.RefreshToken{
		JTI:       jti,
		UserID:    userID,
		TokenHash: hashToken(refresh),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.refreshTTL),
	}
	return model.Tokens{UserID: userID, AccessToken: access, RefreshToken: refresh}, record, nil
}

func hashToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}
