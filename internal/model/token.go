package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenManager generates and validates access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (token string, jti string, err error)
	ParseAccessToken(token string) (uuid.UUID, error)
	ParseRefreshToken(token string) (userID uuid.UUID, jti string, err error)
}

// RefreshTokenStore persists the refresh token of every signed-in device.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByJTI(ctx context.Context, jti string) (RefreshToken, error)
	// Rotate revokes jti and stores next as its successor in one step.
	// ErrTokenRevoked means jti was already spent.
	Rotate(ctx context.Context, jti string, next RefreshToken) error
	RevokeByJTI(ctx context.Context, jti string) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

// RefreshToken is the stored form of an issued refresh token. Only the hash
// of the token is kept.
type RefreshToken struct {
	JTI       string
	UserID    uuid.UUID
	TokenHash []byte
	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
	// RotatedFrom is the JTI this token replaced, nil after a fresh sign-in.
	RotatedFrom *string
}

// Spent reports whether the token was revoked or already rotated.
func (t RefreshToken) Spent() bool {
	return t.RevokedAt != nil
}

// ExpiredAt reports whether the token is past its lifetime at now.
func (t RefreshToken) ExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
