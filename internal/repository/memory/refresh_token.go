package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/amit-tzadok/LDR/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

type RefreshTokenRepository struct {
	db *DB
}

func NewRefreshTokenRepository(db *DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(_ context.Context, token model.RefreshToken) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.refreshTokens[token.JTI] = cloneRefreshToken(token)
	return nil
}

func (r *RefreshTokenRepository) GetByJTI(_ context.Context, jti string) (model.RefreshToken, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	t, ok := r.db.refreshTokens[jti]
	if !ok {
		return model.RefreshToken{}, model.ErrNotFound
	}
	return cloneRefreshToken(t), nil
}

func (r *RefreshTokenRepository) Rotate(_ context.Context, jti string, next model.RefreshToken) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	t, ok := r.db.refreshTokens[jti]
	if !ok || t.Spent() {
		return model.ErrTokenRevoked
	}
	r.revokeLocked(jti, t)
	r.db.refreshTokens[next.JTI] = cloneRefreshToken(next)
	return nil
}

func (r *RefreshTokenRepository) RevokeByJTI(_ context.Context, jti string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if t, ok := r.db.refreshTokens[jti]; ok && !t.Spent() {
		r.revokeLocked(jti, t)
	}
	return nil
}

func (r *RefreshTokenRepository) RevokeAllByUser(_ context.Context, userID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for jti, t := range r.db.refreshTokens {
		if t.UserID == userID && !t.Spent() {
			r.revokeLocked(jti, t)
		}
	}
	return nil
}

func (r *RefreshTokenRepository) revokeLocked(jti string, t model.RefreshToken) {
	now := r.db.now()
	t.RevokedAt = &now
	r.db.refreshTokens[jti] = t
}

func cloneRefreshToken(t model.RefreshToken) model.RefreshToken {
	t.TokenHash = slices.Clone(t.TokenHash)
	t.RevokedAt = cloneTime(t.RevokedAt)
	t.RotatedFrom = cloneString(t.RotatedFrom)
	return t
}
