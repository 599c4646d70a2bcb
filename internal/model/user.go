package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for account credentials.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	// Create stores the account together with its initial profile. Either
	// both records are written or neither is.
	Create(ctx context.Context, user User, profile Profile) (User, error)
}

// User is an account credential. Its ID is the identity every profile,
// membership and item refers to.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// SignUpParams contains parameters to register an account.
type SignUpParams struct {
	Email    string
	Password string
	Name     string
}

// Tokens is an access/refresh token pair.
type Tokens struct {
	UserID       uuid.UUID
	AccessToken  string
	RefreshToken string
}
