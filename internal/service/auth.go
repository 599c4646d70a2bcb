package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/amit-tzadok/LDR/internal/logger"
	"github.com/amit-tzadok/LDR/internal/model"
)

// minPasswordLength is the shortest accepted password.
const minPasswordLength = 8

// SessionHook is notified when a user starts a session.
type SessionHook interface {
	Schedule(userID uuid.UUID) bool
}

type Auth struct {
	userStore   model.UserStore
	sessions    *Sessions
	sessionHook SessionHook
	logger      *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	sessions *Sessions,
	sessionHook SessionHook,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:   userStore,
		sessions:    sessions,
		sessionHook: sessionHook,
		logger:      logger,
	}
}

// SignUp registers an account with an empty profile and starts a session.
func (a *Auth) SignUp(ctx context.Context, params model.SignUpParams) (model.Tokens, error) {
	email := strings.TrimSpace(params.Email)
	a.logger.Debug("Auth service: starting user registration",
		"login", email)

	if _, err := mail.ParseAddress(email); err != nil {
		return model.Tokens{}, fmt.Errorf("%w: invalid email", model.ErrInvalidArgument)
	}
	if len(params.Password) < minPasswordLength {
		return model.Tokens{}, fmt.Errorf("%w: password must be at least %d characters", model.ErrInvalidArgument, minPasswordLength)
	}

	existing, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"login", email,
			"error", err.Error())
		return model.Tokens{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: user already exists",
			"login", email)
		return model.Tokens{}, model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.Tokens{}, fmt.Errorf("failed to hash password: %w", err)
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	id := uuid.New()
	user, err := a.userStore.Create(ctx,
		model.User{
			ID:           id,
			Email:        email,
			PasswordHash: hash,
		},
		model.Profile{
			ID:      id,
			Name:    name,
			Email:   email,
			Couples: []string{},
		},
	)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return model.Tokens{}, err
		}
		a.logger.Error("Auth service: failed to create user",
			"login", email,
			"error", err.Error())
		return model.Tokens{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"login", email,
		"user_id", user.ID)

	return a.startSession(ctx, user.ID)
}

// SignIn verifies credentials and starts a session.
func (a *Auth) SignIn(ctx context.Context, email, password string) (model.Tokens, error) {
	email = strings.TrimSpace(email)
	a.logger.Debug("Auth service: starting user login",
		"login", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.Tokens{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.Tokens{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		a.logger.Info("Auth service: password mismatch",
			"login", email)
		return model.Tokens{}, model.ErrInvalidCredentials
	}

	return a.startSession(ctx, user.ID)
}

// Refresh rotates a refresh token. A resumed session gets the same
// membership reconciliation as a fresh sign-in.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (model.Tokens, error) {
	tokens, err := a.sessions.Rotate(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, model.ErrTokenRevoked) {
			a.logger.Info("Auth service: refresh with spent token rejected")
		}
		return model.Tokens{}, err
	}

	a.schedule(tokens.UserID)
	return tokens, nil
}

// SignOut ends the session of refreshToken, or every session of the user
// when everywhere is set.
func (a *Auth) SignOut(ctx context.Context, refreshToken string, everywhere bool) error {
	return a.sessions.End(ctx, refreshToken, everywhere)
}

func (a *Auth) startSession(ctx context.Context, userID uuid.UUID) (model.Tokens, error) {
	tokens, err := a.sessions.Start(ctx, userID)
	if err != nil {
		return model.Tokens{}, fmt.Errorf("failed to start session: %w", err)
	}

	a.schedule(userID)
	return tokens, nil
}

func (a *Auth) schedule(userID uuid.UUID) {
	if a.sessionHook != nil {
		a.sessionHook.Schedule(userID)
	}
}
