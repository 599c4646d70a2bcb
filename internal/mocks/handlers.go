package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/amit-tzadok/LDR/internal/model"
)

// AuthService mocks the account operations served by the Auth handler.
type AuthService struct {
	mock.Mock
}

func NewAuthService(t testingT) *AuthService {
	m := &AuthService{}
	register(&m.Mock, t)
	return m
}

func (_m *AuthService) SignUp(ctx context.Context, params model.SignUpParams) (model.Tokens, error) {
	ret := _m.Called(ctx, params)
	return ret.Get(0).(model.Tokens), ret.Error(1)
}

func (_m *AuthService) SignIn(ctx context.Context, email, password string) (model.Tokens, error) {
	ret := _m.Called(ctx, email, password)
	return ret.Get(0).(model.Tokens), ret.Error(1)
}

func (_m *AuthService) Refresh(ctx context.Context, refreshToken string) (model.Tokens, error) {
	ret := _m.Called(ctx, refreshToken)
	return ret.Get(0).(model.Tokens), ret.Error(1)
}

func (_m *AuthService) SignOut(ctx context.Context, refreshToken string, everywhere bool) error {
	ret := _m.Called(ctx, refreshToken, everywhere)
	return ret.Error(0)
}

// SpaceService mocks the space operations served by the Space handler,
// including reconciliation and metadata backfill.
type SpaceService struct {
	mock.Mock
}

func NewSpaceService(t testingT) *SpaceService {
	m := &SpaceService{}
	register(&m.Mock, t)
	return m
}

func (_m *SpaceService) CreateSpace(ctx context.Context, userID uuid.UUID) (model.SpaceInvite, error) {
	ret := _m.Called(ctx, userID)
	return ret.Get(0).(model.SpaceInvite), ret.Error(1)
}

func (_m *SpaceService) JoinSpace(ctx context.Context, userID uuid.UUID, invite string) (model.Space, error) {
	ret := _m.Called(ctx, userID, invite)
	return ret.Get(0).(model.Space), ret.Error(1)
}

func (_m *SpaceService) LeaveSpace(ctx context.Context, userID uuid.UUID, spaceID string) error {
	ret := _m.Called(ctx, userID, spaceID)
	return ret.Error(0)
}

func (_m *SpaceService) SwitchActiveSpace(ctx context.Context, userID uuid.UUID, spaceID string) error {
	ret := _m.Called(ctx, userID, spaceID)
	return ret.Error(0)
}

func (_m *SpaceService) RenameSpace(ctx context.Context, userID uuid.UUID, spaceID string, name string) error {
	ret := _m.Called(ctx, userID, spaceID, name)
	return ret.Error(0)
}

func (_m *SpaceService) GetSpace(ctx context.Context, userID uuid.UUID, spaceID string) (model.SpaceView, error) {
	ret := _m.Called(ctx, userID, spaceID)
	return ret.Get(0).(model.SpaceView), ret.Error(1)
}

func (_m *SpaceService) ListSpaces(ctx context.Context, userID uuid.UUID) ([]model.SpaceView, error) {
	ret := _m.Called(ctx, userID)
	views, _ := ret.Get(0).([]model.SpaceView)
	return views, ret.Error(1)
}

func (_m *SpaceService) ListRecoverableSpaces(ctx context.Context, userID uuid.UUID) ([]model.RecoverableSpace, error) {
	ret := _m.Called(ctx, userID)
	spaces, _ := ret.Get(0).([]model.RecoverableSpace)
	return spaces, ret.Error(1)
}

func (_m *SpaceService) RecoverSpace(ctx context.Context, userID uuid.UUID, spaceID string) error {
	ret := _m.Called(ctx, userID, spaceID)
	return ret.Error(0)
}

func (_m *SpaceService) GetSpaceSettings(ctx context.Context, userID uuid.UUID, spaceID string) (model.SpaceSettings, error) {
	ret := _m.Called(ctx, userID, spaceID)
	return ret.Get(0).(model.SpaceSettings), ret.Error(1)
}

func (_m *SpaceService) UpdateSpaceSettings(ctx context.Context, userID uuid.UUID, spaceID string, patch model.SpaceSettingsPatch) (model.SpaceSettings, error) {
	ret := _m.Called(ctx, userID, spaceID, patch)
	return ret.Get(0).(model.SpaceSettings), ret.Error(1)
}

func (_m *SpaceService) Reconcile(ctx context.Context, userID uuid.UUID) ([]string, error) {
	ret := _m.Called(ctx, userID)
	removed, _ := ret.Get(0).([]string)
	return removed, ret.Error(1)
}

func (_m *SpaceService) BackfillMembersMeta(ctx context.Context, userID uuid.UUID, spaceID string) (model.Space, error) {
	ret := _m.Called(ctx, userID, spaceID)
	return ret.Get(0).(model.Space), ret.Error(1)
}
