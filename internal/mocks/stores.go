package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/amit-tzadok/LDR/internal/model"
)

var (
	_ model.UserStore         = (*UserStore)(nil)
	_ model.ProfileStore      = (*ProfileStore)(nil)
	_ model.SpaceStore        = (*SpaceStore)(nil)
	_ model.ItemStore         = (*ItemStore)(nil)
	_ model.RefreshTokenStore = (*RefreshTokenStore)(nil)
)

type UserStore struct {
	mock.Mock
}

func NewUserStore(t testingT) *UserStore {
	m := &UserStore{}
	register(&m.Mock, t)
	return m
}

func (_m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	ret := _m.Called(ctx, email)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *UserStore) Create(ctx context.Context, user model.User, profile model.Profile) (model.User, error) {
	ret := _m.Called(ctx, user, profile)
	return ret.Get(0).(model.User), ret.Error(1)
}

type ProfileStore struct {
	mock.Mock
}

func NewProfileStore(t testingT) *ProfileStore {
	m := &ProfileStore{}
	register(&m.Mock, t)
	return m
}

func (_m *ProfileStore) GetByID(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Profile), ret.Error(1)
}

func (_m *ProfileStore) UpdateDetails(ctx context.Context, id uuid.UUID, patch model.MemberMetaPatch) (model.Profile, error) {
	ret := _m.Called(ctx, id, patch)
	return ret.Get(0).(model.Profile), ret.Error(1)
}

func (_m *ProfileStore) AddMembership(ctx context.Context, id uuid.UUID, spaceID string) (model.Profile, error) {
	ret := _m.Called(ctx, id, spaceID)
	return ret.Get(0).(model.Profile), ret.Error(1)
}

func (_m *ProfileStore) SetMemberships(ctx context.Context, id uuid.UUID, m model.Memberships) error {
	ret := _m.Called(ctx, id, m)
	return ret.Error(0)
}

type SpaceStore struct {
	mock.Mock
}

func NewSpaceStore(t testingT) *SpaceStore {
	m := &SpaceStore{}
	register(&m.Mock, t)
	return m
}

func (_m *SpaceStore) Create(ctx context.Context, space model.Space) (model.Space, error) {
	ret := _m.Called(ctx, space)
	return ret.Get(0).(model.Space), ret.Error(1)
}

func (_m *SpaceStore) GetByID(ctx context.Context, id string) (model.Space, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Space), ret.Error(1)
}

func (_m *SpaceStore) GetByInviteCode(ctx context.Context, code string) (model.Space, error) {
	ret := _m.Called(ctx, code)
	return ret.Get(0).(model.Space), ret.Error(1)
}

func (_m *SpaceStore) ListByMember(ctx context.Context, userID uuid.UUID) ([]model.Space, error) {
	ret := _m.Called(ctx, userID)
	spaces, _ := ret.Get(0).([]model.Space)
	return spaces, ret.Error(1)
}

func (_m *SpaceStore) AddMember(ctx context.Context, id string, userID uuid.UUID, meta model.MemberMeta, expectedCount int) (model.Space, error) {
	ret := _m.Called(ctx, id, userID, meta, expectedCount)
	return ret.Get(0).(model.Space), ret.Error(1)
}

func (_m *SpaceStore) RemoveMember(ctx context.Context, id string, userID uuid.UUID) (model.Space, error) {
	ret := _m.Called(ctx, id, userID)
	return ret.Get(0).(model.Space), ret.Error(1)
}

func (_m *SpaceStore) SetCustomName(ctx context.Context, id string, name *string) error {
	ret := _m.Called(ctx, id, name)
	return ret.Error(0)
}

func (_m *SpaceStore) SetStatus(ctx context.Context, id string, status model.SpaceStatus) error {
	ret := _m.Called(ctx, id, status)
	return ret.Error(0)
}

func (_m *SpaceStore) PatchMemberMeta(ctx context.Context, id string, userID uuid.UUID, patch model.MemberMetaPatch) error {
	ret := _m.Called(ctx, id, userID, patch)
	return ret.Error(0)
}

func (_m *SpaceStore) ReplaceMembersMeta(ctx context.Context, id string, meta map[uuid.UUID]model.MemberMeta) error {
	ret := _m.Called(ctx, id, meta)
	return ret.Error(0)
}

func (_m *SpaceStore) UpdateSettings(ctx context.Context, id string, patch model.SpaceSettingsPatch) (model.SpaceSettings, error) {
	ret := _m.Called(ctx, id, patch)
	return ret.Get(0).(model.SpaceSettings), ret.Error(1)
}

type ItemStore struct {
	mock.Mock
}

func NewItemStore(t testingT) *ItemStore {
	m := &ItemStore{}
	register(&m.Mock, t)
	return m
}

func (_m *ItemStore) Create(ctx context.Context, item model.Item) (model.Item, error) {
	ret := _m.Called(ctx, item)
	return ret.Get(0).(model.Item), ret.Error(1)
}

func (_m *ItemStore) GetByID(ctx context.Context, id uuid.UUID) (model.Item, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Item), ret.Error(1)
}

func (_m *ItemStore) List(ctx context.Context, spaceID string, collection model.Collection) ([]model.Item, error) {
	ret := _m.Called(ctx, spaceID, collection)
	items, _ := ret.Get(0).([]model.Item)
	return items, ret.Error(1)
}

func (_m *ItemStore) Update(ctx context.Context, item model.Item) (model.Item, error) {
	ret := _m.Called(ctx, item)
	return ret.Get(0).(model.Item), ret.Error(1)
}

func (_m *ItemStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *ItemStore) GetUpdatedAfter(ctx context.Context, spaceID string, collection model.Collection, updatedAfter time.Time) ([]model.Item, error) {
	ret := _m.Called(ctx, spaceID, collection, updatedAfter)
	items, _ := ret.Get(0).([]model.Item)
	return items, ret.Error(1)
}

func (_m *ItemStore) GetDeletedAfter(ctx context.Context, spaceID string, collection model.Collection, deletedAfter time.Time) ([]model.Tombstone, error) {
	ret := _m.Called(ctx, spaceID, collection, deletedAfter)
	tombs, _ := ret.Get(0).([]model.Tombstone)
	return tombs, ret.Error(1)
}

type RefreshTokenStore struct {
	mock.Mock
}

func NewRefreshTokenStore(t testingT) *RefreshTokenStore {
	m := &RefreshTokenStore{}
	register(&m.Mock, t)
	return m
}

func (_m *RefreshTokenStore) Create(ctx context.Context, token model.RefreshToken) error {
	ret := _m.Called(ctx, token)
	return ret.Error(0)
}

func (_m *RefreshTokenStore) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	ret := _m.Called(ctx, jti)
	return ret.Get(0).(model.RefreshToken), ret.Error(1)
}

func (_m *RefreshTokenStore) Rotate(ctx context.Context, jti string, next model.RefreshToken) error {
	ret := _m.Called(ctx, jti, next)
	return ret.Error(0)
}

func (_m *RefreshTokenStore) RevokeByJTI(ctx context.Context, jti string) error {
	ret := _m.Called(ctx, jti)
	return ret.Error(0)
}

func (_m *RefreshTokenStore) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	ret := _m.Called(ctx, userID)
	return ret.Error(0)
}
