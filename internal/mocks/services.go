package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/amit-tzadok/LDR/internal/model"
)

var (
	_ model.TokenManager = (*TokenManager)(nil)
	_ model.Storage      = (*Storage)(nil)
	_ model.Broker       = (*Broker)(nil)
)

type TokenManager struct {
	mock.Mock
}

func NewTokenManager(t testingT) *TokenManager {
	m := &TokenManager{}
	register(&m.Mock, t)
	return m
}

func (_m *TokenManager) GenerateAccessToken(userID uuid.UUID) (string, error) {
	ret := _m.Called(userID)
	return ret.String(0), ret.Error(1)
}

func (_m *TokenManager) GenerateRefreshToken(userID uuid.UUID) (string, string, error) {
	ret := _m.Called(userID)
	return ret.String(0), ret.String(1), ret.Error(2)
}

func (_m *TokenManager) ParseAccessToken(token string) (uuid.UUID, error) {
	ret := _m.Called(token)
	return ret.Get(0).(uuid.UUID), ret.Error(1)
}

func (_m *TokenManager) ParseRefreshToken(token string) (uuid.UUID, string, error) {
	ret := _m.Called(token)
	return ret.Get(0).(uuid.UUID), ret.String(1), ret.Error(2)
}

type Storage struct {
	mock.Mock
}

func NewStorage(t testingT) *Storage {
	m := &Storage{}
	register(&m.Mock, t)
	return m
}

func (_m *Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	ret := _m.Called(ctx, key, reader, size, contentType)
	return ret.Error(0)
}

func (_m *Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	ret := _m.Called(ctx, key)
	rc, _ := ret.Get(0).(io.ReadCloser)
	return rc, ret.Error(1)
}

func (_m *Storage) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	return ret.Error(0)
}

func (_m *Storage) Exists(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}

func (_m *Storage) URL(key string) string {
	ret := _m.Called(key)
	return ret.String(0)
}

type Broker struct {
	mock.Mock
}

func NewBroker(t testingT) *Broker {
	m := &Broker{}
	register(&m.Mock, t)
	return m
}

func (_m *Broker) Publish(ctx context.Context, event model.Event) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

func (_m *Broker) Subscribe(ctx context.Context, spaceID string) (<-chan model.Event, func(), error) {
	ret := _m.Called(ctx, spaceID)
	ch, _ := ret.Get(0).(<-chan model.Event)
	cancel, _ := ret.Get(1).(func())
	return ch, cancel, ret.Error(2)
}
