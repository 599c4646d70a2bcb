package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/amit-tzadok/LDR/internal/invite"
	"github.com/amit-tzadok/LDR/internal/model"
	"github.com/amit-tzadok/LDR/internal/notify"
	"github.com/amit-tzadok/LDR/internal/repository/memory"
	"github.com/amit-tzadok/LDR/internal/testutil"
)

type fixture struct {
	users    *memory.UserRepository
	spaces   *memory.SpaceRepository
	profiles *memory.ProfileRepository
	items    *memory.ItemRepository
	broker   *notify.MemoryBroker
	invites  *invite.Generator

	space      *Space
	profile    *Profile
	item       *Item
	reconciler *Reconciler
}

func newFixture(t *testing.T, dissolveOnLeave bool) *fixture {
	t.Helper()

	db := memory.NewDB()
	gen, err := invite.NewGenerator(16, "https://ldr.example/join")
	require.NoError(t, err)

	f := &fixture{
		users:    memory.NewUserRepository(db),
		spaces:   memory.NewSpaceRepository(db),
		profiles: memory.NewProfileRepository(db),
		items:    memory.NewItemRepository(db),
		broker:   notify.NewMemoryBroker(),
		invites:  gen,
	}
	log := testutil.MakeNoopLogger()
	f.space = NewSpace(f.spaces, f.profiles, f.users, gen, f.broker, dissolveOnLeave, log)
	f.profile = NewProfile(f.profiles, f.spaces, nil, f.broker, log)
	f.item = NewItem(f.items, f.spaces, f.broker, log)
	f.reconciler = NewReconciler(f.spaces, f.profiles, log)
	return f
}

func (f *fixture) newUser(t *testing.T, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	email := name + "@example.com"
	_, err := f.users.Create(context.Background(),
		model.User{ID: id, Email: email},
		model.Profile{ID: id, Name: name, Email: email},
	)
	require.NoError(t, err)
	return id
}

func (f *fixture) getProfile(t *testing.T, id uuid.UUID) model.Profile {
	t.Helper()
	p, err := f.profiles.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (f *fixture) getSpace(t *testing.T, id string) model.Space {
	t.Helper()
	s, err := f.spaces.GetByID(context.Background(), id)
	require.NoError(t, err)
	return s
}

func ptr[T any](v T) *T {
	return &v
}
