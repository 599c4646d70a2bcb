package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amit-tzadok/LDR/internal/mocks"
	"github.com/amit-tzadok/LDR/internal/model"
	"github.com/amit-tzadok/LDR/internal/testutil"
)

func TestReconciler_RemovesOnlyDisprovedCodes(t *testing.T) {
	ctx := context.Background()
	spaces := mocks.NewSpaceStore(t)
	profiles := mocks.NewProfileStore(t)
	r := NewReconciler(spaces, profiles, testutil.MakeNoopLogger())

	userID, other := uuid.New(), uuid.New()
	profiles.On("GetByID", mock.Anything, userID).Return(model.Profile{
		ID:               userID,
		Couples:          []string{"missing", "flaky", "kicked", "dissolved", "ok"},
		ActiveCoupleCode: ptr("kicked"),
		CoupleCode:       ptr("missing"),
	}, nil).Once()

	spaces.On("GetByID", mock.Anything, "missing").Return(model.Space{}, model.ErrNotFound).Once()
	spaces.On("GetByID", mock.Anything, "flaky").Return(model.Space{}, errors.New("deadline exceeded")).Once()
	spaces.On("GetByID", mock.Anything, "kicked").Return(model.Space{ID: "kicked", Members: []uuid.UUID{other}}, nil).Once()
	spaces.On("GetByID", mock.Anything, "dissolved").Return(model.Space{ID: "dissolved", Members: []uuid.UUID{userID}, Status: model.SpaceStatusDissolved}, nil).Once()
	spaces.On("GetByID", mock.Anything, "ok").Return(model.Space{ID: "ok", Members: []uuid.UUID{userID, other}}, nil).Once()

	profiles.On("SetMemberships", mock.Anything, userID, model.Memberships{
		Couples:          []string{"flaky", "ok"},
		ActiveCoupleCode: ptr("flaky"),
	}).Return(nil).Once()

	removed, err := r.Reconcile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"missing", "kicked", "dissolved"}, removed)
}

func TestReconciler_ReadErrorKeepsEntry(t *testing.T) {
	ctx := context.Background()
	spaces := mocks.NewSpaceStore(t)
	profiles := mocks.NewProfileStore(t)
	r := NewReconciler(spaces, profiles, testutil.MakeNoopLogger())

	userID := uuid.New()
	profiles.On("GetByID", mock.Anything, userID).Return(model.Profile{
		ID:               userID,
		Couples:          []string{"s1"},
		ActiveCoupleCode: ptr("s1"),
	}, nil).Once()
	spaces.On("GetByID", mock.Anything, "s1").Return(model.Space{}, errors.New("unavailable")).Once()

	removed, err := r.Reconcile(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, removed)
	profiles.AssertNotCalled(t, "SetMemberships", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconciler_ProfileReadFailure(t *testing.T) {
	spaces := mocks.NewSpaceStore(t)
	profiles := mocks.NewProfileStore(t)
	r := NewReconciler(spaces, profiles, testutil.MakeNoopLogger())

	userID := uuid.New()
	profiles.On("GetByID", mock.Anything, userID).Return(model.Profile{}, errors.New("unavailable")).Once()

	_, err := r.Reconcile(context.Background(), userID)
	require.ErrorIs(t, err, model.ErrReadFailure)
}

func TestReconciler_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.newUser(t, "Alice")

	created, err := f.space.CreateSpace(ctx, alice)
	require.NoError(t, err)
	require.NoError(t, f.profiles.SetMemberships(ctx, alice, model.Memberships{
		Couples:          []string{"gone", created.SpaceID},
		ActiveCoupleCode: ptr("gone"),
	}))

	removed, err := f.reconciler.Reconcile(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"gone"}, removed)

	removed, err = f.reconciler.Reconcile(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, removed)

	p := f.getProfile(t, alice)
	assert.Equal(t, []string{created.SpaceID}, p.Couples)
	assert.Equal(t, created.SpaceID, p.Memberships().Active())
}

func TestReconciler_UpgradesLegacyProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.newUser(t, "Alice")

	created, err := f.space.CreateSpace(ctx, alice)
	require.NoError(t, err)
	require.NoError(t, f.profiles.SetMemberships(ctx, alice, model.Memberships{CoupleCode: ptr(created.SpaceID)}))

	_, err = f.reconciler.Reconcile(ctx, alice)
	require.NoError(t, err)

	p := f.getProfile(t, alice)
	assert.Equal(t, []string{created.SpaceID}, p.Couples)
	assert.Equal(t, created.SpaceID, p.Memberships().Active())
	assert.Equal(t, created.SpaceID, *p.CoupleCode)
}

type countingReconciler struct {
	calls atomic.Int32
}

func (c *countingReconciler) Reconcile(context.Context, uuid.UUID) ([]string, error) {
	c.calls.Add(1)
	return nil, nil
}

func TestReconcileScheduler_RunsOncePerPendingSession(t *testing.T) {
	rec := &countingReconciler{}
	s := NewReconcileScheduler(rec, 20*time.Millisecond, testutil.MakeNoopLogger())
	defer s.Close()

	userID := uuid.New()
	assert.True(t, s.Schedule(userID))
	assert.False(t, s.Schedule(userID))
	assert.True(t, s.Schedule(uuid.New()))

	require.Eventually(t, func() bool { return rec.calls.Load() == 2 }, time.Second, 5*time.Millisecond)

	// After the pass completes, a new session schedules again.
	require.Eventually(t, func() bool { return s.Schedule(userID) }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return rec.calls.Load() == 3 }, time.Second, 5*time.Millisecond)
}

func TestReconcileScheduler_CloseCancelsPending(t *testing.T) {
	rec := &countingReconciler{}
	s := NewReconcileScheduler(rec, time.Hour, testutil.MakeNoopLogger())

	assert.True(t, s.Schedule(uuid.New()))
	s.Close()

	assert.Equal(t, int32(0), rec.calls.Load())
	assert.False(t, s.Schedule(uuid.New()))
}
