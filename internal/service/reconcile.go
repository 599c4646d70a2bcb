package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amit-tzadok/LDR/internal/logger"
	"github.com/amit-tzadok/LDR/internal/model"
)

// reconcileTimeout bounds a single background reconciliation pass.
const reconcileTimeout = 30 * time.Second

// Reconciler removes space codes from a profile that no longer name a space
// the user belongs to.
type Reconciler struct {
	spaceStore   model.SpaceStore
	profileStore model.ProfileStore
	logger       *logger.Logger
}

func NewReconciler(spaceStore model.SpaceStore, profileStore model.ProfileStore, logger *logger.Logger) *Reconciler {
	return &Reconciler{
		spaceStore:   spaceStore,
		profileStore: profileStore,
		logger:       logger,
	}
}

// Reconcile drops every code in the user's couples that names a missing,
// dissolved or foreign space and returns the dropped codes. A code whose space
// could not be read is kept.
func (r *Reconciler) Reconcile(ctx context.Context, userID uuid.UUID) ([]string, error) {
	profile, err := r.profileStore.GetByID(ctx, userID)
	if err != nil {
		return nil, readFailure(err)
	}

	current := profile.Memberships()
	upgraded := current.UpgradeLegacy()

	var stale []string
	for _, code := range upgraded.Couples {
		space, err := r.spaceStore.GetByID(ctx, code)
		switch {
		case errors.Is(err, model.ErrNotFound):
			stale = append(stale, code)
		case err != nil:
			r.logger.Warn("Reconcile service: space unreadable, keeping membership",
				"user_id", userID,
				"space_id", code,
				"error", err.Error())
		case !space.IsActive() || !space.HasMember(userID):
			stale = append(stale, code)
		}
	}

	next := upgraded.Without(stale...)
	if next.Equal(current) {
		return nil, nil
	}

	if err := r.profileStore.SetMemberships(ctx, userID, next); err != nil {
		return nil, fmt.Errorf("failed to update profile memberships: %w", err)
	}

	if len(stale) > 0 {
		r.logger.Info("Reconcile service: removed stale memberships",
			"user_id", userID,
			"removed", stale)
	}

	return stale, nil
}

type membershipReconciler interface {
	Reconcile(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// ReconcileScheduler runs one reconciliation per session after a settle delay.
type ReconcileScheduler struct {
	reconciler membershipReconciler
	delay      time.Duration
	logger     *logger.Logger

	mu      sync.Mutex
	pending map[uuid.UUID]struct{}
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewReconcileScheduler(reconciler membershipReconciler, delay time.Duration, logger *logger.Logger) *ReconcileScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &ReconcileScheduler{
		reconciler: reconciler,
		delay:      delay,
		logger:     logger,
		pending:    make(map[uuid.UUID]struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Schedule queues a reconciliation for userID. It reports false when one is
// already pending for the user or the scheduler is closed.
func (s *ReconcileScheduler) Schedule(userID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return false
	}
	if _, ok := s.pending[userID]; ok {
		return false
	}
	s.pending[userID] = struct{}{}

	s.wg.Add(1)
	go s.run(userID)
	return true
}

func (s *ReconcileScheduler) run(userID uuid.UUID) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.pending, userID)
		s.mu.Unlock()
	}()

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-s.ctx.Done():
		return
	case <-timer.C:
	}

	ctx, cancel := context.WithTimeout(s.ctx, reconcileTimeout)
	defer cancel()

	if _, err := s.reconciler.Reconcile(ctx, userID); err != nil {
		s.logger.Warn("Reconcile service: background pass failed",
			"user_id", userID,
			"error", err.Error())
	}
}

// Close cancels pending passes and waits for running ones to return.
func (s *ReconcileScheduler) Close() {
	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()
	s.wg.Wait()
}
