package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/amit-tzadok/LDR/internal/model"
)

var _ model.ProfileStore = (*ProfileRepository)(nil)

type ProfileRepository struct {
	db *DB
}

func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(_ context.Context, id uuid.UUID) (model.Profile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.profiles[id]
	if !ok {
		return model.Profile{}, model.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (r *ProfileRepository) UpdateDetails(_ context.Context, id uuid.UUID, patch model.MemberMetaPatch) (model.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.profiles[id]
	if !ok {
		return model.Profile{}, model.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.PhotoURL != nil {
		p.PhotoURL = *patch.PhotoURL
	}
	p.UpdatedAt = r.db.now()
	r.db.profiles[id] = p
	return cloneProfile(p), nil
}

func (r *ProfileRepository) AddMembership(_ context.Context, id uuid.UUID, spaceID string) (model.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.profiles[id]
	if !ok {
		return model.Profile{}, model.ErrNotFound
	}
	m := p.Memberships().With(spaceID)
	p = cloneProfile(p)
	p.Couples = m.Couples
	p.ActiveCoupleCode = m.ActiveCoupleCode
	p.UpdatedAt = r.db.now()
	r.db.profiles[id] = p
	return cloneProfile(p), nil
}

func (r *ProfileRepository) SetMemberships(_ context.Context, id uuid.UUID, m model.Memberships) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.profiles[id]
	if !ok {
		return model.ErrNotFound
	}
	p.Couples = slices.Clone(m.Couples)
	p.ActiveCoupleCode = cloneString(m.ActiveCoupleCode)
	p.CoupleCode = cloneString(m.CoupleCode)
	p.UpdatedAt = r.db.now()
	r.db.profiles[id] = cloneProfile(p)
	return nil
}
