package memory

import (
	"context"
	"maps"
	"slices"
	"sort"

	"github.com/google/uuid"

	"github.com/amit-tzadok/LDR/internal/model"
)

var _ model.SpaceStore = (*SpaceRepository)(nil)

type SpaceRepository struct {
	db *DB
}

func NewSpaceRepository(db *DB) *SpaceRepository {
	return &SpaceRepository{db: db}
}

func (r *SpaceRepository) Create(_ context.Context, space model.Space) (model.Space, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.spaces[space.ID]; exists {
		return model.Space{}, model.ErrMembershipConflict
	}
	if space.Status == "" {
		space.Status = model.SpaceStatusActive
	}
	space = cloneSpace(space)
	now := r.db.now()
	space.CreatedAt, space.UpdatedAt = now, now
	r.db.spaces[space.ID] = space
	return cloneSpace(space), nil
}

func (r *SpaceRepository) GetByID(_ context.Context, id string) (model.Space, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.spaces[id]
	if !ok {
		return model.Space{}, model.ErrNotFound
	}
	return cloneSpace(s), nil
}

func (r *SpaceRepository) GetByInviteCode(_ context.Context, code string) (model.Space, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, s := range r.db.spaces {
		if s.PairInviteCode == code || s.TrioInviteCode == code {
			return cloneSpace(s), nil
		}
	}
	return model.Space{}, model.ErrNotFound
}

func (r *SpaceRepository) ListByMember(_ context.Context, userID uuid.UUID) ([]model.Space, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []model.Space
	for _, s := range r.db.spaces {
		if s.HasMember(userID) {
			out = append(out, cloneSpace(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *SpaceRepository) AddMember(_ context.Context, id string, userID uuid.UUID, meta model.MemberMeta, expectedCount int) (model.Space, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.spaces[id]
	if !ok || !s.IsActive() {
		return model.Space{}, model.ErrMembershipConflict
	}
	if len(s.Members) != expectedCount || len(s.Members) >= model.MaxSpaceMembers || s.HasMember(userID) {
		return model.Space{}, model.ErrMembershipConflict
	}

	s = cloneSpace(s)
	s.Members = append(s.Members, userID)
	s.MembersMeta[userID] = meta
	s.UpdatedAt = r.db.now()
	r.db.spaces[id] = s
	return cloneSpace(s), nil
}

func (r *SpaceRepository) RemoveMember(_ context.Context, id string, userID uuid.UUID) (model.Space, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.spaces[id]
	if !ok {
		return model.Space{}, model.ErrNotFound
	}

	s = cloneSpace(s)
	s.Members = slices.DeleteFunc(s.Members, func(m uuid.UUID) bool { return m == userID })
	delete(s.MembersMeta, userID)
	s.UpdatedAt = r.db.now()
	r.db.spaces[id] = s
	return cloneSpace(s), nil
}

func (r *SpaceRepository) SetCustomName(_ context.Context, id string, name *string) error {
	return r.update(id, func(s *model.Space) bool {
		s.CustomName = cloneString(name)
		return true
	})
}

func (r *SpaceRepository) SetStatus(_ context.Context, id string, status model.SpaceStatus) error {
	return r.update(id, func(s *model.Space) bool {
		s.Status = status
		return true
	})
}

func (r *SpaceRepository) PatchMemberMeta(_ context.Context, id string, userID uuid.UUID, patch model.MemberMetaPatch) error {
	return r.update(id, func(s *model.Space) bool {
		if !s.HasMember(userID) {
			return false
		}
		current, ok := s.MembersMeta[userID]
		if !ok {
			current = model.MemberMeta{ID: userID}
		}
		s.MembersMeta[userID] = patch.Apply(current)
		return true
	})
}

func (r *SpaceRepository) ReplaceMembersMeta(_ context.Context, id string, meta map[uuid.UUID]model.MemberMeta) error {
	return r.update(id, func(s *model.Space) bool {
		s.MembersMeta = maps.Clone(meta)
		if s.MembersMeta == nil {
			s.MembersMeta = make(map[uuid.UUID]model.MemberMeta)
		}
		return true
	})
}

func (r *SpaceRepository) UpdateSettings(_ context.Context, id string, patch model.SpaceSettingsPatch) (model.SpaceSettings, error) {
	var settings model.SpaceSettings
	err := r.update(id, func(s *model.Space) bool {
		s.Settings = cloneSettings(patch.Apply(s.Settings))
		settings = cloneSettings(s.Settings)
		return true
	})
	return settings, err
}

// update applies fn to a copy of the space and stores it when fn reports a change.
func (r *SpaceRepository) update(id string, fn func(s *model.Space) bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.spaces[id]
	if !ok {
		return model.ErrNotFound
	}
	s = cloneSpace(s)
	if !fn(&s) {
		return model.ErrNotFound
	}
	s.UpdatedAt = r.db.now()
	r.db.spaces[id] = s
	return nil
}
