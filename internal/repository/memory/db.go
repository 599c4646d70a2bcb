// Package memory provides in-process stores with the same semantics as the
// postgres repositories. It backs the server when no DSN is configured.
package memory

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amit-tzadok/LDR/internal/model"
)

// DB holds every table behind a single lock so that conditional writes are atomic.
type DB struct {
	mu            sync.RWMutex
	now           func() time.Time
	users         map[uuid.UUID]model.User
	profiles      map[uuid.UUID]model.Profile
	spaces        map[string]model.Space
	items         map[uuid.UUID]model.Item
	refreshTokens map[string]model.RefreshToken
}

func NewDB() *DB {
	return &DB{
		now:           time.Now,
		users:         make(map[uuid.UUID]model.User),
		profiles:      make(map[uuid.UUID]model.Profile),
		spaces:        make(map[string]model.Space),
		items:         make(map[uuid.UUID]model.Item),
		refreshTokens: make(map[string]model.RefreshToken),
	}
}

func (db *DB) Close() error {
	return nil
}

func cloneSpace(s model.Space) model.Space {
	s.Members = slices.Clone(s.Members)
	if s.Members == nil {
		s.Members = []uuid.UUID{}
	}
	s.MembersMeta = maps.Clone(s.MembersMeta)
	if s.MembersMeta == nil {
		s.MembersMeta = make(map[uuid.UUID]model.MemberMeta)
	}
	if s.CustomName != nil {
		name := *s.CustomName
		s.CustomName = &name
	}
	s.Settings = cloneSettings(s.Settings)
	return s
}

func cloneSettings(s model.SpaceSettings) model.SpaceSettings {
	s.NextMeetDate = cloneTime(s.NextMeetDate)
	s.RelationshipStart = cloneTime(s.RelationshipStart)
	return s
}

func cloneProfile(p model.Profile) model.Profile {
	p.Couples = slices.Clone(p.Couples)
	if p.Couples == nil {
		p.Couples = []string{}
	}
	p.ActiveCoupleCode = cloneString(p.ActiveCoupleCode)
	p.CoupleCode = cloneString(p.CoupleCode)
	return p
}

func cloneItem(i model.Item) model.Item {
	i.Fields = maps.Clone(i.Fields)
	if i.Fields == nil {
		i.Fields = map[string]any{}
	}
	i.DeletedAt = cloneTime(i.DeletedAt)
	return i
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
