package model

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ProfileStore defines persistence operations for user profiles. Profiles
// are created with their account by UserStore.Create.
type ProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (Profile, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, patch MemberMetaPatch) (Profile, error)
	// AddMembership appends spaceID to couples if missing and makes it active.
	AddMembership(ctx context.Context, id uuid.UUID, spaceID string) (Profile, error)
	SetMemberships(ctx context.Context, id uuid.UUID, m Memberships) error
}

// Profile is the per-user record. ID equals the authentication identity.
type Profile struct {
	ID               uuid.UUID
	Name             string
	Email            string
	PhotoURL         string
	Couples          []string
	ActiveCoupleCode *string
	// CoupleCode is the legacy single-space pointer kept for old clients.
	CoupleCode *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Memberships is the membership part of a profile, written as a unit.
type Memberships struct {
	Couples          []string
	ActiveCoupleCode *string
	CoupleCode       *string
}

// Memberships returns the membership fields of the profile.
func (p Profile) Memberships() Memberships {
	return Memberships{
		Couples:          slices.Clone(p.Couples),
		ActiveCoupleCode: p.ActiveCoupleCode,
		CoupleCode:       p.CoupleCode,
	}
}

// NeedsLegacyUpgrade reports whether the profile only knows the legacy single space.
func (p Profile) NeedsLegacyUpgrade() bool {
	return len(p.Couples) == 0 && p.CoupleCode != nil && *p.CoupleCode != ""
}

// UpgradeLegacy moves the legacy coupleCode into couples. The legacy field
// itself is left in place.
func (m Memberships) UpgradeLegacy() Memberships {
	if len(m.Couples) > 0 || m.CoupleCode == nil || *m.CoupleCode == "" {
		return m
	}
	code := *m.CoupleCode
	m.Couples = []string{code}
	if m.ActiveCoupleCode == nil || *m.ActiveCoupleCode == "" {
		m.ActiveCoupleCode = &code
	}
	return m
}

// With adds spaceID to couples and makes it active. A legacy-only set is
// upgraded first so the legacy space survives the write.
func (m Memberships) With(spaceID string) Memberships {
	m = m.UpgradeLegacy()
	m.Couples = slices.Clone(m.Couples)
	if !slices.Contains(m.Couples, spaceID) {
		m.Couples = append(m.Couples, spaceID)
	}
	m.ActiveCoupleCode = &spaceID
	return m
}

// Without removes the given space codes. When the active or legacy pointer
// names a removed code the active pointer moves to the first survivor (or nil)
// and the legacy pointer is cleared.
func (m Memberships) Without(codes ...string) Memberships {
	removed := func(code string) bool { return slices.Contains(codes, code) }

	kept := make([]string, 0, len(m.Couples))
	for _, c := range m.Couples {
		if !removed(c) {
			kept = append(kept, c)
		}
	}
	m.Couples = kept

	if m.ActiveCoupleCode != nil && (removed(*m.ActiveCoupleCode) || !slices.Contains(kept, *m.ActiveCoupleCode)) {
		m.ActiveCoupleCode = nil
		if len(kept) > 0 {
			first := kept[0]
			m.ActiveCoupleCode = &first
		}
	}
	if m.CoupleCode != nil && removed(*m.CoupleCode) {
		m.CoupleCode = nil
	}
	return m
}

// Contains reports whether spaceID is listed in couples.
func (m Memberships) Contains(spaceID string) bool {
	return slices.Contains(m.Couples, spaceID)
}

// Equal reports whether both membership sets hold the same codes and pointers.
func (m Memberships) Equal(other Memberships) bool {
	return slices.Equal(m.Couples, other.Couples) &&
		equalCode(m.ActiveCoupleCode, other.ActiveCoupleCode) &&
		equalCode(m.CoupleCode, other.CoupleCode)
}

func equalCode(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Active returns the active space code or "".
func (m Memberships) Active() string {
	if m.ActiveCoupleCode == nil {
		return ""
	}
	return *m.ActiveCoupleCode
}
