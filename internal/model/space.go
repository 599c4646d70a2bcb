package model

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxSpaceMembers caps how many users may share a space.
const MaxSpaceMembers = 3

// SpaceStore defines persistence operations for spaces.
type SpaceStore interface {
	Create(ctx context.Context, space Space) (Space, error)
	GetByID(ctx context.Context, id string) (Space, error)
	GetByInviteCode(ctx context.Context, code string) (Space, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]Space, error)
	// AddMember appends userID only if the space currently has exactly
	// expectedCount members and does not already contain userID. A failed
	// precondition is reported as ErrMembershipConflict.
	AddMember(ctx context.Context, id string, userID uuid.UUID, meta MemberMeta, expectedCount int) (Space, error)
	RemoveMember(ctx context.Context, id string, userID uuid.UUID) (Space, error)
	SetCustomName(ctx context.Context, id string, name *string) error
	SetStatus(ctx context.Context, id string, status SpaceStatus) error
	PatchMemberMeta(ctx context.Context, id string, userID uuid.UUID, patch MemberMetaPatch) error
	ReplaceMembersMeta(ctx context.Context, id string, meta map[uuid.UUID]MemberMeta) error
	// UpdateSettings applies each field of patch independently and returns
	// the resulting settings.
	UpdateSettings(ctx context.Context, id string, patch SpaceSettingsPatch) (SpaceSettings, error)
}

// SpaceStatus is the lifecycle state of a space.
type SpaceStatus string

const (
	SpaceStatusActive    SpaceStatus = "active"
	SpaceStatusDissolved SpaceStatus = "dissolved"
)

// Space is a shared container of up to MaxSpaceMembers users.
// Historically called a "couple"; its ID is the space code.
type Space struct {
	ID             string
	Members        []uuid.UUID
	PairInviteCode string
	TrioInviteCode string
	MembersMeta    map[uuid.UUID]MemberMeta
	CustomName     *string
	Status         SpaceStatus
	Settings       SpaceSettings
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasMember reports whether userID is listed in the space's members.
func (s Space) HasMember(userID uuid.UUID) bool {
	return slices.Contains(s.Members, userID)
}

// IsActive reports whether the space still accepts joins and counts as existing.
func (s Space) IsActive() bool {
	return s.Status == "" || s.Status == SpaceStatusActive
}

// InviteTypeFor returns which slot code designates, if any.
func (s Space) InviteTypeFor(code string) (InviteType, bool) {
	code = NormalizeInviteCode(code)
	switch {
	case code == "":
		return "", false
	case code == s.PairInviteCode:
		return InviteTypePair, true
	case code == s.TrioInviteCode:
		return InviteTypeTrio, true
	}
	return "", false
}

// DisplayName returns the custom name if set, otherwise a name derived from
// the first three member names.
func (s Space) DisplayName(memberNames []string) string {
	if s.CustomName != nil && strings.TrimSpace(*s.CustomName) != "" {
		return *s.CustomName
	}

	names := make([]string, 0, MaxSpaceMembers)
	for _, n := range memberNames {
		if n == "" {
			n = "User"
		}
		names = append(names, n)
		if len(names) == MaxSpaceMembers {
			break
		}
	}

	switch len(names) {
	case 2:
		return fmt.Sprintf("%s & %s's Space", names[0], names[1])
	case 3:
		return fmt.Sprintf("%s, %s & %s's Space", names[0], names[1], names[2])
	default:
		return "My Space"
	}
}

// InviteType names the join slot an invite code grants.
type InviteType string

const (
	// InviteTypePair admits the 2nd member.
	InviteTypePair InviteType = "pair"
	// InviteTypeTrio admits the 3rd member.
	InviteTypeTrio InviteType = "trio"
)

// RequiredMembers is the member count a space must have for the code to be accepted.
func (t InviteType) RequiredMembers() int {
	if t == InviteTypeTrio {
		return 2
	}
	return 1
}

// NormalizeInviteCode canonicalizes a typed or pasted invite token.
func NormalizeInviteCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// MemberMeta is the denormalized snapshot of a member's profile kept on a space.
type MemberMeta struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name,omitempty"`
	Email    string    `json:"email,omitempty"`
	PhotoURL string    `json:"photoURL,omitempty"`
}

// MemberMetaPatch carries the fields of a MemberMeta that changed.
type MemberMetaPatch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	PhotoURL *string `json:"photoURL,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p MemberMetaPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.PhotoURL == nil
}

// Apply returns m with the patch applied.
func (p MemberMetaPatch) Apply(m MemberMeta) MemberMeta {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.PhotoURL != nil {
		m.PhotoURL = *p.PhotoURL
	}
	return m
}

// MemberMetaFromProfile snapshots the display attributes of a profile.
func MemberMetaFromProfile(p Profile) MemberMeta {
	return MemberMeta{
		ID:       p.ID,
		Name:     p.Name,
		Email:    p.Email,
		PhotoURL: p.PhotoURL,
	}
}

// MemberSource tells where a resolved member's attributes came from.
type MemberSource string

const (
	MemberSourceProfile     MemberSource = "profile"
	MemberSourceMeta        MemberSource = "meta"
	MemberSourcePlaceholder MemberSource = "placeholder"
)

// ResolvedMember is a member as shown to other members.
type ResolvedMember struct {
	MemberMeta
	Source MemberSource
}

// SpaceInvite is the result of creating a space.
type SpaceInvite struct {
	SpaceID        string
	PairInviteCode string
	TrioInviteCode string
	PairInviteLink string
	TrioInviteLink string
}

// SpaceView is a space as presented to one of its members.
type SpaceView struct {
	Space
	DisplayName     string
	ResolvedMembers []ResolvedMember
	PairInviteLink  string
	TrioInviteLink  string
	// Selected is true when this space is the viewer's activeCoupleCode.
	Selected bool
}

// RecoverableSpace is a space listing the user as a member.
type RecoverableSpace struct {
	Space
	InProfile bool
}

// DateLayout is the calendar date format of space settings.
const DateLayout = "2006-01-02"

// SpaceSettings are the shared dates of a space. A nil date is unset.
type SpaceSettings struct {
	NextMeetDate      *time.Time
	RelationshipStart *time.Time
}

// DateChange sets a date, or clears it when Date is nil.
type DateChange struct {
	Date *time.Time
}

// SpaceSettingsPatch carries the settings that change. Nil fields are kept.
type SpaceSettingsPatch struct {
	NextMeetDate      *DateChange
	RelationshipStart *DateChange
}

// IsEmpty reports whether the patch changes nothing.
func (p SpaceSettingsPatch) IsEmpty() bool {
	return p.NextMeetDate == nil && p.RelationshipStart == nil
}

// Apply returns s with the patch applied.
func (p SpaceSettingsPatch) Apply(s SpaceSettings) SpaceSettings {
	if p.NextMeetDate != nil {
		s.NextMeetDate = p.NextMeetDate.Date
	}
	if p.RelationshipStart != nil {
		s.RelationshipStart = p.RelationshipStart.Date
	}
	return s
}

// ParseDate reads a YYYY-MM-DD date. A blank value means unset.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidArgument, value)
	}
	return &t, nil
}

// FormatDate renders t as YYYY-MM-DD, or "" when unset.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
