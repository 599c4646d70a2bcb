// Package proto holds the wire messages and service descriptors of the ldr
// gRPC API. Messages travel as JSON (see the codec package).
package proto

import "time"

type Empty struct{}

// Auth

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name,omitempty" validate:"max=100"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type SignOutRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
	// AllDevices ends every session of the user, not only this one.
	AllDevices bool `json:"allDevices,omitempty"`
}

type Session struct {
	UserID       string `json:"userId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Spaces

type CreateSpaceRequest struct{}

type CreateSpaceResponse struct {
	SpaceID        string `json:"spaceId"`
	PairInviteCode string `json:"pairInviteCode"`
	TrioInviteCode string `json:"trioInviteCode"`
	PairInviteLink string `json:"pairInviteLink"`
	TrioInviteLink string `json:"trioInviteLink"`
}

// JoinSpaceRequest carries either a raw invite code or a link with ?invite=<code>.
type JoinSpaceRequest struct {
	Invite string `json:"invite" validate:"required,max=2048"`
}

type SpaceRequest struct {
	SpaceID string `json:"spaceId" validate:"required,max=64"`
}

type RenameSpaceRequest struct {
	SpaceID string `json:"spaceId" validate:"required,max=64"`
	Name    string `json:"name" validate:"max=100"`
}

// SpaceSettings carries YYYY-MM-DD dates. An empty string is unset.
type SpaceSettings struct {
	SpaceID           string `json:"spaceId"`
	NextMeetDate      string `json:"nextMeetDate"`
	RelationshipStart string `json:"relationshipStart"`
}

// UpdateSpaceSettingsRequest changes the dates that are present. An empty
// string clears a date.
type UpdateSpaceSettingsRequest struct {
	SpaceID           string  `json:"spaceId" validate:"required,max=64"`
	NextMeetDate      *string `json:"nextMeetDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	RelationshipStart *string `json:"relationshipStart,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type MemberMeta struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	PhotoURL string `json:"photoURL,omitempty"`
}

type Member struct {
	MemberMeta
	Source string `json:"source"`
}

type Space struct {
	ID              string                `json:"id"`
	Members         []string              `json:"members"`
	PairInviteCode  string                `json:"pairInviteCode"`
	TrioInviteCode  string                `json:"trioInviteCode"`
	PairInviteLink  string                `json:"pairInviteLink,omitempty"`
	TrioInviteLink  string                `json:"trioInviteLink,omitempty"`
	MembersMeta     map[string]MemberMeta `json:"membersMeta"`
	CustomName      *string               `json:"customName"`
	Status          string                `json:"status"`
	CreatedBy       string                `json:"createdBy"`
	CreatedAt       time.Time             `json:"createdAt"`
	DisplayName     string                `json:"displayName,omitempty"`
	ResolvedMembers []Member              `json:"resolvedMembers,omitempty"`
	Selected        bool                  `json:"selected"`
	InProfile       bool                  `json:"inProfile,omitempty"`
}

type ListSpacesResponse struct {
	Spaces []*Space `json:"spaces"`
}

type ReconcileMembershipsResponse struct {
	Removed []string `json:"removed"`
}

// Profiles

type Profile struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PhotoURL         string    `json:"photoURL,omitempty"`
	Couples          []string  `json:"couples"`
	ActiveCoupleCode *string   `json:"activeCoupleCode"`
	CoupleCode       *string   `json:"coupleCode,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	PhotoURL *string `json:"photoURL,omitempty" validate:"omitempty,url"`
}

type UploadAvatarRequest struct {
	ContentType string `json:"contentType" validate:"required"`
	Data        []byte `json:"data" validate:"required"`
}

// Items

type Item struct {
	ID         string         `json:"id"`
	SpaceID    string         `json:"spaceId"`
	Collection string         `json:"collection"`
	Title      string         `json:"title"`
	Fields     map[string]any `json:"fields,omitempty"`
	Completed  bool           `json:"completed"`
	CreatedBy  string         `json:"createdBy"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

type CreateItemRequest struct {
	SpaceID    string         `json:"spaceId" validate:"required,max=64"`
	Collection string         `json:"collection" validate:"required"`
	Title      string         `json:"title" validate:"required"`
	Fields     map[string]any `json:"fields,omitempty"`
	Completed  bool           `json:"completed"`
}

type ItemRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

type ListItemsRequest struct {
	SpaceID    string `json:"spaceId" validate:"required,max=64"`
	Collection string `json:"collection" validate:"required"`
	// UpdatedAfter switches to a delta listing when set.
	UpdatedAfter   *time.Time `json:"updatedAfter,omitempty"`
	IncludeDeleted bool       `json:"includeDeleted,omitempty"`
}

type Tombstone struct {
	ID        string    `json:"id"`
	DeletedAt time.Time `json:"deletedAt"`
}

type ListItemsResponse struct {
	Items      []*Item     `json:"items"`
	Tombstones []Tombstone `json:"tombstones,omitempty"`
	ServerTime time.Time   `json:"serverTime"`
}

type UpdateItemRequest struct {
	ID        string         `json:"id" validate:"required,uuid"`
	Title     *string        `json:"title,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
	Completed *bool          `json:"completed,omitempty"`
}

type WatchRequest struct {
	SpaceID string `json:"spaceId" validate:"required,max=64"`
}

type Event struct {
	Kind       string    `json:"kind"`
	SpaceID    string    `json:"spaceId"`
	Collection string    `json:"collection,omitempty"`
	ItemID     string    `json:"itemId,omitempty"`
	ActorID    string    `json:"actorId"`
	At         time.Time `json:"at"`
}
