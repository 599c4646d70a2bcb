package model

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ItemStore defines persistence operations for feature collection items.
type ItemStore interface {
	Create(ctx context.Context, item Item) (Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (Item, error)
	List(ctx context.Context, spaceID string, collection Collection) ([]Item, error)
	Update(ctx context.Context, item Item) (Item, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	GetUpdatedAfter(ctx context.Context, spaceID string, collection Collection, updatedAfter time.Time) ([]Item, error)
	GetDeletedAfter(ctx context.Context, spaceID string, collection Collection, deletedAfter time.Time) ([]Tombstone, error)
}

// Collection names a feature collection scoped by space.
type Collection string

const (
	CollectionDateIdeas    Collection = "dateIdeas"
	CollectionBooks        Collection = "books"
	CollectionShows        Collection = "shows"
	CollectionFutureTrips  Collection = "futureTrips"
	CollectionDreamTrips   Collection = "dreamTrips"
	CollectionSpecialDates Collection = "specialDates"
	CollectionLetters      Collection = "letters"
	CollectionGratitudes   Collection = "gratitudes"
	CollectionMilestones   Collection = "milestones"
	CollectionDailyHabits  Collection = "dailyHabits"
	CollectionStickyNotes  Collection = "stickyNotes"
)

// Collections lists every known collection.
var Collections = []Collection{
	CollectionDateIdeas,
	CollectionBooks,
	CollectionShows,
	CollectionFutureTrips,
	CollectionDreamTrips,
	CollectionSpecialDates,
	CollectionLetters,
	CollectionGratitudes,
	CollectionMilestones,
	CollectionDailyHabits,
	CollectionStickyNotes,
}

// Valid reports whether c is a known collection.
func (c Collection) Valid() bool {
	return slices.Contains(Collections, c)
}

// Item is a record of a feature collection.
type Item struct {
	ID         uuid.UUID
	SpaceID    string
	Collection Collection
	Title      string
	Fields     map[string]any
	Completed  bool
	CreatedBy  uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// CreateItemParams contains parameters to create an item.
type CreateItemParams struct {
	UserID     uuid.UUID
	SpaceID    string
	Collection Collection
	Title      string
	Fields     map[string]any
	Completed  bool
}

// UpdateItemParams contains the fields of an item to change.
type UpdateItemParams struct {
	UserID    uuid.UUID
	ItemID    uuid.UUID
	Title     *string
	Fields    map[string]any
	Completed *bool
}

// Tombstone marks a deleted item and its timestamp.
type Tombstone struct {
	ID        uuid.UUID
	DeletedAt time.Time
}
