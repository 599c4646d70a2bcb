package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventKind names a change pushed to live subscribers.
type EventKind string

const (
	EventItemCreated  EventKind = "item.created"
	EventItemUpdated  EventKind = "item.updated"
	EventItemDeleted  EventKind = "item.deleted"
	EventSpaceUpdated EventKind = "space.updated"
)

// Event is a change notification for one space.
type Event struct {
	Kind       EventKind  `json:"kind"`
	SpaceID    string     `json:"spaceId"`
	Collection Collection `json:"collection,omitempty"`
	ItemID     uuid.UUID  `json:"itemId"`
	ActorID    uuid.UUID  `json:"actorId"`
	At         time.Time  `json:"at"`
}

// Broker fans space events out to live subscribers.
type Broker interface {
	Publish(ctx context.Context, event Event) error
	// Subscribe delivers events of spaceID until ctx is done or the returned
	// cancel func is called.
	Subscribe(ctx context.Context, spaceID string) (<-chan Event, func(), error)
}
