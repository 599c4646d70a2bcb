package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amit-tzadok/LDR/internal/logger"
	"github.com/amit-tzadok/LDR/internal/model"
)

// maxTitleLength bounds item titles in characters.
const maxTitleLength = 255

type Item struct {
	itemStore  model.ItemStore
	spaceStore model.SpaceStore
	broker     model.Broker
	logger     *logger.Logger
}

func NewItem(
	itemStore model.ItemStore,
	spaceStore model.SpaceStore,
	broker model.Broker,
	logger *logger.Logger,
) *Item {
	return &Item{
		itemStore:  itemStore,
		spaceStore: spaceStore,
		broker:     broker,
		logger:     logger,
	}
}

func (s *Item) CreateItem(ctx context.Context, params model.CreateItemParams) (model.Item, error) {
	if err := validateCollection(params.Collection); err != nil {
		return model.Item{}, err
	}
	title, err := validateTitle(params.Title)
	if err != nil {
		return model.Item{}, err
	}
	if err := s.requireMember(ctx, params.UserID, params.SpaceID); err != nil {
		return model.Item{}, err
	}

	item, err := s.itemStore.Create(ctx, model.Item{
		ID:         uuid.New(),
		SpaceID:    params.SpaceID,
		Collection: params.Collection,
		Title:      title,
		Fields:     params.Fields,
		Completed:  params.Completed,
		CreatedBy:  params.UserID,
	})
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	s.publish(ctx, model.EventItemCreated, item, params.UserID)

	return item, nil
}

func (s *Item) GetItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (model.Item, error) {
	item, err := s.itemStore.GetByID(ctx, itemID)
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to get item by id: %w", err)
	}

	if err := s.requireMember(ctx, userID, item.SpaceID); err != nil {
		if errors.Is(err, model.ErrNotAMember) {
			return model.Item{}, model.ErrNotFound
		}
		return model.Item{}, err
	}

	return item, nil
}

func (s *Item) ListItems(ctx context.Context, userID uuid.UUID, spaceID string, collection model.Collection) ([]model.Item, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, userID, spaceID); err != nil {
		return nil, err
	}

	items, err := s.itemStore.List(ctx, spaceID, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return items, nil
}

// ListItemsDelta returns the items changed and deleted after updatedAfter,
// plus the server time to pass as the next cursor.
func (s *Item) ListItemsDelta(ctx context.Context, userID uuid.UUID, spaceID string, collection model.Collection, updatedAfter time.Time, includeDeleted bool) ([]model.Item, []model.Tombstone, time.Time, error) {
	if err := validateCollection(collection); err != nil {
		return nil, nil, time.Time{}, err
	}
	if err := s.requireMember(ctx, userID, spaceID); err != nil {
		return nil, nil, time.Time{}, err
	}

	serverTime := time.Now()

	items, err := s.itemStore.GetUpdatedAfter(ctx, spaceID, collection, updatedAfter)
	if err != nil {
		return nil, nil, time.Time{}, fmt.Errorf("get updated after failed: %w", err)
	}

	var tombs []model.Tombstone
	if includeDeleted {
		tombs, err = s.itemStore.GetDeletedAfter(ctx, spaceID, collection, updatedAfter)
		if err != nil {
			return nil, nil, time.Time{}, fmt.Errorf("get deleted after failed: %w", err)
		}
	}

	return items, tombs, serverTime, nil
}

func (s *Item) UpdateItem(ctx context.Context, params model.UpdateItemParams) (model.Item, error) {
	item, err := s.GetItem(ctx, params.UserID, params.ItemID)
	if err != nil {
		return model.Item{}, err
	}

	if params.Title != nil {
		title, err := validateTitle(*params.Title)
		if err != nil {
			return model.Item{}, err
		}
		item.Title = title
	}
	if params.Fields != nil {
		item.Fields = params.Fields
	}
	if params.Completed != nil {
		item.Completed = *params.Completed
	}

	item, err = s.itemStore.Update(ctx, item)
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to update item: %w", err)
	}

	s.publish(ctx, model.EventItemUpdated, item, params.UserID)

	return item, nil
}

func (s *Item) DeleteItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) error {
	item, err := s.GetItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if err := s.itemStore.SoftDelete(ctx, itemID); err != nil {
		return fmt.Errorf("failed to soft delete item: %w", err)
	}

	s.publish(ctx, model.EventItemDeleted, item, userID)

	return nil
}

// Watch subscribes a member to the live events of a space. The channel is
// closed when ctx is done or the returned cancel func is called.
func (s *Item) Watch(ctx context.Context, userID uuid.UUID, spaceID string) (<-chan model.Event, func(), error) {
	if err := s.requireMember(ctx, userID, spaceID); err != nil {
		return nil, nil, err
	}

	events, cancel, err := s.broker.Subscribe(ctx, spaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	s.logger.Debug("Item service: watch started",
		"user_id", userID,
		"space_id", spaceID)

	watchCtx, stopWatch := context.WithCancel(ctx)
	stop := func() {
		stopWatch()
		cancel()
	}

	out := make(chan model.Event)
	go s.forwardWhileMember(watchCtx, userID, spaceID, events, out, stop)
	return out, stop, nil
}

// forwardWhileMember relays events to out and closes it once userID stops
// being a member. Membership is re-read on every space update.
func (s *Item) forwardWhileMember(
	ctx context.Context,
	userID uuid.UUID,
	spaceID string,
	events <-chan model.Event,
	out chan<- model.Event,
	stop func(),
) {
	defer close(out)
	defer stop()

	for {
		var (
			event model.Event
			ok    bool
		)
		select {
		case <-ctx.Done():
			return
		case event, ok = <-events:
			if !ok {
				return
			}
		}

		if event.Kind == model.EventSpaceUpdated {
			err := s.requireMember(ctx, userID, spaceID)
			if errors.Is(err, model.ErrNotAMember) {
				s.logger.Info("Item service: watcher left the space, ending watch",
					"user_id", userID,
					"space_id", spaceID)
				return
			}
			if err != nil {
				s.logger.Warn("Item service: membership recheck failed, keeping watch",
					"user_id", userID,
					"space_id", spaceID,
					"error", err.Error())
			}
		}

		select {
		case <-ctx.Done():
			return
		case out <- event:
		}
	}
}

func (s *Item) requireMember(ctx context.Context, userID uuid.UUID, spaceID string) error {
	if spaceID == "" {
		return fmt.Errorf("%w: space id is required", model.ErrInvalidArgument)
	}

	space, err := s.spaceStore.GetByID(ctx, spaceID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrNotAMember
	}
	if err != nil {
		return readFailure(err)
	}
	if !space.HasMember(userID) {
		return model.ErrNotAMember
	}
	return nil
}

func (s *Item) publish(ctx context.Context, kind model.EventKind, item model.Item, actorID uuid.UUID) {
	publishBestEffort(ctx, s.broker, model.Event{
		Kind:       kind,
		SpaceID:    item.SpaceID,
		Collection: item.Collection,
		ItemID:     item.ID,
		ActorID:    actorID,
		At:         item.UpdatedAt,
	}, s.logger)
}

func validateCollection(c model.Collection) error {
	if !c.Valid() {
		return fmt.Errorf("%w: unknown collection %q", model.ErrInvalidArgument, c)
	}
	return nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", model.ErrInvalidArgument)
	}
	if len([]rune(title)) > maxTitleLength {
		return "", fmt.Errorf("%w: title too long (max %d characters)", model.ErrInvalidArgument, maxTitleLength)
	}
	return title, nil
}
