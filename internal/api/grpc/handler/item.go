package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/amit-tzadok/LDR/internal/api/grpc/proto"
	"github.com/amit-tzadok/LDR/internal/logger"
	"github.com/amit-tzadok/LDR/internal/model"
)

// ItemService defines business operations for feature collection items.
type ItemService interface {
	CreateItem(ctx context.Context, params model.CreateItemParams) (model.Item, error)
	GetItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (model.Item, error)
	ListItems(ctx context.Context, userID uuid.UUID, spaceID string, collection model.Collection) ([]model.Item, error)
	ListItemsDelta(ctx context.Context, userID uuid.UUID, spaceID string, collection model.Collection, updatedAfter time.Time, includeDeleted bool) ([]model.Item, []model.Tombstone, time.Time, error)
	UpdateItem(ctx context.Context, params model.UpdateItemParams) (model.Item, error)
	DeleteItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) error
	Watch(ctx context.Context, userID uuid.UUID, spaceID string) (<-chan model.Event, func(), error)
}

// Item handles gRPC endpoints for items.
type Item struct {
	proto.UnimplementedItemsServer
	itemService    ItemService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewItem creates a new Item handler.
func NewItem(itemService ItemService, contextManager model.ContextManager, logger *logger.Logger) *Item {
	return &Item{
		itemService:    itemService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Item) CreateItem(ctx context.Context, req *proto.CreateItemRequest) (*proto.Item, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	item, err := h.itemService.CreateItem(ctx, model.CreateItemParams{
		UserID:     userID,
		SpaceID:    req.SpaceID,
		Collection: model.Collection(req.Collection),
		Title:      req.Title,
		Fields:     req.Fields,
		Completed:  req.Completed,
	})
	if err != nil {
		h.logger.Error("Item handler: create item failed",
			"user_id", userID,
			"space_id", req.SpaceID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Item handler: item created",
		"user_id", userID,
		"item_id", item.ID)

	return toProtoItem(item), nil
}

func (h *Item) GetItem(ctx context.Context, req *proto.ItemRequest) (*proto.Item, error) {
	userID, itemID, err := h.itemRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	item, err := h.itemService.GetItem(ctx, userID, itemID)
	if err != nil {
		return nil, handleError(err)
	}

	return toProtoItem(item), nil
}

// ListItems lists a collection, or the changes since UpdatedAfter when set.
func (h *Item) ListItems(ctx context.Context, req *proto.ListItemsRequest) (*proto.ListItemsResponse, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	collection := model.Collection(req.Collection)

	if req.UpdatedAfter != nil || req.IncludeDeleted {
		var updatedAfter time.Time
		if req.UpdatedAfter != nil {
			updatedAfter = *req.UpdatedAfter
		}
		items, tombs, serverTime, err := h.itemService.ListItemsDelta(ctx, userID, req.SpaceID, collection, updatedAfter, req.IncludeDeleted)
		if err != nil {
			h.logger.Error("Item handler: list items delta failed",
				"user_id", userID,
				"space_id", req.SpaceID,
				"error", err.Error())
			return nil, handleError(err)
		}

		out := &proto.ListItemsResponse{
			Items:      toProtoItems(items),
			ServerTime: serverTime,
		}
		for _, t := range tombs {
			out.Tombstones = append(out.Tombstones, proto.Tombstone{ID: t.ID.String(), DeletedAt: t.DeletedAt})
		}
		return out, nil
	}

	items, err := h.itemService.ListItems(ctx, userID, req.SpaceID, collection)
	if err != nil {
		h.logger.Error("Item handler: list items failed",
			"user_id", userID,
			"space_id", req.SpaceID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &proto.ListItemsResponse{
		Items:      toProtoItems(items),
		ServerTime: time.Now(),
	}, nil
}

func (h *Item) UpdateItem(ctx context.Context, req *proto.UpdateItemRequest) (*proto.Item, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	itemID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid item ID")
	}

	item, err := h.itemService.UpdateItem(ctx, model.UpdateItemParams{
		UserID:    userID,
		ItemID:    itemID,
		Title:     req.Title,
		Fields:    req.Fields,
		Completed: req.Completed,
	})
	if err != nil {
		h.logger.Error("Item handler: update item failed",
			"user_id", userID,
			"item_id", itemID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return toProtoItem(item), nil
}

func (h *Item) DeleteItem(ctx context.Context, req *proto.ItemRequest) (*proto.Empty, error) {
	userID, itemID, err := h.itemRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := h.itemService.DeleteItem(ctx, userID, itemID); err != nil {
		h.logger.Error("Item handler: delete item failed",
			"user_id", userID,
			"item_id", itemID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Item handler: item deleted",
		"user_id", userID,
		"item_id", itemID)

	return &proto.Empty{}, nil
}

// Watch streams the change events of a space until the client cancels.
func (h *Item) Watch(req *proto.WatchRequest, stream grpc.ServerStreamingServer[proto.Event]) error {
	ctx := stream.Context()
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return err
	}
	if err := validateRequest(req); err != nil {
		return err
	}

	events, cancel, err := h.itemService.Watch(ctx, userID, req.SpaceID)
	if err != nil {
		return handleError(err)
	}
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("Item handler: watch ended",
				"user_id", userID,
				"space_id", req.SpaceID)
			return nil
		case e, ok := <-events:
			if !ok {
				return nil
			}
			if err := stream.Send(toProtoEvent(e)); err != nil {
				return err
			}
		}
	}
}

func (h *Item) itemRequest(ctx context.Context, req *proto.ItemRequest) (uuid.UUID, uuid.UUID, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if err := validateRequest(req); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	itemID, err := uuid.Parse(req.ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, status.Error(codes.InvalidArgument, "invalid item ID")
	}
	return userID, itemID, nil
}

func toProtoItems(items []model.Item) []*proto.Item {
	out := make([]*proto.Item, 0, len(items))
	for _, i := range items {
		out = append(out, toProtoItem(i))
	}
	return out
}
