package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/amit-tzadok/LDR/internal/model"
)

var _ model.ItemStore = (*ItemRepository)(nil)

type ItemRepository struct {
	db *DB
}

func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(_ context.Context, item model.Item) (model.Item, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item = cloneItem(item)
	now := r.db.now()
	item.CreatedAt, item.UpdatedAt, item.DeletedAt = now, now, nil
	r.db.items[item.ID] = item
	return cloneItem(item), nil
}

func (r *ItemRepository) GetByID(_ context.Context, id uuid.UUID) (model.Item, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	item, ok := r.db.items[id]
	if !ok || item.DeletedAt != nil {
		return model.Item{}, model.ErrNotFound
	}
	return cloneItem(item), nil
}

func (r *ItemRepository) List(_ context.Context, spaceID string, collection model.Collection) ([]model.Item, error) {
	items := r.filter(spaceID, collection, func(i model.Item) bool { return i.DeletedAt == nil })
	sort.Slice(items, func(a, b int) bool { return items[a].CreatedAt.After(items[b].CreatedAt) })
	return items, nil
}

func (r *ItemRepository) Update(_ context.Context, item model.Item) (model.Item, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.items[item.ID]
	if !ok || current.DeletedAt != nil {
		return model.Item{}, model.ErrNotFound
	}
	current.Title = item.Title
	current.Fields = item.Fields
	current.Completed = item.Completed
	current.UpdatedAt = r.db.now()
	current = cloneItem(current)
	r.db.items[item.ID] = current
	return cloneItem(current), nil
}

func (r *ItemRepository) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item, ok := r.db.items[id]
	if !ok || item.DeletedAt != nil {
		return model.ErrNotFound
	}
	now := r.db.now()
	item.DeletedAt, item.UpdatedAt = &now, now
	r.db.items[id] = item
	return nil
}

func (r *ItemRepository) GetUpdatedAfter(_ context.Context, spaceID string, collection model.Collection, updatedAfter time.Time) ([]model.Item, error) {
	items := r.filter(spaceID, collection, func(i model.Item) bool {
		return i.DeletedAt == nil && i.UpdatedAt.After(updatedAfter)
	})
	sort.Slice(items, func(a, b int) bool { return items[a].UpdatedAt.Before(items[b].UpdatedAt) })
	return items, nil
}

func (r *ItemRepository) GetDeletedAfter(_ context.Context, spaceID string, collection model.Collection, deletedAfter time.Time) ([]model.Tombstone, error) {
	items := r.filter(spaceID, collection, func(i model.Item) bool {
		return i.DeletedAt != nil && i.DeletedAt.After(deletedAfter)
	})
	sort.Slice(items, func(a, b int) bool { return items[a].DeletedAt.Before(*items[b].DeletedAt) })

	out := make([]model.Tombstone, 0, len(items))
	for _, i := range items {
		out = append(out, model.Tombstone{ID: i.ID, DeletedAt: *i.DeletedAt})
	}
	return out, nil
}

func (r *ItemRepository) filter(spaceID string, collection model.Collection, keep func(model.Item) bool) []model.Item {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []model.Item
	for _, i := range r.db.items {
		if i.SpaceID == spaceID && i.Collection == collection && keep(i) {
			out = append(out, cloneItem(i))
		}
	}
	return out
}
