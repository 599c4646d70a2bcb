package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amit-tzadok/LDR/internal/model"
)

var _ model.ItemStore = (*ItemRepository)(nil)

const itemColumns = `id, space_id, collection, title, fields, completed, created_by, created_at, updated_at, deleted_at`

type ItemRepository struct {
	db *Connection
}

func NewItemRepository(db *Connection) *ItemRepository {
	return &ItemRepository{
		db: db,
	}
}

func scanItem(row pgx.Row) (model.Item, error) {
	var (
		item       model.Item
		collection string
	)
	err := row.Scan(
		&item.ID, &item.SpaceID, &collection, &item.Title, &item.Fields, &item.Completed,
		&item.CreatedBy, &item.CreatedAt, &item.UpdatedAt, &item.DeletedAt,
	)
	if err != nil {
		return model.Item{}, err
	}
	item.Collection = model.Collection(collection)
	return item, nil
}

func collectItems(rows pgx.Rows) ([]model.Item, error) {
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func nonNilFields(fields map[string]any) map[string]any {
	if fields == nil {
		return map[string]any{}
	}
	return fields
}

func (r *ItemRepository) Create(ctx context.Context, item model.Item) (model.Item, error) {
	query := `INSERT INTO items (id, space_id, collection, title, fields, completed, created_by)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + itemColumns

	saved, err := scanItem(r.db.QueryRow(ctx, query,
		item.ID, item.SpaceID, string(item.Collection), item.Title, nonNilFields(item.Fields), item.Completed, item.CreatedBy,
	))
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	return saved, nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 AND deleted_at IS NULL`

	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Item{}, model.ErrNotFound
		}
		return model.Item{}, fmt.Errorf("failed to get item by id: %w", err)
	}

	return item, nil
}

func (r *ItemRepository) List(ctx context.Context, spaceID string, collection model.Collection) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
			  WHERE space_id = $1 AND collection = $2 AND deleted_at IS NULL
			  ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, spaceID, string(collection))
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items, err := collectItems(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) Update(ctx context.Context, item model.Item) (model.Item, error) {
	query := `UPDATE items
			  SET title = $2, fields = $3, completed = $4, updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL
			  RETURNING ` + itemColumns

	saved, err := scanItem(r.db.QueryRow(ctx, query, item.ID, item.Title, nonNilFields(item.Fields), item.Completed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Item{}, model.ErrNotFound
		}
		return model.Item{}, fmt.Errorf("failed to update item: %w", err)
	}

	return saved, nil
}

func (r *ItemRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE items SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ItemRepository) GetUpdatedAfter(ctx context.Context, spaceID string, collection model.Collection, updatedAfter time.Time) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
			  WHERE space_id = $1 AND collection = $2 AND deleted_at IS NULL AND updated_at > $3
			  ORDER BY updated_at ASC`

	rows, err := r.db.Query(ctx, query, spaceID, string(collection), updatedAfter)
	if err != nil {
		return nil, fmt.Errorf("failed to list updated items: %w", err)
	}

	items, err := collectItems(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list updated items: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) GetDeletedAfter(ctx context.Context, spaceID string, collection model.Collection, deletedAfter time.Time) ([]model.Tombstone, error) {
	const query = `SELECT id, deleted_at FROM items
			  WHERE space_id = $1 AND collection = $2 AND deleted_at IS NOT NULL AND deleted_at > $3
			  ORDER BY deleted_at ASC`

	rows, err := r.db.Query(ctx, query, spaceID, string(collection), deletedAfter)
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted items: %w", err)
	}
	defer rows.Close()

	var out []model.Tombstone
	for rows.Next() {
		var t model.Tombstone
		if err := rows.Scan(&t.ID, &t.DeletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tombstone: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list deleted items: %w", err)
	}
	return out, nil
}
