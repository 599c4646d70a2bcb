package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amit-tzadok/LDR/internal/model"
)

func TestItemRepository_Deltas(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	db.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	repo := NewItemRepository(db)
	author := uuid.New()

	first, err := repo.Create(ctx, model.Item{ID: uuid.New(), SpaceID: "s1", Collection: model.CollectionShows, Title: "A", CreatedBy: author})
	require.NoError(t, err)
	second, err := repo.Create(ctx, model.Item{ID: uuid.New(), SpaceID: "s1", Collection: model.CollectionShows, Title: "B", CreatedBy: author})
	require.NoError(t, err)
	_, err = repo.Create(ctx, model.Item{ID: uuid.New(), SpaceID: "s2", Collection: model.CollectionShows, Title: "other space"})
	require.NoError(t, err)

	list, err := repo.List(ctx, "s1", model.CollectionShows)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	updated, err := repo.GetUpdatedAfter(ctx, "s1", model.CollectionShows, first.UpdatedAt)
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, second.ID, updated[0].ID)

	first.Title = "A2"
	saved, err := repo.Update(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "A2", saved.Title)
	assert.True(t, saved.UpdatedAt.After(second.UpdatedAt))

	require.NoError(t, repo.SoftDelete(ctx, second.ID))
	require.ErrorIs(t, repo.SoftDelete(ctx, second.ID), model.ErrNotFound)

	tombs, err := repo.GetDeletedAfter(ctx, "s1", model.CollectionShows, time.Time{})
	require.NoError(t, err)
	require.Len(t, tombs, 1)
	assert.Equal(t, second.ID, tombs[0].ID)

	_, err = repo.GetByID(ctx, second.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
	_, err = repo.Update(ctx, second)
	require.ErrorIs(t, err, model.ErrNotFound)
}
