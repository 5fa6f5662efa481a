package persistence

import (
	"context"
	"testing"

	"github.com/dressshop/backend/internal/domain/order"
	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCatalogRepository_LookupPrices(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCatalogRepository(db)
	ctx := context.Background()

	a := seedItem(t, db, "a", 500)
	b := seedItem(t, db, "b", 999)

	t.Run("resolves every id", func(t *testing.T) {
		prices, err := repo.LookupPrices(ctx, []uuid.UUID{a.ID, b.ID})
		require.NoError(t, err)
		assert.Equal(t, map[uuid.UUID]int64{a.ID: 500, b.ID: 999}, prices)
	})

	t.Run("unknown id fails the lookup", func(t *testing.T) {
		missing := uuid.New()
		_, err := repo.LookupPrices(ctx, []uuid.UUID{a.ID, missing})
		assert.ErrorIs(t, err, order.ErrItemNotFound)
		assert.Contains(t, err.Error(), missing.String())
	})

	t.Run("empty input", func(t *testing.T) {
		prices, err := repo.LookupPrices(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, prices)
	})
}

func TestGormCatalogRepository_Find(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCatalogRepository(db)
	ctx := context.Background()
	a := seedItem(t, db, "a", 500)

	item, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", item.Name)
	assert.Equal(t, []string{"S", "M", "L"}, item.Sizes)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	items, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
