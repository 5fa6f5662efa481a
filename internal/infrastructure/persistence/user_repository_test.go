package persistence

import (
	"context"
	"testing"

	"github.com/dressshop/backend/internal/domain/identity"
	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	admin := seedUser(t, db, identity.RoleAdmin)
	customer := seedUser(t, db, identity.RoleCustomer)

	t.Run("FindByID", func(t *testing.T) {
		u, err := repo.FindByID(ctx, admin.ID)
		require.NoError(t, err)
		assert.True(t, u.IsAdmin())
		assert.Equal(t, "221B Baker Street", u.Address)
	})

	t.Run("FindByID missing", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindByIDs", func(t *testing.T) {
		users, err := repo.FindByIDs(ctx, []uuid.UUID{admin.ID, customer.ID, uuid.New()})
		require.NoError(t, err)
		assert.Len(t, users, 2)

		none, err := repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
