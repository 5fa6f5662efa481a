package persistence

import (
	"testing"
	"time"

	"github.com/dressshop/backend/internal/domain/catalog"
	"github.com/dressshop/backend/internal/domain/identity"
	"github.com/dressshop/backend/internal/domain/order"
	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/dressshop/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory sqlite database with the storefront schema.
// A single connection keeps every query on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.CatalogItemModel{},
		&models.OrderModel{},
		&models.OrderLineModel{},
		&models.PaymentModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role identity.Role) *identity.User {
	t.Helper()
	u := &identity.User{
		BaseEntity: shared.NewBaseEntity(),
		Name:       "Asha",
		Email:      uuid.NewString() + "@example.com",
		Address:    "221B Baker Street",
		Role:       role,
	}
	require.NoError(t, db.Create(models.UserModelFromDomain(u)).Error)
	return u
}

func seedItem(t *testing.T, db *gorm.DB, name string, price int64) *catalog.Item {
	t.Helper()
	item := &catalog.Item{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Image:      "https://cdn.example.com/" + name + ".jpg",
		UnitPrice:  price,
		Sizes:      []string{"S", "M", "L"},
	}
	require.NoError(t, db.Create(models.CatalogItemModelFromDomain(item)).Error)
	return item
}

func newTestOrder(t *testing.T, userID uuid.UUID, gatewayOrderID string, items ...*catalog.Item) *order.Order {
	t.Helper()
	total := &order.ValidatedTotal{Currency: "INR"}
	for _, item := range items {
		total.Lines = append(total.Lines, order.PricedLine{ItemID: item.ID, Size: "M", UnitPrice: item.UnitPrice})
		total.Amount += item.UnitPrice * 100
	}
	o, err := order.NewOrder(userID, gatewayOrderID, "receipt-"+gatewayOrderID, "221B Baker Street", total, time.Now().UTC())
	require.NoError(t, err)
	return o
}
