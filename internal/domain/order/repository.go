package order

import (
	"context"

	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CatalogStore is the authoritative source of item prices.
type CatalogStore interface {
	// LookupPrices returns unit prices keyed by item id.
	// Fails with ErrItemNotFound if any id does not resolve.
	LookupPrices(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error)
}

// Repository defines persistence for orders and their payments
type Repository interface {
	// Create persists the order with its lines in a single transaction
	Create(ctx context.Context, o *Order) error

	// FindByID finds an order with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByGatewayOrderID finds an order by the provider's order id
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Order, error)

	// FindPaidByUser returns the user's paid or delivered orders, newest first
	FindPaidByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)

	// FindPaid returns all paid or delivered orders, newest first
	FindPaid(ctx context.Context, filter shared.Filter) ([]Order, int64, error)

	// RecordPayment flips o from created to paid and inserts p in one transaction.
	// Returns false without writing anything if o was no longer in created state.
	RecordPayment(ctx context.Context, o *Order, p *Payment) (bool, error)

	// SaveDelivered flips o from paid to delivered.
	// Returns false if o was no longer in paid state.
	SaveDelivered(ctx context.Context, o *Order) (bool, error)

	// FindPaymentsByOrderIDs returns payments keyed by order id
	FindPaymentsByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]Payment, error)
}
