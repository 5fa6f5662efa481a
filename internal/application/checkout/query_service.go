package checkout

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dressshop/backend/internal/domain/catalog"
	"github.com/dressshop/backend/internal/domain/identity"
	"github.com/dressshop/backend/internal/domain/order"
	"github.com/dressshop/backend/internal/domain/shared"
)

// OrderQueryService serves read views of orders to shoppers and administrators.
type OrderQueryService struct {
	orders order.Repository
	items  catalog.ItemRepository
	users  identity.UserRepository
	logger *zap.Logger
}

// OrderQueryServiceConfig holds the collaborators of OrderQueryService
type OrderQueryServiceConfig struct {
	Orders order.Repository
	Items  catalog.ItemRepository
	Users  identity.UserRepository
	Logger *zap.Logger
}

// NewOrderQueryService creates a new OrderQueryService
func NewOrderQueryService(cfg OrderQueryServiceConfig) *OrderQueryService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderQueryService{
		orders: cfg.Orders,
		items:  cfg.Items,
		users:  cfg.Users,
		logger: logger,
	}
}

// ListMyOrders returns the user's paid and delivered orders, newest first.
func (s *OrderQueryService) ListMyOrders(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orders.FindPaidByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := s.loadItems(ctx, orders)

	result := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, ToOrderResponse(&orders[i], items))
	}
	return result, nil
}

// GetOrder returns one of the user's own orders. Orders owned by someone
// else are reported as not found.
func (s *OrderQueryService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, order.ErrOrderNotFound
	}
	resp := ToOrderResponse(o, s.loadItems(ctx, []order.Order{*o}))
	return &resp, nil
}

// ListPaidOrders returns every paid or delivered order with its owner and payment.
func (s *OrderQueryService) ListPaidOrders(ctx context.Context, admin identity.AdminCapability, filter shared.Filter) (*shared.Paginated[AdminOrderResponse], error) {
	if !admin.Valid() {
		return nil, shared.ErrForbidden
	}
	filter = filter.Normalize()

	orders, total, err := s.orders.FindPaid(ctx, filter)
	if err != nil {
		return nil, err
	}

	orderIDs := make([]uuid.UUID, 0, len(orders))
	userIDs := make([]uuid.UUID, 0, len(orders))
	seenUsers := make(map[uuid.UUID]struct{}, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
		if _, ok := seenUsers[o.UserID]; !ok {
			seenUsers[o.UserID] = struct{}{}
			userIDs = append(userIDs, o.UserID)
		}
	}

	payments, err := s.orders.FindPaymentsByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	users := make(map[uuid.UUID]identity.User, len(userIDs))
	if len(userIDs) > 0 {
		found, err := s.users.FindByIDs(ctx, userIDs)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			users[u.ID] = u
		}
	}
	items := s.loadItems(ctx, orders)

	result := make([]AdminOrderResponse, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		row := AdminOrderResponse{OrderResponse: ToOrderResponse(o, items)}
		if u, ok := users[o.UserID]; ok {
			row.User = toOwnerResponse(&u)
		}
		if p, ok := payments[o.ID]; ok {
			row.Payment = toPaymentResponse(&p)
		}
		result = append(result, row)
	}

	page := shared.NewPaginated(result, total, filter.Page, filter.PageSize)
	return &page, nil
}

// loadItems fetches display data for the items referenced by orders.
// Lookup failures degrade to lines without names or images.
func (s *OrderQueryService) loadItems(ctx context.Context, orders []order.Order) map[uuid.UUID]catalog.Item {
	if s.items == nil {
		return nil
	}
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for i := range orders {
		for _, id := range orders[i].ItemIDs() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	found, err := s.items.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("failed to load catalog items for orders", zap.Int("item_count", len(ids)), zap.Error(err))
		return nil
	}
	items := make(map[uuid.UUID]catalog.Item, len(found))
	for _, it := range found {
		items[it.ID] = it
	}
	return items
}
