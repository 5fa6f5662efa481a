package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dressshop/backend/internal/domain/catalog"
	"github.com/dressshop/backend/internal/domain/identity"
	"github.com/dressshop/backend/internal/domain/order"
	"github.com/dressshop/backend/internal/domain/shared"
)

// =============================================================================
// Mock Order Repository
// =============================================================================

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*order.Order, error) {
	args := m.Called(ctx, gatewayOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindPaidByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindPaid(ctx context.Context, filter shared.Filter) ([]order.Order, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) RecordPayment(ctx context.Context, o *order.Order, p *order.Payment) (bool, error) {
	args := m.Called(ctx, o, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) SaveDelivered(ctx context.Context, o *order.Order) (bool, error) {
	args := m.Called(ctx, o)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) FindPaymentsByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]order.Payment, error) {
	args := m.Called(ctx, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]order.Payment), args.Error(1)
}

// =============================================================================
// Mock User Repository
// =============================================================================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]identity.User), args.Error(1)
}

// =============================================================================
// Mock Catalog
// =============================================================================

type MockCatalogStore struct {
	mock.Mock
}

func (m *MockCatalogStore) LookupPrices(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Item, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

// =============================================================================
// Mock Gateway
// =============================================================================

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, req order.GatewayOrderRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) VerifyPaymentSignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	args := m.Called(gatewayOrderID, gatewayPaymentID, signature)
	return args.Bool(0)
}

// =============================================================================
// Fixtures
// =============================================================================

var testFactors = order.CurrencyFactors{"INR": 100}

func newTestUser(role identity.Role) *identity.User {
	return &identity.User{
		BaseEntity: shared.NewBaseEntity(),
		Name:       "Asha Rao",
		Email:      "asha@example.com",
		Address:    "12 MG Road, Bengaluru",
		Role:       role,
	}
}

// newAdminCapability mints a capability through the real authorizer.
func newAdminCapability(t *testing.T) identity.AdminCapability {
	t.Helper()
	admin := newTestUser(identity.RoleAdmin)
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)
	capability, err := identity.NewRoleAuthorizer(users).AuthorizeAdmin(context.Background(), admin.ID)
	require.NoError(t, err)
	return capability
}

// newCreatedOrder builds an order for one item priced 500 in INR.
func newCreatedOrder(userID uuid.UUID, gatewayOrderID string) *order.Order {
	total := &order.ValidatedTotal{
		Amount:   50000,
		Currency: "INR",
		Lines:    []order.PricedLine{{ItemID: uuid.New(), Size: "M", UnitPrice: 500}},
	}
	o, err := order.NewOrder(userID, gatewayOrderID, "01HZXRECEIPT", "12 MG Road, Bengaluru", total, time.Now().UTC())
	if err != nil {
		panic(err)
	}
	return o
}
