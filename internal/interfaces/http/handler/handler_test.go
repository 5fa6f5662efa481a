package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dressshop/backend/internal/application/checkout"
	"github.com/dressshop/backend/internal/domain/identity"
	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/dressshop/backend/internal/interfaces/http/dto"
	"github.com/dressshop/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

type MockOrderIntake struct {
	mock.Mock
}

func (m *MockOrderIntake) CreateOrder(ctx context.Context, userID uuid.UUID, req checkout.CreateOrderRequest) (*checkout.OrderResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.OrderResponse), args.Error(1)
}

type MockPaymentVerifier struct {
	mock.Mock
}

func (m *MockPaymentVerifier) VerifyPayment(ctx context.Context, req checkout.VerifyPaymentRequest) (*checkout.VerifyPaymentResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.VerifyPaymentResult), args.Error(1)
}

type MockOrderReader struct {
	mock.Mock
}

func (m *MockOrderReader) ListMyOrders(ctx context.Context, userID uuid.UUID) ([]checkout.OrderResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]checkout.OrderResponse), args.Error(1)
}

func (m *MockOrderReader) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*checkout.OrderResponse, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.OrderResponse), args.Error(1)
}

type MockPaidOrderLister struct {
	mock.Mock
}

func (m *MockPaidOrderLister) ListPaidOrders(ctx context.Context, admin identity.AdminCapability, filter shared.Filter) (*shared.Paginated[checkout.AdminOrderResponse], error) {
	args := m.Called(ctx, admin, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[checkout.AdminOrderResponse]), args.Error(1)
}

type MockDeliveryMarker struct {
	mock.Mock
}

func (m *MockDeliveryMarker) MarkDelivered(ctx context.Context, admin identity.AdminCapability, orderID uuid.UUID) (*checkout.OrderResponse, error) {
	args := m.Called(ctx, admin, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.OrderResponse), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// withUser simulates the JWT middleware
func withUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID)
		c.Next()
	}
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func serve(r *gin.Engine, method, path string, body *bytes.Reader) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func bytesReader(s string) *bytes.Reader {
	return bytes.NewReader([]byte(s))
}
