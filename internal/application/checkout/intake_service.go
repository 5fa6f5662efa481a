package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/dressshop/backend/internal/domain/identity"
	"github.com/dressshop/backend/internal/domain/order"
	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/dressshop/backend/internal/infrastructure/logger"
	"github.com/dressshop/backend/internal/infrastructure/telemetry"
)

// OrderIntakeService validates a cart, opens the gateway order and persists
// the local order in created state.
type OrderIntakeService struct {
	users     identity.UserRepository
	orders    order.Repository
	validator *order.PriceValidator
	gateway   order.GatewayClient
	metrics   *telemetry.CheckoutMetrics
	logger    *zap.Logger
	now       func() time.Time
	receipt   func() string
}

// OrderIntakeServiceConfig holds the collaborators of OrderIntakeService
type OrderIntakeServiceConfig struct {
	Users   identity.UserRepository
	Orders  order.Repository
	Catalog order.CatalogStore
	Gateway order.GatewayClient
	Factors order.CurrencyFactors
	Metrics *telemetry.CheckoutMetrics
	Logger  *zap.Logger
}

// NewOrderIntakeService creates a new OrderIntakeService
func NewOrderIntakeService(cfg OrderIntakeServiceConfig) *OrderIntakeService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopCheckoutMetrics()
	}
	return &OrderIntakeService{
		users:     cfg.Users,
		orders:    cfg.Orders,
		validator: order.NewPriceValidator(cfg.Catalog, cfg.Factors),
		gateway:   cfg.Gateway,
		metrics:   metrics,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		receipt:   func() string { return ulid.Make().String() },
	}
}

// CreateOrder runs the intake steps in order: resolve user, validate price,
// open the gateway order, persist. Each step is a precondition for the next;
// a failure before persistence leaves no local record.
func (s *OrderIntakeService) CreateOrder(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "create_order",
		telemetry.SpanAttrUserID, userID.String(),
		telemetry.SpanAttrCurrency, req.Currency,
		telemetry.SpanAttrLineCount, len(req.Items),
	)
	defer span.End()

	resp, err := s.createOrder(ctx, userID, req)
	if err != nil {
		telemetry.RecordError(span, err)
		s.metrics.RecordOrderRejected(ctx, rejectionReason(err))
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, resp.ID.String())
	return resp, nil
}

func (s *OrderIntakeService) createOrder(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	log := logger.For(ctx, s.logger)

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, order.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	total, err := s.validator.Validate(ctx, req.CartLines(), req.Amount, req.Currency)
	if err != nil {
		if errors.Is(err, order.ErrAmountMismatch) {
			log.Warn("declared amount rejected",
				zap.String("user_id", userID.String()),
				zap.Int64("declared", req.Amount),
				zap.Error(err),
			)
		}
		return nil, err
	}

	receipt := s.receipt()
	started := time.Now()
	gatewayOrderID, err := s.gateway.CreateOrder(ctx, order.GatewayOrderRequest{
		Amount:   total.Amount,
		Currency: total.Currency,
		Receipt:  receipt,
	})
	if err != nil {
		s.metrics.RecordGatewayLatency(ctx, time.Since(started), "error")
		log.Error("gateway order creation failed",
			zap.String("user_id", userID.String()),
			zap.String("receipt", receipt),
			zap.Error(err),
		)
		if !errors.Is(err, order.ErrGatewayUnavailable) {
			err = fmt.Errorf("%w: %v", order.ErrGatewayUnavailable, err)
		}
		return nil, err
	}
	s.metrics.RecordGatewayLatency(ctx, time.Since(started), "ok")

	o, err := order.NewOrder(user.ID, gatewayOrderID, receipt, user.Address, total, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.orders.Create(ctx, o); err != nil {
		// The gateway order now exists without a local record. Operators
		// reconcile these from the gateway dashboard by receipt.
		log.Error("order persistence failed after gateway order creation",
			zap.String("gateway_order_id", gatewayOrderID),
			zap.String("receipt", receipt),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.RecordOrderCreated(ctx, o.Currency, o.Amount)
	log.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.String("gateway_order_id", o.GatewayOrderID),
		zap.Int64("amount", o.Amount),
		zap.String("currency", o.Currency),
	)

	resp := ToOrderResponse(o, nil)
	return &resp, nil
}

func rejectionReason(err error) string {
	if de, ok := shared.AsDomainError(err); ok {
		return de.Code
	}
	return "INTERNAL"
}
