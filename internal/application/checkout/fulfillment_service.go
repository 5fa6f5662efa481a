package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dressshop/backend/internal/domain/identity"
	"github.com/dressshop/backend/internal/domain/order"
	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/dressshop/backend/internal/infrastructure/logger"
	"github.com/dressshop/backend/internal/infrastructure/telemetry"
)

// FulfillmentService moves paid orders to delivered on behalf of administrators.
type FulfillmentService struct {
	orders  order.Repository
	metrics *telemetry.CheckoutMetrics
	logger  *zap.Logger
	now     func() time.Time
}

// FulfillmentServiceConfig holds the collaborators of FulfillmentService
type FulfillmentServiceConfig struct {
	Orders  order.Repository
	Metrics *telemetry.CheckoutMetrics
	Logger  *zap.Logger
}

// NewFulfillmentService creates a new FulfillmentService
func NewFulfillmentService(cfg FulfillmentServiceConfig) *FulfillmentService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopCheckoutMetrics()
	}
	return &FulfillmentService{
		orders:  cfg.Orders,
		metrics: metrics,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// MarkDelivered transitions a paid order to delivered. Delivering an order
// that is already delivered returns it unchanged.
func (s *FulfillmentService) MarkDelivered(ctx context.Context, admin identity.AdminCapability, orderID uuid.UUID) (*OrderResponse, error) {
	if !admin.Valid() {
		return nil, shared.ErrForbidden
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "mark_delivered",
		telemetry.SpanAttrOrderID, orderID.String(),
		telemetry.SpanAttrUserID, admin.ActorID().String(),
	)
	defer span.End()

	o, err := s.markDelivered(ctx, admin, orderID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	resp := ToOrderResponse(o, nil)
	return &resp, nil
}

func (s *FulfillmentService) markDelivered(ctx context.Context, admin identity.AdminCapability, orderID uuid.UUID) (*order.Order, error) {
	log := logger.For(ctx, s.logger)

	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	changed, err := o.MarkDelivered(s.now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	saved, err := s.orders.SaveDelivered(ctx, o)
	if err != nil {
		return nil, err
	}
	if !saved {
		// Someone else moved the order between read and write.
		current, err := s.orders.FindByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if current.IsDelivered() {
			return current, nil
		}
		return nil, fmt.Errorf("%w: order %s is %s", shared.ErrConcurrencyConflict, orderID, current.Status)
	}

	s.metrics.RecordDelivered(ctx)
	log.Info("order delivered",
		zap.String("order_id", o.ID.String()),
		zap.String("actor_id", admin.ActorID().String()),
	)
	return o, nil
}
