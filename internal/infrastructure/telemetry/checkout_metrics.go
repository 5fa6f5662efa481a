package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// ErrMeterNil is returned when no meter is supplied.
var ErrMeterNil = errors.New("checkout metrics: meter cannot be nil")

// Verification outcomes
const (
	OutcomeVerified        = "verified"
	OutcomeAlreadyVerified = "already_verified"
	OutcomeSignatureFailed = "signature_mismatch"
)

// CheckoutMetrics counts orders, payment verifications and deliveries.
type CheckoutMetrics struct {
	ordersCreated   *Counter
	orderAmount     *Counter
	orderRejections *Counter
	verifications   *Counter
	deliveries      *Counter
	gatewayLatency  *Histogram
}

// NewCheckoutMetrics registers the checkout instruments on meter.
func NewCheckoutMetrics(meter metric.Meter) (*CheckoutMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		m   CheckoutMetrics
		err error
	)
	if m.ordersCreated, err = NewCounter(meter, "shop_orders_created_total",
		"Orders persisted in created state", "{orders}"); err != nil {
		return nil, err
	}
	if m.orderAmount, err = NewCounter(meter, "shop_order_amount_total",
		"Sum of created order amounts in currency sub-units", "{subunits}"); err != nil {
		return nil, err
	}
	if m.orderRejections, err = NewCounter(meter, "shop_order_rejections_total",
		"Order intake attempts rejected before persistence", "{orders}"); err != nil {
		return nil, err
	}
	if m.verifications, err = NewCounter(meter, "shop_payment_verifications_total",
		"Payment verification attempts by outcome", "{verifications}"); err != nil {
		return nil, err
	}
	if m.deliveries, err = NewCounter(meter, "shop_orders_delivered_total",
		"Orders moved to delivered", "{orders}"); err != nil {
		return nil, err
	}
	if m.gatewayLatency, err = NewHistogram(meter, "shop_gateway_create_order_duration_seconds",
		"Latency of gateway order creation", "s", GatewayDurationBuckets...); err != nil {
		return nil, err
	}
	return &m, nil
}

// NewNoopCheckoutMetrics returns metrics that record nothing.
func NewNoopCheckoutMetrics() *CheckoutMetrics {
	m, _ := NewCheckoutMetrics(noop.NewMeterProvider().Meter("noop"))
	return m
}

// RecordOrderCreated counts a persisted order and its amount.
func (m *CheckoutMetrics) RecordOrderCreated(ctx context.Context, currency string, amount int64) {
	m.ordersCreated.Inc(ctx, AttrCurrency.String(currency))
	m.orderAmount.Add(ctx, amount, AttrCurrency.String(currency))
}

// RecordOrderRejected counts an intake failure by error code.
func (m *CheckoutMetrics) RecordOrderRejected(ctx context.Context, reason string) {
	m.orderRejections.Inc(ctx, AttrReason.String(reason))
}

// RecordVerification counts a verification by outcome.
func (m *CheckoutMetrics) RecordVerification(ctx context.Context, outcome string) {
	m.verifications.Inc(ctx, AttrOutcome.String(outcome))
}

// RecordDelivered counts a paid to delivered transition.
func (m *CheckoutMetrics) RecordDelivered(ctx context.Context) {
	m.deliveries.Inc(ctx)
}

// RecordGatewayLatency records how long the gateway took to open an order.
func (m *CheckoutMetrics) RecordGatewayLatency(ctx context.Context, d time.Duration, outcome string) {
	m.gatewayLatency.RecordDuration(ctx, d, AttrOutcome.String(outcome))
}
