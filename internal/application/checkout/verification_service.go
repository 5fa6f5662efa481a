package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dressshop/backend/internal/domain/order"
	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/dressshop/backend/internal/infrastructure/logger"
	"github.com/dressshop/backend/internal/infrastructure/telemetry"
)

// PaymentVerificationService authenticates gateway payment confirmations and
// reconciles them against created orders.
type PaymentVerificationService struct {
	orders   order.Repository
	verifier order.SignatureVerifier
	metrics  *telemetry.CheckoutMetrics
	logger   *zap.Logger
	now      func() time.Time
}

// PaymentVerificationServiceConfig holds the collaborators of PaymentVerificationService
type PaymentVerificationServiceConfig struct {
	Orders   order.Repository
	Verifier order.SignatureVerifier
	Metrics  *telemetry.CheckoutMetrics
	Logger   *zap.Logger
}

// NewPaymentVerificationService creates a new PaymentVerificationService
func NewPaymentVerificationService(cfg PaymentVerificationServiceConfig) *PaymentVerificationService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopCheckoutMetrics()
	}
	return &PaymentVerificationService{
		orders:   cfg.Orders,
		verifier: cfg.Verifier,
		metrics:  metrics,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// VerifyPayment checks the signature and, when it matches, moves the order to
// paid and records the payment. A signature mismatch is a normal failure
// outcome, not an error. Replays and concurrent duplicates report success
// without writing a second payment.
func (s *PaymentVerificationService) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*VerifyPaymentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "verify_payment",
		telemetry.SpanAttrGatewayOrderID, req.GatewayOrderID,
	)
	defer span.End()

	result, err := s.verify(ctx, req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, "verification.status", result.Status, "verification.replay", result.AlreadyVerified)
	return result, nil
}

func (s *PaymentVerificationService) verify(ctx context.Context, req VerifyPaymentRequest) (*VerifyPaymentResult, error) {
	log := logger.For(ctx, s.logger)

	o, err := s.orders.FindByGatewayOrderID(ctx, req.GatewayOrderID)
	if err != nil {
		return nil, err
	}

	if !s.verifier.VerifyPaymentSignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature) {
		s.metrics.RecordVerification(ctx, telemetry.OutcomeSignatureFailed)
		log.Warn("payment signature mismatch",
			zap.String("order_id", o.ID.String()),
			zap.String("gateway_order_id", req.GatewayOrderID),
			zap.String("gateway_payment_id", req.GatewayPaymentID),
		)
		return &VerifyPaymentResult{Status: VerificationFailure, OrderID: o.ID}, nil
	}

	if o.Status.IsPaid() {
		return s.alreadyVerified(ctx, o, req.GatewayPaymentID)
	}

	now := s.now()
	if _, err := o.MarkPaid(now); err != nil {
		return nil, err
	}
	payment, err := order.NewPayment(o, req.GatewayPaymentID, req.Signature, now)
	if err != nil {
		return nil, err
	}

	applied, err := s.orders.RecordPayment(ctx, o, payment)
	if err != nil {
		log.Error("failed to record payment",
			zap.String("order_id", o.ID.String()),
			zap.String("gateway_payment_id", req.GatewayPaymentID),
			zap.Error(err),
		)
		return nil, err
	}
	if !applied {
		// Lost the compare-and-set to a concurrent verification.
		current, err := s.orders.FindByID(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		if !current.Status.IsPaid() {
			return nil, fmt.Errorf("%w: order %s still %s after payment race", shared.ErrConcurrencyConflict, o.ID, current.Status)
		}
		return s.alreadyVerified(ctx, current, req.GatewayPaymentID)
	}

	s.metrics.RecordVerification(ctx, telemetry.OutcomeVerified)
	log.Info("payment verified",
		zap.String("order_id", o.ID.String()),
		zap.String("gateway_order_id", o.GatewayOrderID),
		zap.String("gateway_payment_id", req.GatewayPaymentID),
	)
	return &VerifyPaymentResult{Status: VerificationSuccess, OrderID: o.ID}, nil
}

// alreadyVerified reports the idempotent outcome for an order that is past created.
func (s *PaymentVerificationService) alreadyVerified(ctx context.Context, o *order.Order, paymentID string) (*VerifyPaymentResult, error) {
	log := logger.For(ctx, s.logger)

	s.metrics.RecordVerification(ctx, telemetry.OutcomeAlreadyVerified)

	fields := []zap.Field{
		zap.String("order_id", o.ID.String()),
		zap.String("status", o.Status.String()),
		zap.String("gateway_payment_id", paymentID),
	}
	payments, err := s.orders.FindPaymentsByOrderIDs(ctx, []uuid.UUID{o.ID})
	if err != nil {
		log.Warn("could not load recorded payment for replay check", append(fields, zap.Error(err))...)
	} else if recorded, ok := payments[o.ID]; ok && recorded.GatewayPaymentID != paymentID {
		log.Warn("verification replay with a different payment id",
			append(fields, zap.String("recorded_payment_id", recorded.GatewayPaymentID))...)
	} else {
		log.Info("payment already verified", fields...)
	}

	return &VerifyPaymentResult{Status: VerificationSuccess, OrderID: o.ID, AlreadyVerified: true}, nil
}
