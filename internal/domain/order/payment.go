package order

import (
	"strings"
	"time"

	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Payment is the receipt of a verified gateway payment.
// At most one exists per order; it is only created alongside the created→paid transition.
type Payment struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	GatewayPaymentID string
	Signature        string
	CreatedAt        time.Time
}

// NewPayment creates the payment receipt for order o.
func NewPayment(o *Order, gatewayPaymentID, signature string, at time.Time) (*Payment, error) {
	if o == nil || o.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Payment requires an order")
	}
	if strings.TrimSpace(gatewayPaymentID) == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_ID", "Gateway payment ID cannot be empty")
	}
	return &Payment{
		ID:               uuid.New(),
		OrderID:          o.ID,
		GatewayPaymentID: gatewayPaymentID,
		Signature:        signature,
		CreatedAt:        at,
	}, nil
}
