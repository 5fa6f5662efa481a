package checkout

import (
	"time"

	"github.com/dressshop/backend/internal/domain/catalog"
	"github.com/dressshop/backend/internal/domain/identity"
	"github.com/dressshop/backend/internal/domain/order"
	"github.com/google/uuid"
)

// Verification statuses reported to the caller
const (
	VerificationSuccess = "success"
	VerificationFailure = "failure"
)

// CartItemInput is one requested cart line
type CartItemInput struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
	Size   string    `json:"size" binding:"required,max=16"`
}

// CreateOrderRequest is the shopper's checkout submission
type CreateOrderRequest struct {
	Amount   int64           `json:"amount" binding:"required,gt=0"`
	Currency string          `json:"currency" binding:"required,currency"`
	Items    []CartItemInput `json:"items" binding:"required,min=1,dive"`
}

// CartLines converts the request items to domain cart lines
func (r CreateOrderRequest) CartLines() []order.CartLine {
	lines := make([]order.CartLine, 0, len(r.Items))
	for _, it := range r.Items {
		lines = append(lines, order.CartLine{ItemID: it.ItemID, Size: it.Size})
	}
	return lines
}

// VerifyPaymentRequest carries the gateway confirmation triple
type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id" binding:"required,max=64"`
	GatewayPaymentID string `json:"gateway_payment_id" binding:"required,max=64"`
	Signature        string `json:"signature" binding:"required,max=128"`
}

// VerifyPaymentResult is the business outcome of a verification attempt
type VerifyPaymentResult struct {
	Status          string    `json:"status"`
	OrderID         uuid.UUID `json:"-"`
	AlreadyVerified bool      `json:"-"`
}

// Succeeded reports whether the payment is reconciled
func (r VerifyPaymentResult) Succeeded() bool {
	return r.Status == VerificationSuccess
}

// OrderLineResponse is an order line with display data
type OrderLineResponse struct {
	ItemID    uuid.UUID `json:"item_id"`
	Size      string    `json:"size"`
	UnitPrice int64     `json:"unit_price"`
	Name      string    `json:"name,omitempty"`
	Image     string    `json:"image,omitempty"`
}

// OrderResponse is the representation of an order
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	UserID         uuid.UUID           `json:"user_id"`
	GatewayOrderID string              `json:"gateway_order_id"`
	Receipt        string              `json:"receipt"`
	Amount         int64               `json:"amount"`
	Currency       string              `json:"currency"`
	Status         string              `json:"status"`
	IsDelivered    bool                `json:"is_delivered"`
	Address        string              `json:"address"`
	Lines          []OrderLineResponse `json:"lines"`
	CreatedAt      time.Time           `json:"created_at"`
	CompletedAt    *time.Time          `json:"completed_at,omitempty"`
	DeliveredAt    *time.Time          `json:"delivered_at,omitempty"`
}

// OrderOwnerResponse is the user summary shown to administrators
type OrderOwnerResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// PaymentResponse is the payment receipt shown to administrators
type PaymentResponse struct {
	GatewayPaymentID string    `json:"gateway_payment_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// AdminOrderResponse is a paid order with its owner and payment
type AdminOrderResponse struct {
	OrderResponse
	User    *OrderOwnerResponse `json:"user,omitempty"`
	Payment *PaymentResponse    `json:"payment,omitempty"`
}

// ToOrderResponse converts a domain order; items supplies display data when present
func ToOrderResponse(o *order.Order, items map[uuid.UUID]catalog.Item) OrderResponse {
	resp := OrderResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		GatewayOrderID: o.GatewayOrderID,
		Receipt:        o.Receipt,
		Amount:         o.Amount,
		Currency:       o.Currency,
		Status:         o.Status.String(),
		IsDelivered:    o.IsDelivered(),
		Address:        o.AddressSnapshot,
		Lines:          make([]OrderLineResponse, 0, len(o.Lines)),
		CreatedAt:      o.CreatedAt,
		CompletedAt:    o.CompletedAt,
		DeliveredAt:    o.DeliveredAt,
	}
	for _, l := range o.Lines {
		line := OrderLineResponse{
			ItemID:    l.ItemID,
			Size:      l.Size,
			UnitPrice: l.UnitPrice,
		}
		if item, ok := items[l.ItemID]; ok {
			line.Name = item.Name
			line.Image = item.Image
		}
		resp.Lines = append(resp.Lines, line)
	}
	return resp
}

func toOwnerResponse(u *identity.User) *OrderOwnerResponse {
	if u == nil {
		return nil
	}
	return &OrderOwnerResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toPaymentResponse(p *order.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}
	return &PaymentResponse{GatewayPaymentID: p.GatewayPaymentID, CreatedAt: p.CreatedAt}
}
