package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status represents the lifecycle status of an order
type Status string

const (
	StatusCreated   Status = "created"
	StatusPaid      Status = "paid"
	StatusDelivered Status = "delivered"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusPaid, StatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can move to target.
// Transitions never skip a state and never move backward.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusCreated:
		return target == StatusPaid
	case StatusPaid:
		return target == StatusDelivered
	case StatusDelivered:
		return false
	}
	return false
}

// IsPaid reports whether a payment has been reconciled for this status.
func (s Status) IsPaid() bool {
	return s == StatusPaid || s == StatusDelivered
}

// Line is a single cart entry captured on an order
type Line struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ItemID    uuid.UUID
	Size      string
	UnitPrice int64 // catalog price at checkout, catalog units
	Position  int
}

// Order is the aggregate root of the checkout flow
type Order struct {
	shared.BaseEntity
	UserID          uuid.UUID
	GatewayOrderID  string
	Receipt         string
	Amount          int64 // gateway sub-units
	Currency        string
	Status          Status
	AddressSnapshot string
	CompletedAt     *time.Time
	DeliveredAt     *time.Time
	Lines           []Line
}

// NewOrder builds an order in the created state from a validated total.
// The address is copied so later edits to the user's address do not leak in.
func NewOrder(userID uuid.UUID, gatewayOrderID, receipt, address string, total *ValidatedTotal, at time.Time) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if strings.TrimSpace(gatewayOrderID) == "" {
		return nil, shared.NewDomainError("INVALID_GATEWAY_ORDER", "Gateway order ID cannot be empty")
	}
	if total == nil || len(total.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	o := &Order{
		BaseEntity:      shared.NewBaseEntityAt(at),
		UserID:          userID,
		GatewayOrderID:  gatewayOrderID,
		Receipt:         receipt,
		Amount:          total.Amount,
		Currency:        total.Currency,
		Status:          StatusCreated,
		AddressSnapshot: address,
		Lines:           make([]Line, 0, len(total.Lines)),
	}
	for i, pl := range total.Lines {
		o.Lines = append(o.Lines, Line{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ItemID:    pl.ItemID,
			Size:      pl.Size,
			UnitPrice: pl.UnitPrice,
			Position:  i,
		})
	}
	return o, nil
}

// MarkPaid moves a created order to paid and stamps CompletedAt.
// An order that is already paid or delivered is left untouched and reports false.
func (o *Order) MarkPaid(at time.Time) (bool, error) {
	if o.Status.IsPaid() {
		return false, nil
	}
	if !o.Status.CanTransitionTo(StatusPaid) {
		return false, shared.NewDomainErrorOfKind(shared.KindConflict, "INVALID_STATE",
			fmt.Sprintf("Cannot mark order paid in %s status", o.Status))
	}
	o.Status = StatusPaid
	o.CompletedAt = &at
	o.Touch(at)
	return true, nil
}

// MarkDelivered moves a paid order to delivered.
// Delivering an already delivered order reports false without error.
func (o *Order) MarkDelivered(at time.Time) (bool, error) {
	switch o.Status {
	case StatusDelivered:
		return false, nil
	case StatusPaid:
		o.Status = StatusDelivered
		o.DeliveredAt = &at
		o.Touch(at)
		return true, nil
	}
	return false, fmt.Errorf("%w: order %s is %s", ErrOrderNotPayable, o.ID, o.Status)
}

// IsDelivered returns true once the order has been handed over
func (o *Order) IsDelivered() bool {
	return o.Status == StatusDelivered
}

// ItemIDs returns the catalog ids referenced by the order lines, in line order.
func (o *Order) ItemIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(o.Lines))
	for _, l := range o.Lines {
		ids = append(ids, l.ItemID)
	}
	return ids
}
