package models

import (
	"time"

	"github.com/dressshop/backend/internal/domain/order"
	"github.com/google/uuid"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	BaseModel
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	GatewayOrderID  string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Receipt         string    `gorm:"type:varchar(64);not null"`
	Amount          int64     `gorm:"not null"`
	Currency        string    `gorm:"type:varchar(3);not null"`
	Status          string    `gorm:"type:varchar(20);not null;index"`
	AddressSnapshot string    `gorm:"type:text;not null"`
	CompletedAt     *time.Time
	DeliveredAt     *time.Time
	Lines           []OrderLineModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseEntity:      m.BaseModel.ToDomain(),
		UserID:          m.UserID,
		GatewayOrderID:  m.GatewayOrderID,
		Receipt:         m.Receipt,
		Amount:          m.Amount,
		Currency:        m.Currency,
		Status:          order.Status(m.Status),
		AddressSnapshot: m.AddressSnapshot,
		CompletedAt:     m.CompletedAt,
		DeliveredAt:     m.DeliveredAt,
		Lines:           make([]order.Line, 0, len(m.Lines)),
	}
	for i := range m.Lines {
		o.Lines = append(o.Lines, m.Lines[i].ToDomain())
	}
	return o
}

// OrderModelFromDomain creates a persistence model from a domain Order.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		UserID:          o.UserID,
		GatewayOrderID:  o.GatewayOrderID,
		Receipt:         o.Receipt,
		Amount:          o.Amount,
		Currency:        o.Currency,
		Status:          string(o.Status),
		AddressSnapshot: o.AddressSnapshot,
		CompletedAt:     o.CompletedAt,
		DeliveredAt:     o.DeliveredAt,
		Lines:           make([]OrderLineModel, 0, len(o.Lines)),
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	for _, l := range o.Lines {
		m.Lines = append(m.Lines, OrderLineModel{
			ID:        l.ID,
			OrderID:   o.ID,
			ItemID:    l.ItemID,
			Size:      l.Size,
			UnitPrice: l.UnitPrice,
			Position:  l.Position,
			CreatedAt: o.CreatedAt,
		})
	}
	return m
}

// OrderLineModel is the persistence model for an order line.
type OrderLineModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null"`
	Size      string    `gorm:"type:varchar(16);not null"`
	UnitPrice int64     `gorm:"not null"`
	Position  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ToDomain converts the persistence model to a domain Line.
func (m *OrderLineModel) ToDomain() order.Line {
	return order.Line{
		ID:        m.ID,
		OrderID:   m.OrderID,
		ItemID:    m.ItemID,
		Size:      m.Size,
		UnitPrice: m.UnitPrice,
		Position:  m.Position,
	}
}

// PaymentModel is the persistence model for a verified payment.
type PaymentModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	GatewayPaymentID string    `gorm:"type:varchar(64);not null"`
	Signature        string    `gorm:"type:varchar(128);not null"`
	CreatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment.
func (m *PaymentModel) ToDomain() order.Payment {
	return order.Payment{
		ID:               m.ID,
		OrderID:          m.OrderID,
		GatewayPaymentID: m.GatewayPaymentID,
		Signature:        m.Signature,
		CreatedAt:        m.CreatedAt,
	}
}

// PaymentModelFromDomain creates a persistence model from a domain Payment.
func PaymentModelFromDomain(p *order.Payment) *PaymentModel {
	return &PaymentModel{
		ID:               p.ID,
		OrderID:          p.OrderID,
		GatewayPaymentID: p.GatewayPaymentID,
		Signature:        p.Signature,
		CreatedAt:        p.CreatedAt,
	}
}
