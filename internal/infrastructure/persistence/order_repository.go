package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/dressshop/backend/internal/domain/order"
	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/dressshop/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// errStaleStatus aborts a transition transaction whose compare-and-set matched no row.
var errStaleStatus = errors.New("order status changed concurrently")

var paidStatuses = []string{string(order.StatusPaid), string(order.StatusDelivered)}

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create persists the order and its lines as one unit
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return err
		}
		if len(model.Lines) == 0 {
			return nil
		}
		return tx.Create(&model.Lines).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewDomainErrorOfKind(shared.KindConflict, "DUPLICATE_GATEWAY_ORDER",
			fmt.Sprintf("Gateway order %s is already attached to an order", o.GatewayOrderID))
	}
	return err
}

// FindByID finds an order with its lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByGatewayOrderID finds an order by the provider's order id
func (r *GormOrderRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*order.Order, error) {
	return r.findOne(ctx, "gateway_order_id = ?", gatewayOrderID)
}

func (r *GormOrderRepository) findOne(ctx context.Context, query string, arg any) (*order.Order, error) {
	var model models.OrderModel
	err := r.db.WithContext(ctx).
		Preload("Lines", orderedLines).
		Where(query, arg).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPaidByUser returns the user's paid or delivered orders, newest first
func (r *GormOrderRepository) FindPaidByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	var rows []models.OrderModel
	err := r.db.WithContext(ctx).
		Preload("Lines", orderedLines).
		Where("user_id = ? AND status IN ?", userID, paidStatuses).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainOrders(rows), nil
}

// FindPaid returns a page of paid or delivered orders, newest first, and the total count
func (r *GormOrderRepository) FindPaid(ctx context.Context, filter shared.Filter) ([]order.Order, int64, error) {
	filter = filter.Normalize()
	base := r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("status IN ?", paidStatuses)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderModel
	err := r.db.WithContext(ctx).
		Preload("Lines", orderedLines).
		Where("status IN ?", paidStatuses).
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return toDomainOrders(rows), total, nil
}

// RecordPayment moves the order from created to paid with a compare-and-set on
// status and inserts the payment in the same transaction. Concurrent callers for
// the same order serialize on the row update; only the one that changed the row
// inserts a payment, the others see false.
func (r *GormOrderRepository) RecordPayment(ctx context.Context, o *order.Order, p *order.Payment) (bool, error) {
	if o.Status != order.StatusPaid {
		return false, fmt.Errorf("record payment: order %s is %s, want %s", o.ID, o.Status, order.StatusPaid)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.OrderModel{}).
			Where("id = ? AND status = ?", o.ID, string(order.StatusCreated)).
			Updates(map[string]any{
				"status":       string(order.StatusPaid),
				"completed_at": o.CompletedAt,
				"updated_at":   o.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errStaleStatus
		}
		return tx.Create(models.PaymentModelFromDomain(p)).Error
	})
	if errors.Is(err, errStaleStatus) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SaveDelivered moves the order from paid to delivered with a compare-and-set on status
func (r *GormOrderRepository) SaveDelivered(ctx context.Context, o *order.Order) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", o.ID, string(order.StatusPaid)).
		Updates(map[string]any{
			"status":       string(order.StatusDelivered),
			"delivered_at": o.DeliveredAt,
			"updated_at":   o.UpdatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// FindPaymentsByOrderIDs returns payments keyed by order id
func (r *GormOrderRepository) FindPaymentsByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]order.Payment, error) {
	out := make(map[uuid.UUID]order.Payment, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	var rows []models.PaymentModel
	if err := r.db.WithContext(ctx).Where("order_id IN ?", orderIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].OrderID] = rows[i].ToDomain()
	}
	return out, nil
}

func toDomainOrders(rows []models.OrderModel) []order.Order {
	orders := make([]order.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, *rows[i].ToDomain())
	}
	return orders
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
