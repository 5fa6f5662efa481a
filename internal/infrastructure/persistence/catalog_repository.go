package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/dressshop/backend/internal/domain/catalog"
	"github.com/dressshop/backend/internal/domain/order"
	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/dressshop/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCatalogRepository reads catalog items. It serves both the checkout
// price lookup and the display data joined into order queries.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GormCatalogRepository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// LookupPrices returns unit prices keyed by item id.
// Any id that does not resolve fails the whole lookup with order.ErrItemNotFound.
func (r *GormCatalogRepository) LookupPrices(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	prices := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return prices, nil
	}

	var rows []models.CatalogItemModel
	err := r.db.WithContext(ctx).
		Select("id", "unit_price").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		prices[rows[i].ID] = rows[i].UnitPrice
	}
	for _, id := range ids {
		if _, ok := prices[id]; !ok {
			return nil, fmt.Errorf("%w: %s", order.ErrItemNotFound, id)
		}
	}
	return prices, nil
}

// FindByID finds an item by its ID
func (r *GormCatalogRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var model models.CatalogItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple items by their IDs; unknown ids are skipped
func (r *GormCatalogRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Item, error) {
	if len(ids) == 0 {
		return []catalog.Item{}, nil
	}
	var rows []models.CatalogItemModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]catalog.Item, 0, len(rows))
	for i := range rows {
		items = append(items, *rows[i].ToDomain())
	}
	return items, nil
}

var (
	_ order.CatalogStore     = (*GormCatalogRepository)(nil)
	_ catalog.ItemRepository = (*GormCatalogRepository)(nil)
)
