package models

import (
	"strings"

	"github.com/dressshop/backend/internal/domain/catalog"
)

// CatalogItemModel is the persistence model for a catalog item.
// Sizes are stored comma separated.
type CatalogItemModel struct {
	BaseModel
	Name          string  `gorm:"type:varchar(200);not null"`
	Description   string  `gorm:"type:text"`
	Image         string  `gorm:"type:varchar(500)"`
	UnitPrice     int64   `gorm:"not null"`
	OriginalPrice int64   `gorm:"not null"`
	Rating        float64 `gorm:"not null"`
	Reviews       int     `gorm:"not null"`
	Quantity      int     `gorm:"not null"`
	Sizes         string  `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (CatalogItemModel) TableName() string {
	return "catalog_items"
}

// ToDomain converts the persistence model to a domain Item.
func (m *CatalogItemModel) ToDomain() *catalog.Item {
	var sizes []string
	if m.Sizes != "" {
		sizes = strings.Split(m.Sizes, ",")
	}
	return &catalog.Item{
		BaseEntity:    m.BaseModel.ToDomain(),
		Name:          m.Name,
		Description:   m.Description,
		Image:         m.Image,
		UnitPrice:     m.UnitPrice,
		OriginalPrice: m.OriginalPrice,
		Rating:        m.Rating,
		Reviews:       m.Reviews,
		Quantity:      m.Quantity,
		Sizes:         sizes,
	}
}

// CatalogItemModelFromDomain creates a persistence model from a domain Item.
func CatalogItemModelFromDomain(i *catalog.Item) *CatalogItemModel {
	m := &CatalogItemModel{
		Name:          i.Name,
		Description:   i.Description,
		Image:         i.Image,
		UnitPrice:     i.UnitPrice,
		OriginalPrice: i.OriginalPrice,
		Rating:        i.Rating,
		Reviews:       i.Reviews,
		Quantity:      i.Quantity,
		Sizes:         strings.Join(i.Sizes, ","),
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}
