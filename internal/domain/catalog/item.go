package catalog

import (
	"github.com/dressshop/backend/internal/domain/shared"
)

// Item is a sellable catalog entry. Prices are integers in the catalog's
// currency unit; the checkout flow only reads them.
type Item struct {
	shared.BaseEntity
	Name          string
	Description   string
	Image         string
	UnitPrice     int64
	OriginalPrice int64
	Rating        float64
	Reviews       int
	Quantity      int
	Sizes         []string
}
