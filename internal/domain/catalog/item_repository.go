package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository defines read access to catalog items
type ItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByIDs finds multiple items by their IDs; unknown ids are skipped
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Item, error)
}
