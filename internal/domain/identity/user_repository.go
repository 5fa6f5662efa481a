package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user lookups
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByIDs finds multiple users by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error)
}
