package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers client-supplied request keys so that a
// resubmitted request can be recognised and rejected.
type IdempotencyStore interface {
	// MarkProcessed records key with a TTL.
	// Returns true if the key was newly recorded, false if it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if key has already been recorded
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release forgets key so a failed request can be retried
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}
