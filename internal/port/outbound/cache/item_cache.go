package cache

import (
	"context"
	"time"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mediator/internal/domain/model"
)

// ItemCache defines the interface for item caching.
// Used to keep hot reads off the database.
type ItemCache interface {
	// Get retrieves an item from the cache.
	// Returns nil if not found (cache miss).
	Get(ctx context.Context, itemID types.ID) (*model.Item, error)

	// Set stores an item in the cache with TTL.
	Set(ctx context.Context, item *model.Item, ttl time.Duration) error

	// Delete removes an item from the cache.
	Delete(ctx context.Context, itemID types.ID) error
}
