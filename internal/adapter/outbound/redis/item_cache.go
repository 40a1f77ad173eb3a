package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mediator/internal/domain/model"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/cache"
)

const (
	itemKeyPrefix  = "catalog:item:"
	defaultItemTTL = 10 * time.Minute
)

// itemCache implements cache.ItemCache.
type itemCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewItemCache creates a new ItemCache.
func NewItemCache(client *redis.Client, ttl time.Duration) cache.ItemCache {
	if ttl == 0 {
		ttl = defaultItemTTL
	}
	return &itemCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *itemCache) Get(ctx context.Context, itemID types.ID) (*model.Item, error) {
	data, err := c.client.Get(ctx, itemKey(itemID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get item from cache: %w", err)
	}

	var cached cachedItem
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	return cached.toModel()
}

func (c *itemCache) Set(ctx context.Context, item *model.Item, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	data, err := json.Marshal(newCachedItem(item))
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	if err := c.client.Set(ctx, itemKey(item.ID()), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set item in cache: %w", err)
	}
	return nil
}

func (c *itemCache) Delete(ctx context.Context, itemID types.ID) error {
	if err := c.client.Del(ctx, itemKey(itemID)).Err(); err != nil {
		return fmt.Errorf("failed to delete item from cache: %w", err)
	}
	return nil
}

func itemKey(id types.ID) string {
	return itemKeyPrefix + id.String()
}

// Cached item structure for JSON serialization

type cachedItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	PriceCents  int64   `json:"price_cents"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
}

func newCachedItem(i *model.Item) cachedItem {
	cached := cachedItem{
		ID:         i.ID().String(),
		Name:       i.Name(),
		PriceCents: i.PriceCents(),
		CreatedAt:  i.CreatedAt().Time().UnixNano(),
		UpdatedAt:  i.UpdatedAt().Time().UnixNano(),
	}

	if i.Description().IsPresent() {
		description := i.Description().MustGet()
		cached.Description = &description
	}

	return cached
}

func (c cachedItem) toModel() (*model.Item, error) {
	id, err := types.ParseID(c.ID)
	if err != nil {
		return nil, err
	}

	description := types.None[string]()
	if c.Description != nil {
		description = types.Some(*c.Description)
	}

	return model.ReconstructItem(
		id,
		c.Name,
		description,
		c.PriceCents,
		types.FromTime(time.Unix(0, c.CreatedAt)),
		types.FromTime(time.Unix(0, c.UpdatedAt)),
	), nil
}
