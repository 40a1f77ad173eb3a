package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mediator/internal/domain/model"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/cache"
)

// --- ItemCache Mock ---

// ItemCache is a mock implementation of cache.ItemCache.
type ItemCache struct {
	mu sync.Mutex

	// Storage
	items map[string]*model.Item

	// Call tracking
	Calls struct {
		Get    int
		Set    int
		Delete int
	}

	// Error injection
	Errors struct {
		Get    error
		Set    error
		Delete error
	}
}

var _ cache.ItemCache = (*ItemCache)(nil)

// NewItemCache creates a new mock ItemCache.
func NewItemCache() *ItemCache {
	return &ItemCache{
		items: make(map[string]*model.Item),
	}
}

func (m *ItemCache) Get(ctx context.Context, itemID types.ID) (*model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Get++

	if m.Errors.Get != nil {
		return nil, m.Errors.Get
	}

	item, ok := m.items[itemID.String()]
	if !ok {
		return nil, nil // Cache miss
	}
	return item, nil
}

func (m *ItemCache) Set(ctx context.Context, item *model.Item, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Set++

	if m.Errors.Set != nil {
		return m.Errors.Set
	}

	m.items[item.ID().String()] = item
	return nil
}

func (m *ItemCache) Delete(ctx context.Context, itemID types.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Delete++

	if m.Errors.Delete != nil {
		return m.Errors.Delete
	}

	delete(m.items, itemID.String())
	return nil
}

// Has reports whether itemID is cached, without counting a call.
func (m *ItemCache) Has(itemID types.ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[itemID.String()]
	return ok
}
