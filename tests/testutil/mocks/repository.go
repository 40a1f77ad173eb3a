// Package mocks provides mock implementations of ports for testing.
package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mediator/internal/domain/model"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/repository"
)

// --- ItemRepository Mock ---

// ItemRepository is a mock implementation of repository.ItemRepository.
type ItemRepository struct {
	mu sync.RWMutex

	// Storage
	items map[string]*model.Item // by ID

	// Call tracking
	Calls struct {
		Create       int
		Update       int
		FindByID     int
		ExistsByName int
		List         int
		Count        int
		Delete       int
	}

	// Error injection
	Errors struct {
		Create       error
		Update       error
		FindByID     error
		ExistsByName error
		List         error
		Count        error
		Delete       error
	}
}

var _ repository.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository creates a new mock ItemRepository.
func NewItemRepository() *ItemRepository {
	return &ItemRepository{
		items: make(map[string]*model.Item),
	}
}

func (m *ItemRepository) Create(ctx context.Context, item *model.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Create++

	if m.Errors.Create != nil {
		return m.Errors.Create
	}

	m.items[item.ID().String()] = item
	return nil
}

func (m *ItemRepository) Update(ctx context.Context, item *model.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Update++

	if m.Errors.Update != nil {
		return m.Errors.Update
	}

	if _, ok := m.items[item.ID().String()]; !ok {
		return repository.ErrNotFound
	}
	m.items[item.ID().String()] = item
	return nil
}

func (m *ItemRepository) FindByID(ctx context.Context, id types.ID) (*model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.FindByID++

	if m.Errors.FindByID != nil {
		return nil, m.Errors.FindByID
	}

	item, ok := m.items[id.String()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return item, nil
}

func (m *ItemRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.ExistsByName++

	if m.Errors.ExistsByName != nil {
		return false, m.Errors.ExistsByName
	}

	for _, item := range m.items {
		if item.Name() == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *ItemRepository) List(ctx context.Context, params repository.ListItemsParams) ([]*model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.List++

	if m.Errors.List != nil {
		return nil, m.Errors.List
	}

	all := make([]*model.Item, 0, len(m.items))
	for _, item := range m.items {
		all = append(all, item)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].ID().String() < all[j].ID().String()
	})

	if params.Offset >= len(all) {
		return []*model.Item{}, nil
	}
	end := params.Offset + params.Limit
	if params.Limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[params.Offset:end], nil
}

func (m *ItemRepository) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Count++

	if m.Errors.Count != nil {
		return 0, m.Errors.Count
	}

	return int64(len(m.items)), nil
}

func (m *ItemRepository) Delete(ctx context.Context, id types.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Delete++

	if m.Errors.Delete != nil {
		return m.Errors.Delete
	}

	if _, ok := m.items[id.String()]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id.String())
	return nil
}

// --- Helpers ---

// AddItem seeds the repository without counting a Create call.
func (m *ItemRepository) AddItem(item *model.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID().String()] = item
}

// GetItem returns a stored item without counting a call.
func (m *ItemRepository) GetItem(id types.ID) *model.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items[id.String()]
}

// Len returns the number of stored items.
func (m *ItemRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
