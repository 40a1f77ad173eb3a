package repository

import (
	"context"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mediator/internal/domain/model"
)

// ItemRepository defines the interface for item persistence.
type ItemRepository interface {
	// Create persists a new item.
	Create(ctx context.Context, item *model.Item) error

	// Update persists changes to an existing item.
	Update(ctx context.Context, item *model.Item) error

	// FindByID retrieves an item by its ID.
	FindByID(ctx context.Context, id types.ID) (*model.Item, error)

	// ExistsByName checks if an item with the given name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// List retrieves items with pagination.
	List(ctx context.Context, params ListItemsParams) ([]*model.Item, error)

	// Count returns the total number of items.
	Count(ctx context.Context) (int64, error)

	// Delete removes an item by ID.
	Delete(ctx context.Context, id types.ID) error
}

// ListItemsParams defines parameters for listing items.
type ListItemsParams struct {
	Limit     int
	Offset    int
	SortBy    ItemSortField
	SortOrder SortOrder
}

// ItemSortField defines fields that can be used for sorting items.
type ItemSortField string

const (
	ItemSortFieldCreatedAt ItemSortField = "created_at"
	ItemSortFieldName      ItemSortField = "name"
	ItemSortFieldPrice     ItemSortField = "price_cents"
)

// SortOrder defines sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// MaxListLimit caps the page size of List.
const MaxListLimit = 100

// DefaultListItemsParams returns default listing parameters.
func DefaultListItemsParams() ListItemsParams {
	return ListItemsParams{
		Limit:     20,
		Offset:    0,
		SortBy:    ItemSortFieldCreatedAt,
		SortOrder: SortOrderDesc,
	}
}
