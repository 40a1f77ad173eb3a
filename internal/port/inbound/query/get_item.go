package query

import (
	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mediator/internal/domain/model"
	"github.com/0xsj/overwatch-mediator/pkg/mediator"
)

// GetItem retrieves an item by ID.
type GetItem struct {
	mediator.Returns[GetItemResult]

	ItemID types.ID `json:"item_id"`
}

func (q GetItem) QueryName() string {
	return "catalog.get_item"
}

// GetItemResult contains the item.
type GetItemResult struct {
	Item *model.Item
}

// GetItemHandler handles the GetItem query.
type GetItemHandler = mediator.Handler[GetItem, GetItemResult]
