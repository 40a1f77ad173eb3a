package query

import (
	"github.com/0xsj/overwatch-mediator/internal/domain/model"
	"github.com/0xsj/overwatch-mediator/pkg/mediator"
)

// ListItems retrieves a page of items.
type ListItems struct {
	mediator.Returns[ListItemsResult]

	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func (q ListItems) QueryName() string {
	return "catalog.list_items"
}

// ListItemsResult contains the page and the total item count.
type ListItemsResult struct {
	Items      []*model.Item
	TotalCount int64
}

// ListItemsHandler handles the ListItems query.
type ListItemsHandler = mediator.Handler[ListItems, ListItemsResult]
