package command

import (
	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mediator/pkg/mediator"
)

// CreateItem adds a new item to the catalog.
type CreateItem struct {
	mediator.Returns[CreateItemResult]

	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
}

func (c CreateItem) CommandName() string {
	return "catalog.create_item"
}

// CreateItemResult contains the new item's ID.
type CreateItemResult struct {
	ItemID types.ID
}

// CreateItemHandler handles the CreateItem command.
type CreateItemHandler = mediator.Handler[CreateItem, CreateItemResult]
