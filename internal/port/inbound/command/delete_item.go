package command

import (
	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mediator/pkg/mediator"
)

// DeleteItem removes an item from the catalog.
type DeleteItem struct {
	mediator.Void

	ItemID types.ID `json:"item_id"`
}

func (c DeleteItem) CommandName() string {
	return "catalog.delete_item"
}

// DeleteItemHandler handles the DeleteItem command.
type DeleteItemHandler = mediator.Handler[DeleteItem, mediator.Unit]
