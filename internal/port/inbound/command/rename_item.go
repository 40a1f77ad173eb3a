package command

import (
	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mediator/pkg/mediator"
)

// RenameItem changes an item's name.
type RenameItem struct {
	mediator.Void

	ItemID types.ID `json:"item_id"`
	Name   string   `json:"name"`
}

func (c RenameItem) CommandName() string {
	return "catalog.rename_item"
}

// RenameItemHandler handles the RenameItem command.
type RenameItemHandler = mediator.Handler[RenameItem, mediator.Unit]
