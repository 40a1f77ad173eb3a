package event

import (
	"github.com/0xsj/overwatch-pkg/types"
)

// ItemCreated is emitted when a new item is added to the catalog.
type ItemCreated struct {
	BaseEvent
	ItemID     types.ID `json:"item_id"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"price_cents"`
}

// NewItemCreated creates a new ItemCreated event.
func NewItemCreated(itemID types.ID, name string, priceCents int64) ItemCreated {
	return ItemCreated{
		BaseEvent:  NewBaseEvent(EventTypeItemCreated, itemID, AggregateTypeItem),
		ItemID:     itemID,
		Name:       name,
		PriceCents: priceCents,
	}
}

// ItemRenamed is emitted when an item's name changes.
type ItemRenamed struct {
	BaseEvent
	ItemID  types.ID `json:"item_id"`
	OldName string   `json:"old_name"`
	NewName string   `json:"new_name"`
}

// NewItemRenamed creates a new ItemRenamed event.
func NewItemRenamed(itemID types.ID, oldName, newName string) ItemRenamed {
	return ItemRenamed{
		BaseEvent: NewBaseEvent(EventTypeItemRenamed, itemID, AggregateTypeItem),
		ItemID:    itemID,
		OldName:   oldName,
		NewName:   newName,
	}
}

// ItemDeleted is emitted when an item is removed.
type ItemDeleted struct {
	BaseEvent
	ItemID types.ID `json:"item_id"`
}

// NewItemDeleted creates a new ItemDeleted event.
func NewItemDeleted(itemID types.ID) ItemDeleted {
	return ItemDeleted{
		BaseEvent: NewBaseEvent(EventTypeItemDeleted, itemID, AggregateTypeItem),
		ItemID:    itemID,
	}
}
