package model

import (
	"strings"

	"github.com/0xsj/overwatch-pkg/types"

	domainerror "github.com/0xsj/overwatch-mediator/internal/domain/error"
)

// Item is the root aggregate of the catalog.
type Item struct {
	id          types.ID
	name        string
	description types.Optional[string]
	priceCents  int64
	createdAt   types.Timestamp
	updatedAt   types.Timestamp
}

// NewItem creates a new Item aggregate.
func NewItem(name string, priceCents int64) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerror.ErrItemNameRequired
	}
	if priceCents < 0 {
		return nil, domainerror.ErrItemPriceInvalid
	}

	now := types.Now()

	return &Item{
		id:          types.NewID(),
		name:        name,
		description: types.None[string](),
		priceCents:  priceCents,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructItem creates an Item from persisted data (bypasses validation).
func ReconstructItem(
	id types.ID,
	name string,
	description types.Optional[string],
	priceCents int64,
	createdAt types.Timestamp,
	updatedAt types.Timestamp,
) *Item {
	return &Item{
		id:          id,
		name:        name,
		description: description,
		priceCents:  priceCents,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Getters

func (i *Item) ID() types.ID                        { return i.id }
func (i *Item) Name() string                        { return i.name }
func (i *Item) Description() types.Optional[string] { return i.description }
func (i *Item) PriceCents() int64                   { return i.priceCents }
func (i *Item) CreatedAt() types.Timestamp          { return i.createdAt }
func (i *Item) UpdatedAt() types.Timestamp          { return i.updatedAt }

// Commands

// Rename changes the item's name and returns the previous one.
func (i *Item) Rename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.ErrItemNameRequired
	}
	if name == i.name {
		return "", domainerror.ErrItemNameUnchanged
	}
	old := i.name
	i.name = name
	i.updatedAt = types.Now()
	return old, nil
}

func (i *Item) SetDescription(description string) {
	i.description = types.Some(description)
	i.updatedAt = types.Now()
}

func (i *Item) ClearDescription() {
	i.description = types.None[string]()
	i.updatedAt = types.Now()
}

func (i *Item) SetPrice(priceCents int64) error {
	if priceCents < 0 {
		return domainerror.ErrItemPriceInvalid
	}
	i.priceCents = priceCents
	i.updatedAt = types.Now()
	return nil
}
