package testutil

import (
	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mediator/internal/domain/model"
)

// Fixtures provides builders for domain models in tests.
var Fixtures = &fixtures{}

type fixtures struct{}

// Item creates a new Item with a unique name and a random price.
func (f *fixtures) Item() *model.Item {
	return f.ItemBuilder().Build()
}

// ItemBuilder returns a builder for customizing Item creation.
func (f *fixtures) ItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		name:       Fake.ItemName(),
		priceCents: Fake.PriceCents(),
	}
}

type ItemBuilder struct {
	name        string
	description types.Optional[string]
	priceCents  int64
	createdAt   types.Timestamp
	updatedAt   types.Timestamp

	// For reconstruction
	id          types.ID
	reconstruct bool
}

func (b *ItemBuilder) WithName(name string) *ItemBuilder {
	b.name = name
	return b
}

func (b *ItemBuilder) WithDescription(description string) *ItemBuilder {
	b.description = types.Some(description)
	return b
}

func (b *ItemBuilder) WithPriceCents(priceCents int64) *ItemBuilder {
	b.priceCents = priceCents
	return b
}

// WithID builds the item through ReconstructItem, skipping validation.
func (b *ItemBuilder) WithID(id types.ID) *ItemBuilder {
	b.id = id
	b.reconstruct = true
	return b
}

func (b *ItemBuilder) WithTimestamps(createdAt, updatedAt types.Timestamp) *ItemBuilder {
	b.createdAt = createdAt
	b.updatedAt = updatedAt
	b.reconstruct = true
	return b
}

func (b *ItemBuilder) Build() *model.Item {
	if b.reconstruct {
		id := b.id
		if id.IsEmpty() {
			id = types.NewID()
		}
		createdAt := b.createdAt
		if createdAt.IsZero() {
			createdAt = types.Now()
		}
		updatedAt := b.updatedAt
		if updatedAt.IsZero() {
			updatedAt = createdAt
		}
		return model.ReconstructItem(id, b.name, b.description, b.priceCents, createdAt, updatedAt)
	}

	item, err := model.NewItem(b.name, b.priceCents)
	if err != nil {
		panic("fixtures: failed to create item: " + err.Error())
	}
	if b.description.IsPresent() {
		item.SetDescription(b.description.MustGet())
	}
	return item
}
