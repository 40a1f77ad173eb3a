package app

import (
	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mediator/internal/port/inbound/command"
	"github.com/0xsj/overwatch-mediator/internal/port/inbound/query"
	"github.com/0xsj/overwatch-mediator/pkg/validation"
)

const (
	maxItemNameLength        = 120
	maxItemDescriptionLength = 2000
)

// RegisterValidators adds the catalog request validators to p.
func RegisterValidators(p *validation.Pipeline) {
	validation.Register[command.CreateItem](p, CreateItemRules())
	validation.Register[command.RenameItem](p, RenameItemRules())
	validation.Register[command.DeleteItem](p, DeleteItemRules())
	validation.Register[query.GetItem](p, GetItemRules())
	validation.Register[query.ListItems](p, ListItemsRules())
}

func CreateItemRules() *validation.Rules[command.CreateItem] {
	rules := &validation.Rules[command.CreateItem]{}
	validation.RuleFor(rules, "Name", func(c command.CreateItem) string { return c.Name }).
		Required().
		MaxLength(maxItemNameLength)
	validation.RuleFor(rules, "Description", func(c command.CreateItem) string { return c.Description }).
		MaxLength(maxItemDescriptionLength)
	validation.RuleFor(rules, "PriceCents", func(c command.CreateItem) int64 { return c.PriceCents }).
		Check(validation.GreaterThanOrEqual[int64](0))
	return rules
}

func RenameItemRules() *validation.Rules[command.RenameItem] {
	rules := &validation.Rules[command.RenameItem]{}
	validation.RuleFor(rules, "ItemID", func(c command.RenameItem) types.ID { return c.ItemID }).
		NotEmpty()
	validation.RuleFor(rules, "Name", func(c command.RenameItem) string { return c.Name }).
		Required().
		MaxLength(maxItemNameLength)
	return rules
}

func DeleteItemRules() *validation.Rules[command.DeleteItem] {
	rules := &validation.Rules[command.DeleteItem]{}
	validation.RuleFor(rules, "ItemID", func(c command.DeleteItem) types.ID { return c.ItemID }).
		NotEmpty()
	return rules
}

func GetItemRules() *validation.Rules[query.GetItem] {
	rules := &validation.Rules[query.GetItem]{}
	validation.RuleFor(rules, "ItemID", func(q query.GetItem) types.ID { return q.ItemID }).
		NotEmpty()
	return rules
}

func ListItemsRules() *validation.Rules[query.ListItems] {
	rules := &validation.Rules[query.ListItems]{}
	validation.RuleFor(rules, "Limit", func(q query.ListItems) int { return q.Limit }).
		Check(validation.GreaterThanOrEqual(0))
	validation.RuleFor(rules, "Offset", func(q query.ListItems) int { return q.Offset }).
		Check(validation.GreaterThanOrEqual(0))
	return rules
}
