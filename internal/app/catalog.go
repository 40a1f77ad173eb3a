// Package app wires the catalog handlers and validators into the mediator.
package app

import (
	"errors"

	appcommand "github.com/0xsj/overwatch-mediator/internal/app/command"
	appquery "github.com/0xsj/overwatch-mediator/internal/app/query"
	"github.com/0xsj/overwatch-mediator/internal/port/inbound/command"
	"github.com/0xsj/overwatch-mediator/internal/port/inbound/query"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/cache"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/messaging"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/repository"
	"github.com/0xsj/overwatch-mediator/pkg/registry"
)

// Dependencies holds the outbound ports the catalog handlers use.
type Dependencies struct {
	ItemRepo  repository.ItemRepository
	ItemCache cache.ItemCache
	Publisher messaging.EventPublisher
}

// Register binds every catalog handler into r.
// GetItem is a singleton so concurrent misses share one singleflight
// group; the other handlers are built per dispatch.
func Register(r *registry.Registry, deps Dependencies) error {
	return errors.Join(
		registry.Register(r, appquery.NewGetItemHandler(deps.ItemRepo, deps.ItemCache)),
		registry.RegisterFactory(r, func() query.ListItemsHandler {
			return appquery.NewListItemsHandler(deps.ItemRepo)
		}),
		registry.RegisterFactory(r, func() command.CreateItemHandler {
			return appcommand.NewCreateItemHandler(deps.ItemRepo, deps.Publisher)
		}),
		registry.RegisterFactory(r, func() command.RenameItemHandler {
			return appcommand.NewRenameItemHandler(deps.ItemRepo, deps.ItemCache, deps.Publisher)
		}),
		registry.RegisterFactory(r, func() command.DeleteItemHandler {
			return appcommand.NewDeleteItemHandler(deps.ItemRepo, deps.ItemCache, deps.Publisher)
		}),
	)
}
