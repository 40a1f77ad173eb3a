package command

import (
	"context"
	"errors"

	domainerror "github.com/0xsj/overwatch-mediator/internal/domain/error"
	"github.com/0xsj/overwatch-mediator/internal/domain/event"
	"github.com/0xsj/overwatch-mediator/internal/domain/model"
	"github.com/0xsj/overwatch-mediator/internal/port/inbound/command"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/messaging"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/repository"
)

// createItemHandler implements command.CreateItemHandler.
type createItemHandler struct {
	itemRepo  repository.ItemRepository
	publisher messaging.EventPublisher
}

// NewCreateItemHandler creates a new CreateItemHandler.
func NewCreateItemHandler(
	itemRepo repository.ItemRepository,
	publisher messaging.EventPublisher,
) command.CreateItemHandler {
	return &createItemHandler{
		itemRepo:  itemRepo,
		publisher: publisher,
	}
}

func (h *createItemHandler) Handle(ctx context.Context, cmd command.CreateItem) (command.CreateItemResult, error) {
	item, err := model.NewItem(cmd.Name, cmd.PriceCents)
	if err != nil {
		return command.CreateItemResult{}, err
	}
	if cmd.Description != "" {
		item.SetDescription(cmd.Description)
	}

	exists, err := h.itemRepo.ExistsByName(ctx, item.Name())
	if err != nil {
		return command.CreateItemResult{}, err
	}
	if exists {
		return command.CreateItemResult{}, domainerror.ErrItemAlreadyExists
	}

	if err := h.itemRepo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return command.CreateItemResult{}, domainerror.ErrItemAlreadyExists
		}
		return command.CreateItemResult{}, err
	}

	// Publish event
	_ = h.publisher.Publish(ctx, event.NewItemCreated(item.ID(), item.Name(), item.PriceCents()))

	return command.CreateItemResult{ItemID: item.ID()}, nil
}
