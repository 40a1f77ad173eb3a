package command

import (
	"context"
	"errors"

	domainerror "github.com/0xsj/overwatch-mediator/internal/domain/error"
	"github.com/0xsj/overwatch-mediator/internal/domain/event"
	"github.com/0xsj/overwatch-mediator/internal/port/inbound/command"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/cache"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/messaging"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/repository"
	"github.com/0xsj/overwatch-mediator/pkg/mediator"
)

// deleteItemHandler implements command.DeleteItemHandler.
type deleteItemHandler struct {
	itemRepo  repository.ItemRepository
	itemCache cache.ItemCache
	publisher messaging.EventPublisher
}

// NewDeleteItemHandler creates a new DeleteItemHandler.
func NewDeleteItemHandler(
	itemRepo repository.ItemRepository,
	itemCache cache.ItemCache,
	publisher messaging.EventPublisher,
) command.DeleteItemHandler {
	return &deleteItemHandler{
		itemRepo:  itemRepo,
		itemCache: itemCache,
		publisher: publisher,
	}
}

func (h *deleteItemHandler) Handle(ctx context.Context, cmd command.DeleteItem) (mediator.Unit, error) {
	if cmd.ItemID.IsEmpty() {
		return mediator.Value, domainerror.ErrItemIDRequired
	}

	if err := h.itemRepo.Delete(ctx, cmd.ItemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return mediator.Value, domainerror.ErrItemNotFound
		}
		return mediator.Value, err
	}

	// Invalidate cache
	if h.itemCache != nil {
		_ = h.itemCache.Delete(ctx, cmd.ItemID)
	}

	// Publish event
	_ = h.publisher.Publish(ctx, event.NewItemDeleted(cmd.ItemID))

	return mediator.Value, nil
}
