package command

import (
	"context"
	"errors"
	"strings"

	domainerror "github.com/0xsj/overwatch-mediator/internal/domain/error"
	"github.com/0xsj/overwatch-mediator/internal/domain/event"
	"github.com/0xsj/overwatch-mediator/internal/port/inbound/command"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/cache"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/messaging"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/repository"
	"github.com/0xsj/overwatch-mediator/pkg/mediator"
)

// renameItemHandler implements command.RenameItemHandler.
type renameItemHandler struct {
	itemRepo  repository.ItemRepository
	itemCache cache.ItemCache
	publisher messaging.EventPublisher
}

// NewRenameItemHandler creates a new RenameItemHandler.
func NewRenameItemHandler(
	itemRepo repository.ItemRepository,
	itemCache cache.ItemCache,
	publisher messaging.EventPublisher,
) command.RenameItemHandler {
	return &renameItemHandler{
		itemRepo:  itemRepo,
		itemCache: itemCache,
		publisher: publisher,
	}
}

func (h *renameItemHandler) Handle(ctx context.Context, cmd command.RenameItem) (mediator.Unit, error) {
	if cmd.ItemID.IsEmpty() {
		return mediator.Value, domainerror.ErrItemIDRequired
	}

	item, err := h.itemRepo.FindByID(ctx, cmd.ItemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return mediator.Value, domainerror.ErrItemNotFound
		}
		return mediator.Value, err
	}

	// Names are unique; check before the aggregate changes.
	if name := strings.TrimSpace(cmd.Name); name != "" && name != item.Name() {
		exists, err := h.itemRepo.ExistsByName(ctx, name)
		if err != nil {
			return mediator.Value, err
		}
		if exists {
			return mediator.Value, domainerror.ErrItemAlreadyExists
		}
	}

	oldName, err := item.Rename(cmd.Name)
	if err != nil {
		return mediator.Value, err
	}

	if err := h.itemRepo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return mediator.Value, domainerror.ErrItemAlreadyExists
		}
		return mediator.Value, err
	}

	// Invalidate cache
	if h.itemCache != nil {
		_ = h.itemCache.Delete(ctx, item.ID())
	}

	// Publish event
	_ = h.publisher.Publish(ctx, event.NewItemRenamed(item.ID(), oldName, item.Name()))

	return mediator.Value, nil
}
