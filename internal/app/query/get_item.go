package query

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/0xsj/overwatch-pkg/types"

	domainerror "github.com/0xsj/overwatch-mediator/internal/domain/error"
	"github.com/0xsj/overwatch-mediator/internal/domain/model"
	"github.com/0xsj/overwatch-mediator/internal/port/inbound/query"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/cache"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/repository"
)

// loadTimeout bounds a shared repository load.
const loadTimeout = 30 * time.Second

// getItemHandler implements query.GetItemHandler.
type getItemHandler struct {
	itemRepo  repository.ItemRepository
	itemCache cache.ItemCache

	// loads collapses concurrent cache misses for the same item.
	loads singleflight.Group
}

// NewGetItemHandler creates a new GetItemHandler.
func NewGetItemHandler(
	itemRepo repository.ItemRepository,
	itemCache cache.ItemCache,
) query.GetItemHandler {
	return &getItemHandler{
		itemRepo:  itemRepo,
		itemCache: itemCache,
	}
}

func (h *getItemHandler) Handle(ctx context.Context, qry query.GetItem) (query.GetItemResult, error) {
	if qry.ItemID.IsEmpty() {
		return query.GetItemResult{}, domainerror.ErrItemIDRequired
	}

	// Try cache first
	if h.itemCache != nil {
		item, err := h.itemCache.Get(ctx, qry.ItemID)
		if err == nil && item != nil {
			return query.GetItemResult{Item: item}, nil
		}
	}

	// The shared load outlives any single caller; each caller stops
	// waiting when its own context is done.
	loadCtx := context.WithoutCancel(ctx)
	ch := h.loads.DoChan(qry.ItemID.String(), func() (any, error) {
		loadCtx, cancel := context.WithTimeout(loadCtx, loadTimeout)
		defer cancel()
		return h.load(loadCtx, qry.ItemID)
	})

	select {
	case <-ctx.Done():
		return query.GetItemResult{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return query.GetItemResult{}, res.Err
		}
		return query.GetItemResult{Item: res.Val.(*model.Item)}, nil
	}
}

func (h *getItemHandler) load(ctx context.Context, id types.ID) (*model.Item, error) {
	item, err := h.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domainerror.ErrItemNotFound
		}
		return nil, err
	}

	// Populate cache
	if h.itemCache != nil {
		_ = h.itemCache.Set(ctx, item, 0) // Use default TTL
	}
	return item, nil
}
