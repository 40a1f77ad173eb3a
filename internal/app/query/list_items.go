package query

import (
	"context"

	"github.com/0xsj/overwatch-mediator/internal/port/inbound/query"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/repository"
)

// listItemsHandler implements query.ListItemsHandler.
type listItemsHandler struct {
	itemRepo repository.ItemRepository
}

// NewListItemsHandler creates a new ListItemsHandler.
func NewListItemsHandler(
	itemRepo repository.ItemRepository,
) query.ListItemsHandler {
	return &listItemsHandler{
		itemRepo: itemRepo,
	}
}

func (h *listItemsHandler) Handle(ctx context.Context, qry query.ListItems) (query.ListItemsResult, error) {
	params := repository.DefaultListItemsParams()

	// Set defaults
	if qry.Limit > 0 {
		params.Limit = qry.Limit
	}
	if params.Limit > repository.MaxListLimit {
		params.Limit = repository.MaxListLimit
	}
	if qry.Offset > 0 {
		params.Offset = qry.Offset
	}

	items, err := h.itemRepo.List(ctx, params)
	if err != nil {
		return query.ListItemsResult{}, err
	}

	totalCount, err := h.itemRepo.Count(ctx)
	if err != nil {
		return query.ListItemsResult{}, err
	}

	return query.ListItemsResult{
		Items:      items,
		TotalCount: totalCount,
	}, nil
}
