package route

import (
	"fmt"
	"time"

	"github.com/0xsj/overwatch-mediator/internal/domain/model"
	"github.com/0xsj/overwatch-mediator/internal/port/inbound/command"
	"github.com/0xsj/overwatch-mediator/internal/port/inbound/query"
	"github.com/0xsj/overwatch-mediator/pkg/mediator"
)

// View renders a dispatch result as a map of JSON-compatible values.
// The map only holds strings, int64s, nil, []any and nested maps, so it
// converts to a protobuf Struct as well as to JSON.
func View(result any) (map[string]any, error) {
	switch r := result.(type) {
	case query.GetItemResult:
		return map[string]any{"item": itemView(r.Item)}, nil
	case query.ListItemsResult:
		items := make([]any, 0, len(r.Items))
		for _, item := range r.Items {
			items = append(items, itemView(item))
		}
		return map[string]any{
			"items":       items,
			"total_count": r.TotalCount,
		}, nil
	case command.CreateItemResult:
		return map[string]any{"item_id": r.ItemID.String()}, nil
	case mediator.Unit:
		return map[string]any{}, nil
	default:
		return nil, fmt.Errorf("route: no view for result %T", result)
	}
}

// Item mappers

func itemView(item *model.Item) any {
	if item == nil {
		return nil
	}

	view := map[string]any{
		"id":          item.ID().String(),
		"name":        item.Name(),
		"price_cents": item.PriceCents(),
		"created_at":  item.CreatedAt().Time().UTC().Format(time.RFC3339Nano),
		"updated_at":  item.UpdatedAt().Time().UTC().Format(time.RFC3339Nano),
	}

	if item.Description().IsPresent() {
		view["description"] = item.Description().MustGet()
	}

	return view
}
