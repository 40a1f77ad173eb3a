package postgres

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mediator/internal/domain/model"
)

// pgtype helpers

func textToOptionalString(t pgtype.Text) types.Optional[string] {
	if t.Valid {
		return types.Some(t.String)
	}
	return types.None[string]()
}

func optionalStringToPgText(o types.Optional[string]) pgtype.Text {
	if o.IsPresent() {
		return pgtype.Text{String: o.MustGet(), Valid: true}
	}
	return pgtype.Text{Valid: false}
}

// Item mappers

// itemRow is a row of the items table.
type itemRow struct {
	ID          string
	Name        string
	Description pgtype.Text
	PriceCents  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItemRow(s rowScanner) (itemRow, error) {
	var row itemRow
	err := s.Scan(
		&row.ID,
		&row.Name,
		&row.Description,
		&row.PriceCents,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	return row, err
}

func toItemModel(row itemRow) (*model.Item, error) {
	id, err := types.ParseID(row.ID)
	if err != nil {
		return nil, err
	}

	return model.ReconstructItem(
		id,
		row.Name,
		textToOptionalString(row.Description),
		row.PriceCents,
		types.FromTime(row.CreatedAt),
		types.FromTime(row.UpdatedAt),
	), nil
}

func toItemRow(item *model.Item) itemRow {
	return itemRow{
		ID:          item.ID().String(),
		Name:        item.Name(),
		Description: optionalStringToPgText(item.Description()),
		PriceCents:  item.PriceCents(),
		CreatedAt:   item.CreatedAt().Time(),
		UpdatedAt:   item.UpdatedAt().Time(),
	}
}
