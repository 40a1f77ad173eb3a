package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-mediator/internal/domain/model"
	"github.com/0xsj/overwatch-mediator/internal/port/outbound/repository"
)

const uniqueViolation = "23505"

const itemColumns = `id, name, description, price_cents, created_at, updated_at`

// itemRepository implements repository.ItemRepository.
type itemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository.
func NewItemRepository(pool *pgxpool.Pool) repository.ItemRepository {
	return &itemRepository{
		pool: pool,
	}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	row := toItemRow(item)
	_, err := r.pool.Exec(ctx,
		`INSERT INTO items (`+itemColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		row.ID, row.Name, row.Description, row.PriceCents, row.CreatedAt, row.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *itemRepository) Update(ctx context.Context, item *model.Item) error {
	row := toItemRow(item)
	tag, err := r.pool.Exec(ctx,
		`UPDATE items SET name = $2, description = $3, price_cents = $4, updated_at = $5 WHERE id = $1`,
		row.ID, row.Name, row.Description, row.PriceCents, row.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *itemRepository) FindByID(ctx context.Context, id types.ID) (*model.Item, error) {
	row, err := scanItemRow(r.pool.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1`,
		id.String(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return toItemModel(row)
}

func (r *itemRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM items WHERE name = $1)`,
		name,
	).Scan(&exists)
	return exists, err
}

func (r *itemRepository) List(ctx context.Context, params repository.ListItemsParams) ([]*model.Item, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM items ORDER BY %s %s, id LIMIT $1 OFFSET $2`,
		itemColumns, sortColumn(params.SortBy), sortDirection(params.SortOrder),
	)

	rows, err := r.pool.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*model.Item, 0, params.Limit)
	for rows.Next() {
		row, err := scanItemRow(rows)
		if err != nil {
			return nil, err
		}
		item, err := toItemModel(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM items`).Scan(&count)
	return count, err
}

func (r *itemRepository) Delete(ctx context.Context, id types.ID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// sortColumn whitelists ORDER BY columns.
func sortColumn(f repository.ItemSortField) string {
	switch f {
	case repository.ItemSortFieldName, repository.ItemSortFieldPrice:
		return string(f)
	default:
		return string(repository.ItemSortFieldCreatedAt)
	}
}

func sortDirection(o repository.SortOrder) string {
	if o == repository.SortOrderAsc {
		return "ASC"
	}
	return "DESC"
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", repository.ErrConflict, pgErr.ConstraintName)
	}
	return err
}
