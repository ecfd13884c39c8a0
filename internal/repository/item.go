package repository

import (
	"context"
	"fmt"

	"goldenorders/internal/entity"
	"goldenorders/pkg/storage/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const _itemsTable = "order_items"

var itemColumns = []string{
	"id", "order_id", "position", "code", "ncm", "description", "unit",
	"weight", "quantity", "unit_price", "discount", "total",
}

type ItemRepository struct {
	db *postgres.Postgres
}

func NewItemRepository(db *postgres.Postgres) *ItemRepository {
	return &ItemRepository{db}
}

// Replace drops every item of the order and copies items in their given
// order. Items without an id get a fresh one.
func (ir *ItemRepository) Replace(
	ctx context.Context,
	queryExecuter postgres.QueryExecuter,
	orderID string,
	items []*entity.Item,
) error {
	const op = "repository.item.Replace"

	if err := deleteByOrder(ctx, ir.db, queryExecuter, _itemsTable, orderID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows := make([][]any, 0, len(items))
	for i, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		rows = append(rows, []any{
			item.ID,
			orderID,
			int32(i),
			item.Code,
			item.NCM,
			item.Description,
			item.Unit,
			postgres.Numeric(item.Weight),
			postgres.Numeric(item.Quantity),
			postgres.Numeric(item.UnitPrice),
			postgres.Numeric(item.Discount),
			postgres.Numeric(item.Total),
		})
	}

	if _, err := postgres.CopyFrom(ctx, queryExecuter, _itemsTable, itemColumns, rows); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (ir *ItemRepository) ListByOrderID(ctx context.Context, orderID string) ([]*entity.Item, error) {
	const op = "repository.item.ListByOrderID"

	query := ir.db.Builder.Select(itemColumns...).
		From(_itemsTable).
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("position")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	rows, err := ir.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		var (
			item     entity.Item
			owner    string
			position int32
			numbers  [5]pgtype.Numeric
		)
		err = rows.Scan(
			&item.ID, &owner, &position, &item.Code, &item.NCM, &item.Description, &item.Unit,
			&numbers[0], &numbers[1], &numbers[2], &numbers[3], &numbers[4],
		)
		if err != nil {
			return nil, fmt.Errorf("%s: row scan: %w", op, err)
		}

		item.Weight = postgres.Decimal(numbers[0])
		item.Quantity = postgres.Decimal(numbers[1])
		item.UnitPrice = postgres.Decimal(numbers[2])
		item.Discount = postgres.Decimal(numbers[3])
		item.Total = postgres.Decimal(numbers[4])

		items = append(items, &item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows final error: %w", op, rows.Err())
	}

	return items, nil
}

func deleteByOrder(
	ctx context.Context,
	db *postgres.Postgres,
	queryExecuter postgres.QueryExecuter,
	table, orderID string,
) error {
	sql, args, err := db.Builder.Delete(table).Where(squirrel.Eq{"order_id": orderID}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete %s: %w", table, err)
	}
	if _, err = queryExecuter.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}
