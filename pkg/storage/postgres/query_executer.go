package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type QueryExecuter interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// TxQueryExecuter scopes queries to an open transaction.
type TxQueryExecuter struct {
	Tx pgx.Tx
}

func (t *TxQueryExecuter) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	rows, err := t.Tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("storage.postgres.TxQueryExecuter.Query: %w", err)
	}
	return rows, nil
}

func (t *TxQueryExecuter) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.Tx.QueryRow(ctx, sql, args...)
}

func (t *TxQueryExecuter) Exec(
	ctx context.Context,
	sql string,
	args ...any,
) (pgconn.CommandTag, error) {
	commTag, err := t.Tx.Exec(ctx, sql, args...)
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("storage.postgres.TxQueryExecuter.Exec: %w", err)
	}
	return commTag, nil
}

// CopyFrom bulk-inserts rows through the COPY protocol. It needs a
// transactional executer since COPY runs on the transaction's connection.
func CopyFrom(
	ctx context.Context,
	queryExecuter QueryExecuter,
	table string,
	columns []string,
	rows [][]any,
) (int64, error) {
	const op = "storage.postgres.CopyFrom"

	if len(rows) == 0 {
		return 0, nil
	}

	tx, ok := queryExecuter.(*TxQueryExecuter)
	if !ok {
		return 0, fmt.Errorf("%s: query executer is not a transaction", op)
	}

	n, err := tx.Tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("%s: copy into %s: %w", op, table, err)
	}
	return n, nil
}
