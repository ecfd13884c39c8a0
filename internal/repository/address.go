package repository

import (
	"context"
	"fmt"

	"goldenorders/internal/entity"
	"goldenorders/pkg/storage/postgres"

	"github.com/Masterminds/squirrel"
)

const _addressesTable = "order_addresses"

var addressColumns = []string{
	"order_id", "kind", "street", "number", "complement", "neighborhood", "city", "state", "zip_code",
}

type AddressRepository struct {
	db *postgres.Postgres
}

func NewAddressRepository(db *postgres.Postgres) *AddressRepository {
	return &AddressRepository{db}
}

// Replace stores the non-empty addresses of customer, dropping the previous
// set.
func (ar *AddressRepository) Replace(
	ctx context.Context,
	queryExecuter postgres.QueryExecuter,
	orderID string,
	customer *entity.CustomerInfo,
) error {
	const op = "repository.address.Replace"

	if err := deleteByOrder(ctx, ar.db, queryExecuter, _addressesTable, orderID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	addresses := customer.Addresses()
	if len(addresses) == 0 {
		return nil
	}

	query := ar.db.Builder.Insert(_addressesTable).Columns(addressColumns...)
	for _, kind := range []entity.AddressKind{entity.AddressBilling, entity.AddressCollection, entity.AddressDelivery} {
		a, ok := addresses[kind]
		if !ok {
			continue
		}
		query = query.Values(orderID, string(kind), a.Street, a.Number, a.Complement,
			a.Neighborhood, a.City, a.State, a.ZipCode)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%s: building query: %w", op, err)
	}
	if _, err = queryExecuter.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("%s: exec: %w", op, err)
	}

	return nil
}

// ListByOrderID returns the stored addresses keyed by kind.
func (ar *AddressRepository) ListByOrderID(
	ctx context.Context,
	orderID string,
) (map[entity.AddressKind]entity.Address, error) {
	const op = "repository.address.ListByOrderID"

	query := ar.db.Builder.Select(addressColumns...).
		From(_addressesTable).
		Where(squirrel.Eq{"order_id": orderID})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	rows, err := ar.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	addresses := make(map[entity.AddressKind]entity.Address, 3)
	for rows.Next() {
		var (
			a     entity.Address
			owner string
			kind  string
		)
		err = rows.Scan(&owner, &kind, &a.Street, &a.Number, &a.Complement,
			&a.Neighborhood, &a.City, &a.State, &a.ZipCode)
		if err != nil {
			return nil, fmt.Errorf("%s: row scan: %w", op, err)
		}
		addresses[entity.AddressKind(kind)] = a
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows final error: %w", op, rows.Err())
	}

	return addresses, nil
}
