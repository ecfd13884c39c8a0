package repository

import (
	"context"
	"fmt"

	"goldenorders/internal/entity"
	"goldenorders/pkg/storage/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const _contactsTable = "order_contacts"

var contactColumns = []string{
	"id", "order_id", "position", "name", "job_title", "department", "phone", "email",
}

type ContactRepository struct {
	db *postgres.Postgres
}

func NewContactRepository(db *postgres.Postgres) *ContactRepository {
	return &ContactRepository{db}
}

func (cr *ContactRepository) Replace(
	ctx context.Context,
	queryExecuter postgres.QueryExecuter,
	orderID string,
	contacts []*entity.Contact,
) error {
	const op = "repository.contact.Replace"

	if err := deleteByOrder(ctx, cr.db, queryExecuter, _contactsTable, orderID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows := make([][]any, 0, len(contacts))
	for i, ct := range contacts {
		if ct.ID == uuid.Nil {
			ct.ID = uuid.New()
		}
		rows = append(rows, []any{
			ct.ID, orderID, int32(i), ct.Name, ct.JobTitle, ct.Department, ct.Phone, ct.Email,
		})
	}

	if _, err := postgres.CopyFrom(ctx, queryExecuter, _contactsTable, contactColumns, rows); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (cr *ContactRepository) ListByOrderID(ctx context.Context, orderID string) ([]*entity.Contact, error) {
	const op = "repository.contact.ListByOrderID"

	query := cr.db.Builder.Select(contactColumns...).
		From(_contactsTable).
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("position")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	rows, err := cr.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	var contacts []*entity.Contact
	for rows.Next() {
		var (
			ct       entity.Contact
			owner    string
			position int32
		)
		err = rows.Scan(&ct.ID, &owner, &position, &ct.Name, &ct.JobTitle, &ct.Department, &ct.Phone, &ct.Email)
		if err != nil {
			return nil, fmt.Errorf("%s: row scan: %w", op, err)
		}
		contacts = append(contacts, &ct)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows final error: %w", op, rows.Err())
	}

	return contacts, nil
}
