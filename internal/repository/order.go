package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/pkg/storage/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const _ordersTable = "orders"

var orderColumns = []string{
	"id", "order_date", "salesperson", "classification", "classification_other", "status",
	"customer_name", "customer_document", "customer_rg", "customer_state_registration",
	"customer_municipal_registration", "customer_phone", "customer_email",
	"global_value1", "discount_total", "freight_value", "global_value2", "currency",
	"exchange_rate", "total_in_brl", "min_billing", "min_billing_value", "down_payment",
	"final_customer", "total_weight", "total_amount",
	"payment_terms", "delivery_time", "validity", "valid_until", "payment_method",
	"carrier", "shipping_type",
	"bidding_number", "bidding_date", "commitment_number", "commitment_date", "notes",
	"pdf_url", "pdf_generated_at", "created_by", "created_at", "updated_at",
}

// Columns the upsert rewrites on conflict. Identity, authorship and archive
// fields are left alone.
var orderUpdatable = []string{
	"order_date", "salesperson", "classification", "classification_other", "status",
	"customer_name", "customer_document", "customer_rg", "customer_state_registration",
	"customer_municipal_registration", "customer_phone", "customer_email",
	"global_value1", "discount_total", "freight_value", "global_value2", "currency",
	"exchange_rate", "total_in_brl", "min_billing", "min_billing_value", "down_payment",
	"final_customer", "total_weight", "total_amount",
	"payment_terms", "delivery_time", "validity", "valid_until", "payment_method",
	"carrier", "shipping_type",
	"bidding_number", "bidding_date", "commitment_number", "commitment_date", "notes",
	"updated_at",
}

type OrderRepository struct {
	db *postgres.Postgres
}

func NewOrderRepository(db *postgres.Postgres) *OrderRepository {
	return &OrderRepository{db}
}

// Upsert writes the order header, inserting it or replacing every editable
// column of an existing row. It returns the stored creation and update times.
func (or *OrderRepository) Upsert(
	ctx context.Context,
	queryExecuter postgres.QueryExecuter,
	order *entity.Order,
) (createdAt, updatedAt time.Time, err error) {
	const op = "repository.order.Upsert"

	c := order.Customer
	now := time.Now().UTC()

	query := or.db.Builder.Insert(_ordersTable).
		Columns(orderColumns[:len(orderColumns)-5]...).
		Columns("created_by", "created_at", "updated_at").
		Values(
			order.ID, order.Date, order.Salesperson, string(order.Classification),
			order.ClassificationOther, string(order.Status),
			c.Name, c.Document, c.RG, c.StateRegistration,
			c.MunicipalRegistration, c.Phone, c.Email,
			postgres.Numeric(order.GlobalValue1), postgres.Numeric(order.DiscountTotal),
			postgres.Numeric(order.FreightValue), postgres.Numeric(order.GlobalValue2),
			string(order.Currency), postgres.Numeric(order.ExchangeRate),
			postgres.Numeric(order.TotalInBRL), order.MinBilling,
			postgres.Numeric(order.MinBillingValue), postgres.Numeric(order.DownPayment),
			order.FinalCustomer, postgres.Numeric(order.TotalWeight),
			postgres.Numeric(order.TotalAmount),
			order.PaymentTerms, order.DeliveryTime, order.Validity, order.ValidUntil,
			order.PaymentMethod, order.Carrier, string(order.ShippingType),
			order.BiddingNumber, order.BiddingDate, order.CommitmentNumber,
			order.CommitmentDate, order.Notes,
			order.CreatedBy, now, now,
		).
		Suffix(upsertSuffix("id", orderUpdatable) + " RETURNING created_at, updated_at")

	sql, args, err := query.ToSql()
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%s: building query: %w", op, err)
	}

	if err = queryExecuter.QueryRow(ctx, sql, args...).Scan(&createdAt, &updatedAt); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%s: query row: %w", op, err)
	}

	return createdAt, updatedAt, nil
}

func (or *OrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	const op = "repository.order.GetByID"

	query := or.db.Builder.Select(orderColumns...).
		From(_ordersTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	order, err := scanOrder(or.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrDataNotFound
		}
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}

	return order, nil
}

// List returns order headers newest first. An empty createdBy lists every
// order.
func (or *OrderRepository) List(ctx context.Context, createdBy string) ([]*entity.Order, error) {
	const op = "repository.order.List"

	query := or.db.Builder.Select(orderColumns...).
		From(_ordersTable).
		OrderBy("created_at DESC")
	if createdBy != "" {
		query = query.Where(squirrel.Eq{"created_by": createdBy})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	rows, err := or.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: row scan: %w", op, err)
		}
		orders = append(orders, order)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows final error: %w", op, rows.Err())
	}

	return orders, nil
}

func (or *OrderRepository) Exists(ctx context.Context, id string) (bool, error) {
	const op = "repository.order.Exists"

	var exists bool
	err := or.db.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: query row: %w", op, err)
	}
	return exists, nil
}

// Delete removes the header. Children and acceptance records cascade.
func (or *OrderRepository) Delete(
	ctx context.Context,
	queryExecuter postgres.QueryExecuter,
	id string,
) error {
	const op = "repository.order.Delete"

	sql, args, err := or.db.Builder.Delete(_ordersTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: building query: %w", op, err)
	}

	tag, err := queryExecuter.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: exec: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrDataNotFound
	}
	return nil
}

func (or *OrderRepository) UpdatePDF(
	ctx context.Context,
	queryExecuter postgres.QueryExecuter,
	id, url string,
	generatedAt time.Time,
) error {
	const op = "repository.order.UpdatePDF"

	return or.update(ctx, queryExecuter, op, id, map[string]any{
		"pdf_url":          url,
		"pdf_generated_at": generatedAt,
	})
}

func (or *OrderRepository) UpdateStatus(
	ctx context.Context,
	queryExecuter postgres.QueryExecuter,
	id string,
	status entity.Status,
) error {
	const op = "repository.order.UpdateStatus"

	return or.update(ctx, queryExecuter, op, id, map[string]any{
		"status": string(status),
	})
}

func (or *OrderRepository) update(
	ctx context.Context,
	queryExecuter postgres.QueryExecuter,
	op, id string,
	values map[string]any,
) error {
	values["updated_at"] = time.Now().UTC()

	sql, args, err := or.db.Builder.Update(_ordersTable).
		SetMap(values).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: building query: %w", op, err)
	}

	tag, err := queryExecuter.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: exec: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrDataNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o       entity.Order
		c       = &o.Customer
		class   string
		status  string
		cur     string
		ship    string
		pdfAt   pgtype.Timestamptz
		numbers [10]pgtype.Numeric
	)

	err := row.Scan(
		&o.ID, &o.Date, &o.Salesperson, &class, &o.ClassificationOther, &status,
		&c.Name, &c.Document, &c.RG, &c.StateRegistration,
		&c.MunicipalRegistration, &c.Phone, &c.Email,
		&numbers[0], &numbers[1], &numbers[2], &numbers[3], &cur,
		&numbers[4], &numbers[5], &o.MinBilling, &numbers[6], &numbers[7],
		&o.FinalCustomer, &numbers[8], &numbers[9],
		&o.PaymentTerms, &o.DeliveryTime, &o.Validity, &o.ValidUntil, &o.PaymentMethod,
		&o.Carrier, &ship,
		&o.BiddingNumber, &o.BiddingDate, &o.CommitmentNumber, &o.CommitmentDate, &o.Notes,
		&o.PDFURL, &pdfAt, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Classification = entity.Classification(class)
	o.Status = entity.Status(status)
	o.Currency = entity.Currency(cur)
	o.ShippingType = entity.ShippingType(ship)

	o.GlobalValue1 = postgres.Decimal(numbers[0])
	o.DiscountTotal = postgres.Decimal(numbers[1])
	o.FreightValue = postgres.Decimal(numbers[2])
	o.GlobalValue2 = postgres.Decimal(numbers[3])
	o.ExchangeRate = postgres.Decimal(numbers[4])
	o.TotalInBRL = postgres.Decimal(numbers[5])
	o.MinBillingValue = postgres.Decimal(numbers[6])
	o.DownPayment = postgres.Decimal(numbers[7])
	o.TotalWeight = postgres.Decimal(numbers[8])
	o.TotalAmount = postgres.Decimal(numbers[9])

	if pdfAt.Valid {
		t := pdfAt.Time
		o.PDFGeneratedAt = &t
	}

	return &o, nil
}

func upsertSuffix(key string, columns []string) string {
	suffix := "ON CONFLICT (" + key + ") DO UPDATE SET "
	for i, col := range columns {
		if i > 0 {
			suffix += ", "
		}
		suffix += col + " = EXCLUDED." + col
	}
	return suffix
}
