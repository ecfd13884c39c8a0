package repository

import (
	"context"
	"fmt"

	"goldenorders/internal/entity"
	"goldenorders/pkg/storage/postgres"

	"github.com/Masterminds/squirrel"
)

type AcceptanceRepository struct {
	db *postgres.Postgres
}

func NewAcceptanceRepository(db *postgres.Postgres) *AcceptanceRepository {
	return &AcceptanceRepository{db}
}

// CreateLog stores the audit record of a signature and returns its id.
func (ar *AcceptanceRepository) CreateLog(
	ctx context.Context,
	queryExecuter postgres.QueryExecuter,
	log *entity.AcceptanceLog,
) (*entity.AcceptanceLog, error) {
	const op = "repository.acceptance.CreateLog"

	sql, args, err := ar.db.Builder.Insert("acceptance_logs").
		Columns("order_id", "customer_name", "customer_document", "signer_name",
			"signer_email", "signature_hash", "user_agent", "ip_address").
		Values(log.OrderID, log.CustomerName, log.CustomerDocument, log.SignerName,
			log.SignerEmail, log.SignatureHash, log.UserAgent, log.IPAddress).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	created := *log
	if err = queryExecuter.QueryRow(ctx, sql, args...).Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}

	return &created, nil
}

func (ar *AcceptanceRepository) CreateDocument(
	ctx context.Context,
	queryExecuter postgres.QueryExecuter,
	doc *entity.AcceptanceDocument,
) (*entity.AcceptanceDocument, error) {
	const op = "repository.acceptance.CreateDocument"

	sql, args, err := ar.db.Builder.Insert("acceptance_documents").
		Columns("order_id", "pdf_url", "signer_name", "signer_email").
		Values(doc.OrderID, doc.PDFURL, doc.SignerName, doc.SignerEmail).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	created := *doc
	if err = queryExecuter.QueryRow(ctx, sql, args...).Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}

	return &created, nil
}

func (ar *AcceptanceRepository) ListDocuments(
	ctx context.Context,
	orderID string,
) ([]*entity.AcceptanceDocument, error) {
	const op = "repository.acceptance.ListDocuments"

	sql, args, err := ar.db.Builder.Select("id", "order_id", "pdf_url", "signer_name", "signer_email", "created_at").
		From("acceptance_documents").
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	rows, err := ar.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	var docs []*entity.AcceptanceDocument
	for rows.Next() {
		var d entity.AcceptanceDocument
		if err = rows.Scan(&d.ID, &d.OrderID, &d.PDFURL, &d.SignerName, &d.SignerEmail, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: row scan: %w", op, err)
		}
		docs = append(docs, &d)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows final error: %w", op, rows.Err())
	}

	return docs, nil
}
