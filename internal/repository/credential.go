package repository

import (
	"context"
	"errors"
	"fmt"

	"goldenorders/internal/entity"
	"goldenorders/pkg/storage/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

const _credentialsTable = "auth_credentials"

type CredentialRepository struct {
	db *postgres.Postgres
}

func NewCredentialRepository(db *postgres.Postgres) *CredentialRepository {
	return &CredentialRepository{db}
}

func (cr *CredentialRepository) Create(
	ctx context.Context,
	queryExecuter postgres.QueryExecuter,
	cred *entity.Credential,
) error {
	const op = "repository.credential.Create"

	sql, args, err := cr.db.Builder.Insert(_credentialsTable).
		Columns("email", "password_hash").
		Values(cred.Email, cred.PasswordHash).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: building query: %w", op, err)
	}

	if _, err = queryExecuter.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("%s: exec: %w", op, err)
	}
	return nil
}

func (cr *CredentialRepository) GetByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	const op = "repository.credential.GetByEmail"

	sql, args, err := cr.db.Builder.Select("email", "password_hash", "created_at").
		From(_credentialsTable).
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	var cred entity.Credential
	err = cr.db.Pool.QueryRow(ctx, sql, args...).Scan(&cred.Email, &cred.PasswordHash, &cred.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrDataNotFound
		}
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}

	return &cred, nil
}
