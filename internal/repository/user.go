package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/pkg/storage/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const _usersTable = "app_users"

var userColumns = []string{"email", "name", "role", "last_login", "created_at"}

type UserRepository struct {
	db *postgres.Postgres
}

func NewUserRepository(db *postgres.Postgres) *UserRepository {
	return &UserRepository{db}
}

func (ur *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	const op = "repository.user.List"

	sql, args, err := ur.db.Builder.Select(userColumns...).From(_usersTable).OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	rows, err := ur.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: row scan: %w", op, err)
		}
		users = append(users, user)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows final error: %w", op, rows.Err())
	}

	return users, nil
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const op = "repository.user.GetByEmail"

	sql, args, err := ur.db.Builder.Select(userColumns...).
		From(_usersTable).
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	user, err := scanUser(ur.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrDataNotFound
		}
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}

	return user, nil
}

func (ur *UserRepository) Create(
	ctx context.Context,
	queryExecuter postgres.QueryExecuter,
	user *entity.User,
) (*entity.User, error) {
	const op = "repository.user.Create"

	sql, args, err := ur.db.Builder.Insert(_usersTable).
		Columns("email", "name", "role").
		Values(user.Email, user.Name, string(user.Role)).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	created, err := scanUser(queryExecuter.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}

	return created, nil
}

// Update changes name and role. The email is the identity and never changes.
func (ur *UserRepository) Update(
	ctx context.Context,
	queryExecuter postgres.QueryExecuter,
	user *entity.User,
) (*entity.User, error) {
	const op = "repository.user.Update"

	sql, args, err := ur.db.Builder.Update(_usersTable).
		Set("name", user.Name).
		Set("role", string(user.Role)).
		Where(squirrel.Eq{"email": user.Email}).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	updated, err := scanUser(queryExecuter.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrDataNotFound
		}
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}

	return updated, nil
}

func (ur *UserRepository) Delete(
	ctx context.Context,
	queryExecuter postgres.QueryExecuter,
	email string,
) error {
	const op = "repository.user.Delete"

	sql, args, err := ur.db.Builder.Delete(_usersTable).Where(squirrel.Eq{"email": email}).ToSql()
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

// TouchLastLogin records a successful sign-in. Users without a directory
// record are ignored.
func (ur *UserRepository) TouchLastLogin(ctx context.Context, email string, at time.Time) error {
	const op = "repository.user.TouchLastLogin"

	sql, args, err := ur.db.Builder.Update(_usersTable).
		Set("last_login", at).
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: building query: %w", op, err)
	}

	if _, err = ur.db.Pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("%s: exec: %w", op, err)
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u         entity.User
		role      string
		lastLogin pgtype.Timestamptz
	)
	if err := row.Scan(&u.Email, &u.Name, &role, &lastLogin, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return &u, nil
}
