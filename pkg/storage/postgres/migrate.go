package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
)

const _migrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Migrate applies every *.sql file of migrations not yet recorded in
// schema_migrations, in lexical order, one transaction per file. It returns the
// versions applied by this call.
func (p *Postgres) Migrate(ctx context.Context, migrations fs.FS) ([]string, error) {
	const op = "storage.postgres.Migrate"

	names, err := fs.Glob(migrations, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("%s: list migrations: %w", op, err)
	}
	sort.Strings(names)

	if _, err = p.Pool.Exec(ctx, _migrationsTable); err != nil {
		return nil, fmt.Errorf("%s: create migrations table: %w", op, err)
	}

	var applied []string
	for _, name := range names {
		version := strings.TrimSuffix(name, ".sql")

		body, err := fs.ReadFile(migrations, name)
		if err != nil {
			return applied, fmt.Errorf("%s: read %s: %w", op, name, err)
		}

		done, err := p.applyMigration(ctx, version, string(body))
		if err != nil {
			return applied, fmt.Errorf("%s: apply %s: %w", op, name, err)
		}
		if done {
			applied = append(applied, version)
		}
	}

	return applied, nil
}

func (p *Postgres) applyMigration(ctx context.Context, version, body string) (bool, error) {
	applied := false

	err := pgx.BeginFunc(ctx, p.Pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version) VALUES ($1) ON CONFLICT (version) DO NOTHING`,
			version,
		)
		if err != nil {
			return fmt.Errorf("record version: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		if _, err = tx.Exec(ctx, body); err != nil {
			return fmt.Errorf("exec: %w", err)
		}
		applied = true
		return nil
	})

	return applied, err
}
