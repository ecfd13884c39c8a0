// Package sqlite keeps records that could not reach Postgres in a local
// SQLite file until they can be replayed.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS pending_records (
    id          TEXT    PRIMARY KEY,
    payload     BLOB    NOT NULL,
    reason      TEXT    NOT NULL DEFAULT '',
    attempts    INTEGER NOT NULL DEFAULT 0,
    created_at  TEXT    NOT NULL,
    updated_at  TEXT    NOT NULL
);
`

// Fixed-width so TEXT ordering matches time ordering.
const _timeLayout = "2006-01-02T15:04:05.000000000Z"

var ErrNotFound = errors.New("pending record not found")

type Record struct {
	ID        string
	Payload   []byte
	Reason    string
	Attempts  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.Open: apply schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores or replaces the record for id. Replacing keeps created_at and the
// attempt counter.
func (s *Store) Put(ctx context.Context, id string, payload []byte, reason string) error {
	const q = `
		INSERT INTO pending_records (id, payload, reason, attempts, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			payload    = excluded.payload,
			reason     = excluded.reason,
			updated_at = excluded.updated_at`

	now := s.now().UTC().Format(_timeLayout)
	if _, err := s.db.ExecContext(ctx, q, id, payload, reason, now, now); err != nil {
		return fmt.Errorf("sqlite.Put: %q: %w", id, err)
	}
	return nil
}

// List returns all records, oldest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	const q = `
		SELECT id, payload, reason, attempts, created_at, updated_at
		FROM   pending_records
		ORDER  BY created_at, id`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite.List: query: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec                  Record
			createdAt, updatedAt string
		)
		if err = rows.Scan(&rec.ID, &rec.Payload, &rec.Reason, &rec.Attempts, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("sqlite.List: scan: %w", err)
		}
		if rec.CreatedAt, err = time.Parse(_timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("sqlite.List: parse created_at %q: %w", createdAt, err)
		}
		if rec.UpdatedAt, err = time.Parse(_timeLayout, updatedAt); err != nil {
			return nil, fmt.Errorf("sqlite.List: parse updated_at %q: %w", updatedAt, err)
		}
		out = append(out, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite.List: rows: %w", err)
	}
	return out, nil
}

// MarkAttempt records a failed replay of id.
func (s *Store) MarkAttempt(ctx context.Context, id string, reason string) error {
	const q = `
		UPDATE pending_records
		SET    attempts = attempts + 1, reason = ?, updated_at = ?
		WHERE  id = ?`

	res, err := s.db.ExecContext(ctx, q, reason, s.now().UTC().Format(_timeLayout), id)
	if err != nil {
		return fmt.Errorf("sqlite.MarkAttempt: %q: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("sqlite.MarkAttempt: %q: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pending_records WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite.Delete: %q: %w", id, err)
	}
	return nil
}
