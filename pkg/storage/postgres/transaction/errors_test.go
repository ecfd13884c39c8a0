package transaction

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"goldenorders/internal/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc     string
		input    error
		expected error
	}{
		{desc: "unique violation", input: &pgconn.PgError{Code: "23505"}, expected: entity.ErrConflictingData},
		{desc: "foreign key violation", input: &pgconn.PgError{Code: "23503"}, expected: entity.ErrInvalidData},
		{desc: "check violation", input: fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23514"}), expected: entity.ErrInvalidData},
		{desc: "no rows", input: pgx.ErrNoRows, expected: entity.ErrDataNotFound},
		{desc: "domain error passes through", input: entity.ErrForbidden, expected: entity.ErrForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			err := HandleError("SaveOrder", "upsert order", tc.input)
			assert.ErrorIs(t, err, tc.expected)
			assert.ErrorIs(t, err, tc.input)
			assert.Contains(t, err.Error(), "SaveOrder: upsert order")
		})
	}

	assert.NoError(t, HandleError("SaveOrder", "noop", nil))
}

func TestRetryReason(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc     string
		input    error
		expected string
	}{
		{desc: "deadlock", input: &pgconn.PgError{Code: "40P01"}, expected: "deadlock"},
		{desc: "serialization failure", input: &pgconn.PgError{Code: "40001"}, expected: "serialization"},
		{desc: "connection failure", input: &pgconn.PgError{Code: "08006"}, expected: "connection"},
		{desc: "wrapped by HandleError", input: HandleError("op", "commit", &pgconn.PgError{Code: "40001"}), expected: "serialization"},
		{desc: "unique violation", input: HandleError("op", "step", &pgconn.PgError{Code: "23505"})},
		{desc: "tx closed", input: pgx.ErrTxClosed, expected: "tx_closed"},
		{desc: "deadline", input: context.DeadlineExceeded},
		{desc: "plain error", input: errors.New("boom")},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, retryReason(tc.input))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(nil))
}
