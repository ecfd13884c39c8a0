package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"goldenorders/internal/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	_uniqueViolation     = "23505"
	_foreignKeyViolation = "23503"
	_checkViolation      = "23514"
	_notNullViolation    = "23502"
	_invalidTextRepr     = "22P02"
	_numericOutOfRange   = "22003"

	_deadlockDetected         = "40P01"
	_serializationFailure     = "40001"
	_connectionExceptionClass = "08"
)

// HandleError annotates err with the transaction and step it failed in and
// attaches the matching domain error, keeping the driver error in the chain.
func HandleError(operation, step string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) && !errors.Is(err, entity.ErrDataNotFound) {
		return fmt.Errorf("%s: %s: %w: %w", operation, step, entity.ErrDataNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case _uniqueViolation:
			return fmt.Errorf("%s: %s: %w: %w", operation, step, entity.ErrConflictingData, err)
		case _foreignKeyViolation, _checkViolation, _notNullViolation,
			_invalidTextRepr, _numericOutOfRange:
			return fmt.Errorf("%s: %s: %w: %w", operation, step, entity.ErrInvalidData, err)
		}
	}

	return fmt.Errorf("%s: %s: %w", operation, step, err)
}

// IsUniqueViolation reports whether err carries a unique constraint failure.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == _uniqueViolation
}

// retryReason names the transient failure behind err, or returns "" when
// running the transaction again cannot help.
func retryReason(err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == _deadlockDetected:
			return "deadlock"
		case pgErr.Code == _serializationFailure:
			return "serialization"
		case strings.HasPrefix(pgErr.Code, _connectionExceptionClass):
			return "connection"
		}
		return ""
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return "connection"
	}

	if errors.Is(err, pgx.ErrTxClosed) {
		return "tx_closed"
	}
	return ""
}
