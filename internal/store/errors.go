package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors for the repository boundary. Callers branch with errors.Is;
// the wrapped cause stays attached for logging.
var (
	// ErrNotFound: a read by id/key matched no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate: an insert or update hit a uniqueness constraint.
	ErrDuplicate = errors.New("already exists")
	// ErrForeignKey: a write referenced a row that does not exist.
	ErrForeignKey = errors.New("referenced record does not exist")
	// ErrConnection: the database could not be reached or a connection
	// could not be acquired before the deadline.
	ErrConnection = errors.New("database unavailable")
	// ErrMapping: a result row did not have the expected shape.
	ErrMapping = errors.New("row mapping failed")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapError classifies a driver error into the sentinel taxonomy. Anything
// unrecognized passes through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrForeignKey, pgErr.ConstraintName)
		}
	}
	return err
}

func connErr(err error) error {
	return fmt.Errorf("%w: %v", ErrConnection, err)
}

func scanErr(err error) error {
	return fmt.Errorf("%w: %v", ErrMapping, err)
}
