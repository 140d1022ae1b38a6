package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errkind"
)

// PostgreSQL SQLSTATE codes the repositories care about.
const (
	CodeUniqueViolation      = "23505"
	CodeCheckViolation       = "23514"
	CodeForeignKeyViolation  = "23503"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeLockNotAvailable     = "55P03"
)

// PgCode returns the SQLSTATE of err, or "" when err is not a server error.
func PgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// MapError translates transient-concurrency failures into errkind.ErrConflict.
// Errors that already carry a kind, and all other errors, pass through unchanged.
func MapError(err error) error {
	if err == nil || errkind.Kind(err) != nil {
		return err
	}
	switch PgCode(err) {
	case CodeSerializationFailure, CodeDeadlockDetected, CodeLockNotAvailable:
		return fmt.Errorf("%w: %w", errkind.ErrConflict, err)
	default:
		return err
	}
}
