package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/GlebRadaev/gtonledger/internal/domain"
)

const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeQueryCanceled        = "57014"
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
)

// MapError translates driver errors into the domain taxonomy. Unknown errors pass through.
func MapError(err error) error {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if errors.Is(err, domain.ErrBusy) || errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrInsufficientBalance) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrBusy, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable, codeQueryCanceled:
			return fmt.Errorf("%w: %w", domain.ErrBusy, err)
		case codeUniqueViolation:
			return fmt.Errorf("%w: %w", domain.ErrConflict, err)
		case codeCheckViolation:
			return fmt.Errorf("%w: %w", domain.ErrInsufficientBalance, err)
		}
	}
	return err
}

// IsUniqueViolation reports whether err came from the named unique constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
	}
	return false
}
