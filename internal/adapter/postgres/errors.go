package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/formsink/formsink/internal/domain"
)

// backendName identifies this backend in StorageError values.
const backendName = "postgres"

// MapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass
// through. pgx.ErrNoRows becomes domain.ErrNotFound, a unique violation
// becomes domain.ErrAlreadyExists, and any other failure becomes a
// *domain.StorageError carrying the backend name and the cause.
func MapError(err error, op string) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	// pgx.ErrNoRows → domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return fmt.Errorf("%s: %w", op, domain.ErrAlreadyExists)
	}

	// Everything else is a backend I/O failure.
	return domain.NewStorageError(backendName, op, err)
}
