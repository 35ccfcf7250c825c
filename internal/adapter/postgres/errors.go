package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bhashasetu/corpus-catalog/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped — they pass through.
//
// Constraint-name conventions from the migrations drive 23505 mapping:
//   - *_one_active_idx  — partial unique index upholding the one-active-version
//     invariant; a violation means a concurrent writer won, so ErrConflict
//     (retryable).
//   - translation_metric_triple_idx — the (translation_id, metric_uid, version)
//     defensive index; a violation is ErrDuplicateVersion.
func MapError(err error, entity string, uid int64) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %d: %w", entity, uid, err)
	}

	// pgx.ErrNoRows → domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", entity, uid, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "triple") {
				return fmt.Errorf("%s %d: %w", entity, uid, domain.ErrDuplicateVersion)
			}
			if strings.Contains(pgErr.ConstraintName, "one_active") {
				return fmt.Errorf("%s %d: %w", entity, uid, domain.ErrConflict)
			}
			return fmt.Errorf("%s %d: %w", entity, uid, domain.ErrConflict)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %d: %w", entity, uid, domain.ErrDanglingReference)
		case "23514": // check_violation
			return fmt.Errorf("%s %d: %w", entity, uid, domain.ErrValidation)
		case "40001": // serialization_failure
			return fmt.Errorf("%s %d: %w", entity, uid, domain.ErrConflict)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s %d: %w", entity, uid, err)
}
