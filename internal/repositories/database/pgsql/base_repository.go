package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// mapError translates driver errors into the application's sentinels.
func mapError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%s: %w", what, apperrors.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// resolveOutcome interprets a conditional pending-only update. Zero rows means the
// document is either missing or no longer pending.
func (r *BaseRepository) resolveOutcome(ctx context.Context, tag pgconn.CommandTag, existsQuery, id, what string) error {
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.Pool.QueryRow(ctx, existsQuery, id).Scan(&exists); err != nil {
		return mapError(err, what)
	}
	if !exists {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, apperrors.ErrAlreadyResolved)
}
