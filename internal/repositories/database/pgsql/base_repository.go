package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bizrecords/ledger_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository holds the shared connection pool and the transaction
// plumbing every pgsql repository embeds. A ledger write (header plus posting
// rows, or a settlement with its balance zeroing) always runs inside one
// transaction obtained here.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin opens the transaction an atomic ledger write runs in.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits an atomic unit.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback aborts an atomic unit. Safe to defer after Commit; a completed
// transaction reports sql.ErrTxDone, which is not an error here.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}
