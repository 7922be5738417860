package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizrecords/ledger_backend/internal/apperrors"
	"github.com/bizrecords/ledger_backend/internal/core/domain"
	portsrepo "github.com/bizrecords/ledger_backend/internal/core/ports/repositories"
	"github.com/bizrecords/ledger_backend/internal/models"
	"github.com/bizrecords/ledger_backend/internal/utils/mapping"
)

type PgxReceivableRepository struct {
	BaseRepository
}

// newPgxReceivableRepository creates a new repository for receivable data.
func newPgxReceivableRepository(pool *pgxpool.Pool) portsrepo.ReceivableRepositoryFacade {
	return &PgxReceivableRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReceivableRepository implements portsrepo.ReceivableRepositoryFacade
var _ portsrepo.ReceivableRepositoryFacade = (*PgxReceivableRepository)(nil)

const selectReceivableColumns = `
	receivable_id, name, contact_id, currency_code, total, balance, state,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanReceivable(row pgx.Row) (models.Receivable, error) {
	var m models.Receivable
	err := row.Scan(
		&m.ReceivableID,
		&m.Name,
		&m.ContactID,
		&m.CurrencyCode,
		&m.Total,
		&m.Balance,
		&m.State,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveReceivable persists a new receivable.
func (r *PgxReceivableRepository) SaveReceivable(ctx context.Context, receivable domain.Receivable) error {
	modelReceivable := mapping.ToModelReceivable(receivable)
	query := `
		INSERT INTO receivables (
			receivable_id, name, contact_id, currency_code, total, balance, state,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelReceivable.ReceivableID,
		modelReceivable.Name,
		modelReceivable.ContactID,
		modelReceivable.CurrencyCode,
		modelReceivable.Total,
		modelReceivable.Balance,
		modelReceivable.State,
		modelReceivable.CreatedAt,
		modelReceivable.CreatedBy,
		modelReceivable.LastUpdatedAt,
		modelReceivable.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert receivable "+modelReceivable.ReceivableID, err)
	}
	return nil
}

// FindReceivableByID retrieves a specific receivable.
func (r *PgxReceivableRepository) FindReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error) {
	query := `SELECT ` + selectReceivableColumns + ` FROM receivables WHERE receivable_id = $1;`

	m, err := scanReceivable(r.Pool.QueryRow(ctx, query, receivableID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find receivable by ID "+receivableID, err)
	}

	domainReceivable := mapping.ToDomainReceivable(m)
	return &domainReceivable, nil
}

// FindReceivablesByIDs retrieves multiple receivables by their IDs. Missing IDs
// are simply absent from the returned map.
func (r *PgxReceivableRepository) FindReceivablesByIDs(ctx context.Context, receivableIDs []string) (map[string]domain.Receivable, error) {
	if len(receivableIDs) == 0 {
		return map[string]domain.Receivable{}, nil
	}

	query := `SELECT ` + selectReceivableColumns + ` FROM receivables WHERE receivable_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, receivableIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query receivables by IDs", err)
	}
	defer rows.Close()

	receivables := make(map[string]domain.Receivable, len(receivableIDs))
	for rows.Next() {
		m, scanErr := scanReceivable(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan receivable row", scanErr)
		}
		receivables[m.ReceivableID] = mapping.ToDomainReceivable(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating receivable rows", err)
	}

	return receivables, nil
}

// ListReceivables retrieves a paginated list of receivables.
func (r *PgxReceivableRepository) ListReceivables(ctx context.Context, limit int, offset int) ([]domain.Receivable, error) {
	query := `SELECT ` + selectReceivableColumns + ` FROM receivables ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query receivables", err)
	}
	defer rows.Close()

	receivables := []domain.Receivable{}
	for rows.Next() {
		m, scanErr := scanReceivable(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan receivable row", scanErr)
		}
		receivables = append(receivables, mapping.ToDomainReceivable(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating receivable rows", err)
	}

	return receivables, nil
}

// SettleInTx zeroes a receivable's outstanding balance and marks it paid,
// within the given database transaction. The state guard keeps a receivable
// from being settled twice under concurrent batches.
func (r *PgxReceivableRepository) SettleInTx(ctx context.Context, tx pgx.Tx, receivableID string, userID string, now time.Time) error {
	query := `
		UPDATE receivables
		SET balance = 0,
		    state = 'paid',
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE receivable_id = $1 AND state = 'approved' AND balance > 0;
	`
	cmdTag, err := tx.Exec(ctx, query, receivableID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to settle receivable "+receivableID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "receivable "+receivableID+" not eligible for settlement", apperrors.ErrConflict)
	}
	return nil
}
