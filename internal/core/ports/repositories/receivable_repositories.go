package repositories

import (
	"context"
	"time"

	"github.com/bizrecords/ledger_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ReceivableReader defines read operations for receivable data
type ReceivableReader interface {
	// FindReceivableByID retrieves a specific receivable.
	FindReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error)

	// FindReceivablesByIDs retrieves multiple receivables by their IDs.
	FindReceivablesByIDs(ctx context.Context, receivableIDs []string) (map[string]domain.Receivable, error)

	// ListReceivables retrieves a paginated list of receivables.
	ListReceivables(ctx context.Context, limit int, offset int) ([]domain.Receivable, error)
}

// ReceivableWriter defines write operations for receivable data
type ReceivableWriter interface {
	// SaveReceivable persists a new receivable.
	SaveReceivable(ctx context.Context, receivable domain.Receivable) error

	// SettleInTx zeroes a receivable's outstanding balance and marks it paid,
	// within the given database transaction. Used by batch settlement so the
	// balance change commits with the ledger rows.
	SettleInTx(ctx context.Context, tx pgx.Tx, receivableID string, userID string, now time.Time) error
}

// ReceivableRepositoryFacade combines all receivable-related repository
// interfaces
type ReceivableRepositoryFacade interface {
	ReceivableReader
	ReceivableWriter
}
