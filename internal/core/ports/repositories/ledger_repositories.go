package repositories

import (
	"context"

	"github.com/bizrecords/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for ledger transaction data
type LedgerReader interface {
	// FindTransactionByID retrieves a ledger transaction (without details).
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error)

	// FindDetailsByTransactionID retrieves the postings of a transaction.
	FindDetailsByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerDetail, error)

	// ListTransactions retrieves a paginated list of ledger transactions using
	// token-based pagination. It returns the transactions, a token for the next
	// page, and an error.
	ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.LedgerTransaction, *string, error)

	// AccountBalance sums the posting amounts of an account. Postings are the
	// source of truth for balances; no balance column is maintained.
	AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// LedgerWriter defines write operations for ledger transaction data
type LedgerWriter interface {
	// SaveTransaction persists a transaction and its detail rows within one
	// database transaction: either all rows commit or none do.
	SaveTransaction(ctx context.Context, txn domain.LedgerTransaction, details []domain.LedgerDetail) error

	// SaveTransactionWithSettlement persists a transaction with its details and
	// zeroes the named receivable's balance, all within one database
	// transaction.
	SaveTransactionWithSettlement(ctx context.Context, txn domain.LedgerTransaction, details []domain.LedgerDetail, receivableID string) error

	// ConciliateTransaction persists a conciliated transaction: the header
	// update and every detail-state flip commit atomically.
	ConciliateTransaction(ctx context.Context, txn domain.LedgerTransaction) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction
// capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
