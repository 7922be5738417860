package services

import (
	"context"

	"github.com/bizrecords/ledger_backend/internal/core/domain"
	"github.com/bizrecords/ledger_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines read operations for ledger data
type LedgerReaderSvc interface {
	// GetTransactionByID retrieves a transaction with its postings.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error)

	// ListTransactions retrieves a paginated list of transactions.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// AccountBalance returns the derived balance of an account.
	AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// LedgerWriterSvc defines write operations for ledger data
type LedgerWriterSvc interface {
	// CreateMoney validates and persists a new money-movement transaction with
	// its balanced posting pair. All validation failures are reported before
	// any write is attempted.
	CreateMoney(ctx context.Context, req dto.CreateMoneyRequest, creatorUserID string) (*domain.LedgerTransaction, error)

	// Conciliate marks a transaction and its postings as confirmed. Fails
	// without changing state when the transaction is not active.
	Conciliate(ctx context.Context, transactionID string, approverUserID string) (*domain.LedgerTransaction, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
