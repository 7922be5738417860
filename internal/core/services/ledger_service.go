package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizrecords/ledger_backend/internal/apperrors"
	"github.com/bizrecords/ledger_backend/internal/core/domain"
	portsrepo "github.com/bizrecords/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/bizrecords/ledger_backend/internal/core/ports/services"
	"github.com/bizrecords/ledger_backend/internal/dto"
	"github.com/bizrecords/ledger_backend/internal/middleware"
	"github.com/bizrecords/ledger_backend/internal/platform/locale"
	"github.com/bizrecords/ledger_backend/internal/utils/accounting"
)

var (
	ErrNotActive          = errors.New("ledger transaction is not active")
	ErrAlreadyConciliated = errors.New("ledger transaction is already conciliated")
	ErrUnbalancedDetails  = errors.New("ledger details do not balance to zero")
)

// ledgerService provides the posting and reconciliation operations for ledger
// transactions.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryWithTx
	accountSvc portssvc.AccountReaderSvc
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryWithTx, accountSvc portssvc.AccountReaderSvc) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		accountSvc: accountSvc,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// resolveAccount looks up an account, mapping not-found to a nil account so
// eligibility checks can attach a field error instead of failing the call.
// Any other lookup failure is a real fault and propagates.
func (s *ledgerService) resolveAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if accountID == "" {
		return nil, nil
	}
	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("account lookup failed for %s: %w", accountID, err)
	}
	return account, nil
}

// requiredToType returns the capability tag the destination account must carry
// for the given operation: a transfer moves between money stores, everything
// else targets a counterparty.
func requiredToType(op domain.OperationType) domain.AccountableType {
	if op == domain.OperationTrans {
		return domain.MoneyStore
	}
	return domain.Contact
}

// CreateMoney validates and persists a new money-movement transaction.
// The pipeline runs in a fixed order: build the entity, generate the posting
// pair, derive the description, normalize the stored amount sign, then check
// presence and account eligibility. Every failure is collected as a field
// error and reported before any write; a transaction is never committed with
// fewer than its two balanced postings.
func (s *ledgerService) CreateMoney(ctx context.Context, req dto.CreateMoneyRequest, creatorUserID string) (*domain.LedgerTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	date := req.Date
	if date.IsZero() {
		date = now
	}

	txn := domain.LedgerTransaction{
		TransactionID: uuid.NewString(),
		Operation:     domain.OperationType(req.Operation),
		AccountID:     req.AccountID,
		ToID:          req.ToID,
		Amount:        req.Amount,
		Reference:     req.Reference,
		Date:          date,
		Conciliation:  false, // forced regardless of input
		Status:        domain.StatusActive,
		IsMoney:       true,
		CreatorID:     creatorUserID,
		AuditFields:   domain.NewAuditFields(creatorUserID, now),
	}

	var errs apperrors.ValidationErrors
	if !txn.Operation.Valid() {
		errs = errs.Add("operation", apperrors.CodeInclusion)
	}
	if !req.Amount.IsPositive() {
		errs = errs.Add("amount", apperrors.CodeInclusion)
	}

	account, err := s.resolveAccount(ctx, txn.AccountID)
	if err != nil {
		logger.Error("Primary account lookup failed", slog.String("account_id", txn.AccountID), slog.String("error", err.Error()))
		return nil, err
	}
	toAccount, err := s.resolveAccount(ctx, txn.ToID)
	if err != nil {
		logger.Error("Destination account lookup failed", slog.String("to_id", txn.ToID), slog.String("error", err.Error()))
		return nil, err
	}

	// Posting generation. Skipped silently when account, destination or
	// amount is missing; presence validation below rejects the record then.
	currency := ""
	if account != nil {
		currency = account.CurrencyCode
	}
	if txn.BuildDetails(currency, now) {
		for i := range txn.Details {
			txn.Details[i].DetailID = uuid.NewString()
		}
	}

	// Derived description, set once at creation.
	if toAccount != nil {
		txn.Description = locale.Description(string(txn.Operation), toAccount.Name)
	}

	// The stored amount carries the operation sign; detail signs were computed
	// independently above.
	txn.NormalizeAmount()

	if txn.AccountID == "" {
		errs = errs.Add("account_id", apperrors.CodeBlank)
	}
	if txn.ToID == "" {
		errs = errs.Add("to_id", apperrors.CodeBlank)
	}

	// Eligibility: the primary side must be a money store; the destination's
	// required tag depends on the operation. A failed lookup reads as
	// ineligible, never as a fatal error.
	if txn.AccountID != "" && (account == nil || !account.IsMoneyStore()) {
		errs = errs.Add("account_id", apperrors.CodeInclusion)
	}
	if txn.ToID != "" && (toAccount == nil || toAccount.AccountableType != requiredToType(txn.Operation)) {
		errs = errs.Add("to_id", apperrors.CodeInclusion)
	}

	if err := errs.OrNil(); err != nil {
		logger.Warn("Money transaction rejected", slog.String("error", err.Error()))
		return nil, err
	}

	if err := accounting.ValidatePostings(txn.Details); err != nil {
		// Unreachable with pair generation above; guards repo writes anyway.
		logger.Error("Posting invariant violated", slog.String("error", err.Error()))
		return nil, ErrUnbalancedDetails
	}

	if err := s.ledgerRepo.SaveTransaction(ctx, txn, txn.Details); err != nil {
		logger.Error("Failed to save ledger transaction", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save ledger transaction: %w", err)
	}

	logger.Info("Ledger transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("operation", string(txn.Operation)))
	return &txn, nil
}

// Conciliate marks every posting of a transaction as confirmed and freezes the
// transaction. The detail-state flips and the header update commit in one
// atomic unit; a transaction that is not active (or already conciliated) is
// left untouched and the failure is reported to the caller.
func (s *ledgerService) Conciliate(ctx context.Context, transactionID string, approverUserID string) (*domain.LedgerTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction for conciliation", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	details, err := s.ledgerRepo.FindDetailsByTransactionID(ctx, transactionID)
	if err != nil {
		logger.Error("Failed to fetch details for conciliation", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch details for transaction %s: %w", transactionID, err)
	}
	txn.Details = details

	now := time.Now().UTC()
	if !txn.Conciliate(approverUserID, now) {
		if txn.Conciliation {
			return nil, ErrAlreadyConciliated
		}
		logger.Warn("Conciliation refused for inactive transaction", slog.String("transaction_id", transactionID), slog.String("status", string(txn.Status)))
		return nil, ErrNotActive
	}

	if err := s.ledgerRepo.ConciliateTransaction(ctx, *txn); err != nil {
		logger.Error("Failed to persist conciliation", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to conciliate transaction %s: %w", transactionID, err)
	}

	logger.Info("Ledger transaction conciliated", slog.String("transaction_id", transactionID), slog.String("approver_id", approverUserID))
	return txn, nil
}

// GetTransactionByID retrieves a transaction together with its postings.
func (s *ledgerService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction by ID", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	details, err := s.ledgerRepo.FindDetailsByTransactionID(ctx, transactionID)
	if err != nil {
		logger.Error("Failed to fetch transaction details", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve details for transaction %s: %w", transactionID, apperrors.ErrInternal)
	}
	txn.Details = details

	return txn, nil
}

// ListTransactions retrieves a paginated list of transactions (without
// details).
func (s *ledgerService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	transactions, nextToken, err := s.ledgerRepo.ListTransactions(ctx, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list ledger transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	resp := &dto.ListTransactionsResponse{
		Transactions: dto.ToLedgerTransactionResponses(transactions),
		NextToken:    nextToken,
	}

	logger.Debug("Ledger transactions listed", slog.Int("count", len(transactions)))
	return resp, nil
}

// AccountBalance returns the derived balance of an account, the sum of its
// posting amounts.
func (s *ledgerService) AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return decimal.Zero, err
	}
	return s.ledgerRepo.AccountBalance(ctx, accountID)
}
