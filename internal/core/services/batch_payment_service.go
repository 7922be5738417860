package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizrecords/ledger_backend/internal/apperrors"
	"github.com/bizrecords/ledger_backend/internal/core/domain"
	portsrepo "github.com/bizrecords/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/bizrecords/ledger_backend/internal/core/ports/services"
	"github.com/bizrecords/ledger_backend/internal/dto"
	"github.com/bizrecords/ledger_backend/internal/middleware"
	"github.com/bizrecords/ledger_backend/internal/platform/locale"
)

var (
	ErrNotMoneyStore = errors.New("target account is not a cash or bank account")
)

// batchPaymentService settles outstanding receivables against a cash/bank
// account, one ledger transaction per receivable.
type batchPaymentService struct {
	ledgerRepo     portsrepo.LedgerRepositoryWithTx
	receivableRepo portsrepo.ReceivableRepositoryFacade
	accountSvc     portssvc.AccountReaderSvc
}

// NewBatchPaymentService creates a new BatchPaymentService.
func NewBatchPaymentService(
	ledgerRepo portsrepo.LedgerRepositoryWithTx,
	receivableRepo portsrepo.ReceivableRepositoryFacade,
	accountSvc portssvc.AccountReaderSvc,
) portssvc.BatchPaymentSvcFacade {
	return &batchPaymentService{
		ledgerRepo:     ledgerRepo,
		receivableRepo: receivableRepo,
		accountSvc:     accountSvc,
	}
}

// Ensure batchPaymentService implements the portssvc.BatchPaymentSvcFacade interface
var _ portssvc.BatchPaymentSvcFacade = (*batchPaymentService)(nil)

// ProcessPayments settles each named receivable independently, in request
// order. The target account is validated once up front; per-receivable
// failures (unknown ID, nothing outstanding, write failure) are reported in
// the item result and do not stop the batch. Each settlement commits the
// ledger rows and the balance zeroing in one database transaction.
func (s *batchPaymentService) ProcessPayments(ctx context.Context, req dto.BatchPaymentRequest, userID string) (*dto.BatchPaymentResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountSvc.GetAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		logger.Error("Failed to resolve batch payment account", slog.String("account_id", req.AccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to resolve account %s: %w", req.AccountID, err)
	}
	if !account.IsMoneyStore() {
		return nil, ErrNotMoneyStore
	}

	receivables, err := s.receivableRepo.FindReceivablesByIDs(ctx, req.IDs)
	if err != nil {
		logger.Error("Failed to fetch receivables for batch payment", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch receivables: %w", err)
	}

	resp := &dto.BatchPaymentResponse{}
	now := time.Now().UTC()

	for _, id := range req.IDs {
		rec, ok := receivables[id]
		if !ok {
			resp.Results = append(resp.Results, dto.BatchPaymentItemResult{
				ReceivableID: id,
				Error:        "receivable not found",
			})
			resp.Failed++
			continue
		}
		if !rec.Outstanding() {
			resp.Results = append(resp.Results, dto.BatchPaymentItemResult{
				ReceivableID: id,
				Error:        "receivable has no outstanding balance",
			})
			resp.Failed++
			continue
		}

		txn := s.buildSettlementTransaction(&rec, account, userID, now)
		if err := s.ledgerRepo.SaveTransactionWithSettlement(ctx, txn, txn.Details, rec.ReceivableID); err != nil {
			logger.Error("Receivable settlement failed",
				slog.String("receivable_id", id),
				slog.String("transaction_id", txn.TransactionID),
				slog.String("error", err.Error()))
			resp.Results = append(resp.Results, dto.BatchPaymentItemResult{
				ReceivableID: id,
				Error:        "settlement failed",
			})
			resp.Failed++
			continue
		}

		resp.Results = append(resp.Results, dto.BatchPaymentItemResult{
			ReceivableID:  id,
			TransactionID: txn.TransactionID,
			Settled:       true,
		})
		resp.Settled++
	}

	logger.Info("Batch payment processed",
		slog.Int("settled", resp.Settled),
		slog.Int("failed", resp.Failed),
		slog.String("account_id", req.AccountID))
	return resp, nil
}

// buildSettlementTransaction constructs the conciliation-pending deposit that
// moves a receivable's outstanding balance into the cash account. The
// receivable itself stands in as the primary side, so these transactions skip
// the money-movement eligibility rules and are flagged accordingly.
func (s *batchPaymentService) buildSettlementTransaction(rec *domain.Receivable, cash *domain.Account, userID string, now time.Time) domain.LedgerTransaction {
	txn := domain.LedgerTransaction{
		TransactionID: uuid.NewString(),
		Operation:     domain.OperationIn,
		AccountID:     rec.ReceivableID,
		ToID:          cash.AccountID,
		Amount:        rec.Balance,
		Description:   locale.Description(string(domain.OperationIn), cash.Name),
		Reference:     locale.ReceivableReference(rec.Name),
		Date:          now,
		CurrencyCode:  rec.CurrencyCode,
		Conciliation:  false,
		Status:        domain.StatusActive,
		IsMoney:       false,
		CreatorID:     userID,
		AuditFields:   domain.NewAuditFields(userID, now),
	}
	if txn.BuildDetails(rec.CurrencyCode, now) {
		for i := range txn.Details {
			txn.Details[i].DetailID = uuid.NewString()
		}
	}
	txn.NormalizeAmount()
	return txn
}
