package services

import (
	"context"

	"github.com/bizrecords/ledger_backend/internal/dto"
)

// BatchPaymentSvcFacade drives batch settlement of outstanding receivables
// against a cash/bank account.
type BatchPaymentSvcFacade interface {
	// ProcessPayments settles each named receivable independently: one ledger
	// transaction plus balance zeroing per receivable, each in its own atomic
	// unit. A failed item is reported in the result and does not stop the
	// batch.
	ProcessPayments(ctx context.Context, req dto.BatchPaymentRequest, userID string) (*dto.BatchPaymentResponse, error)
}
