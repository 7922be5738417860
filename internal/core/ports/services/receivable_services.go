package services

import (
	"context"

	"github.com/bizrecords/ledger_backend/internal/core/domain"
	"github.com/bizrecords/ledger_backend/internal/dto"
)

// ReceivableSvcFacade defines operations for receivable data
type ReceivableSvcFacade interface {
	// CreateReceivable validates and persists a new receivable.
	CreateReceivable(ctx context.Context, req dto.CreateReceivableRequest, creatorUserID string) (*domain.Receivable, error)

	// GetReceivableByID retrieves a specific receivable.
	GetReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error)

	// ListReceivables retrieves a paginated list of receivables.
	ListReceivables(ctx context.Context, limit int, offset int) ([]domain.Receivable, error)
}
