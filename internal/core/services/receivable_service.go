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
)

// receivableService provides receivable management operations.
type receivableService struct {
	receivableRepo portsrepo.ReceivableRepositoryFacade
	accountRepo    portsrepo.AccountRepositoryFacade
}

// NewReceivableService creates a new ReceivableService.
func NewReceivableService(receivableRepo portsrepo.ReceivableRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.ReceivableSvcFacade {
	return &receivableService{
		receivableRepo: receivableRepo,
		accountRepo:    accountRepo,
	}
}

// Ensure receivableService implements the portssvc.ReceivableSvcFacade interface
var _ portssvc.ReceivableSvcFacade = (*receivableService)(nil)

// CreateReceivable validates and persists a new receivable. The owing
// counterparty must resolve to a contact account; the receivable starts
// approved with its balance equal to its total.
func (s *receivableService) CreateReceivable(ctx context.Context, req dto.CreateReceivableRequest, creatorUserID string) (*domain.Receivable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var errs apperrors.ValidationErrors
	contact, err := s.accountRepo.FindAccountByID(ctx, req.ContactID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Contact lookup failed", slog.String("contact_id", req.ContactID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to resolve contact %s: %w", req.ContactID, err)
		}
		errs = errs.Add("contactID", apperrors.CodeInclusion)
	} else if contact.AccountableType != domain.Contact {
		errs = errs.Add("contactID", apperrors.CodeInclusion)
	}
	if !req.Total.IsPositive() {
		errs = errs.Add("total", apperrors.CodeInclusion)
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	receivable := domain.Receivable{
		ReceivableID: uuid.NewString(),
		Name:         req.Name,
		ContactID:    req.ContactID,
		CurrencyCode: req.CurrencyCode,
		Total:        req.Total,
		Balance:      req.Total,
		State:        domain.ReceivableApproved,
		AuditFields:  domain.NewAuditFields(creatorUserID, now),
	}

	if err := s.receivableRepo.SaveReceivable(ctx, receivable); err != nil {
		logger.Error("Failed to save receivable", slog.String("receivable_id", receivable.ReceivableID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save receivable: %w", err)
	}

	logger.Info("Receivable created", slog.String("receivable_id", receivable.ReceivableID), slog.String("name", receivable.Name))
	return &receivable, nil
}

// GetReceivableByID retrieves a specific receivable.
func (s *receivableService) GetReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error) {
	return s.receivableRepo.FindReceivableByID(ctx, receivableID)
}

// ListReceivables retrieves a paginated list of receivables.
func (s *receivableService) ListReceivables(ctx context.Context, limit int, offset int) ([]domain.Receivable, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.receivableRepo.ListReceivables(ctx, limit, offset)
}
