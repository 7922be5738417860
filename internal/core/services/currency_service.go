package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bizrecords/ledger_backend/internal/apperrors"
	"github.com/bizrecords/ledger_backend/internal/core/domain"
	portsrepo "github.com/bizrecords/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/bizrecords/ledger_backend/internal/core/ports/services"
	"github.com/bizrecords/ledger_backend/internal/dto"
	"github.com/bizrecords/ledger_backend/internal/middleware"
)

// currencyService provides currency management operations.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

// Ensure currencyService implements the portssvc.CurrencySvcFacade interface
var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency registers a currency. Codes are stored uppercase and must be
// unique.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.ToUpper(req.CurrencyCode)
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err == nil {
		return nil, apperrors.NewAppError(409, fmt.Sprintf("currency %s already exists", code), apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Currency lookup failed", slog.String("currency_code", code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check currency %s: %w", code, err)
	}

	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       req.Symbol,
		Name:         req.Name,
		AuditFields:  domain.NewAuditFields(creatorUserID, time.Now().UTC()),
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		logger.Error("Failed to save currency", slog.String("currency_code", code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save currency: %w", err)
	}

	logger.Info("Currency created", slog.String("currency_code", code))
	return &currency, nil
}

// GetCurrencyByCode retrieves a currency by its code.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(code))
}

// ListCurrencies retrieves all registered currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencyRepo.ListCurrencies(ctx)
}
