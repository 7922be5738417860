package services

import (
	"context"

	"github.com/bizrecords/ledger_backend/internal/core/domain"
	"github.com/bizrecords/ledger_backend/internal/dto"
)

// CurrencySvcFacade defines operations for currency data
type CurrencySvcFacade interface {
	// CreateCurrency validates and persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a currency by its code.
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies retrieves all registered currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
