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

// accountService provides account management operations.
type accountService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates and persists a new account. The referenced currency
// must already be registered.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ValidationErrors{}.Add("currencyCode", apperrors.CodeInclusion).OrNil()
		}
		logger.Error("Currency lookup failed", slog.String("currency_code", req.CurrencyCode), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to verify currency %s: %w", req.CurrencyCode, err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Name:            req.Name,
		AccountableType: domain.AccountableType(req.AccountableType),
		CurrencyCode:    req.CurrencyCode,
		Description:     req.Description,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(creatorUserID, now),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("account_id", account.AccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("type", string(account.AccountableType)))
	return &account, nil
}

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts retrieves a paginated list of accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

// DeactivateAccount marks an account as inactive.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
