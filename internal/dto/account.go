package dto

import (
	"time"

	"github.com/bizrecords/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name            string                 `json:"name" binding:"required"`
	AccountableType domain.AccountableType `json:"accountableType" binding:"required,oneof=MoneyStore Contact Receivable"`
	CurrencyCode    string                 `json:"currencyCode" binding:"required"`
	Description     string                 `json:"description"` // Optional
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID       string                 `json:"accountID"`
	Name            string                 `json:"name"`
	AccountableType domain.AccountableType `json:"accountableType"`
	CurrencyCode    string                 `json:"currencyCode"`
	Description     string                 `json:"description"`
	IsActive        bool                   `json:"isActive"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
}

// AccountBalanceResponse carries an account's derived balance, the sum of its
// posting amounts.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Name:            acc.Name,
		AccountableType: acc.AccountableType,
		CurrencyCode:    acc.CurrencyCode,
		Description:     acc.Description,
		IsActive:        acc.IsActive,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accs []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accs))
	for i := range accs {
		responses[i] = ToAccountResponse(&accs[i])
	}
	return responses
}
