package dto

import (
	"time"

	"github.com/bizrecords/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReceivableRequest defines the data needed to record a receivable.
type CreateReceivableRequest struct {
	Name         string          `json:"name" binding:"required"`
	ContactID    string          `json:"contactID" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required"`
	Total        decimal.Decimal `json:"total" binding:"required"`
}

// ReceivableResponse defines the data returned for a receivable.
type ReceivableResponse struct {
	ReceivableID string          `json:"receivableID"`
	Name         string          `json:"name"`
	ContactID    string          `json:"contactID"`
	CurrencyCode string          `json:"currencyCode"`
	Total        decimal.Decimal `json:"total"`
	Balance      decimal.Decimal `json:"balance"`
	State        string          `json:"state"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToReceivableResponse converts a domain.Receivable to ReceivableResponse DTO
func ToReceivableResponse(r *domain.Receivable) ReceivableResponse {
	return ReceivableResponse{
		ReceivableID: r.ReceivableID,
		Name:         r.Name,
		ContactID:    r.ContactID,
		CurrencyCode: r.CurrencyCode,
		Total:        r.Total,
		Balance:      r.Balance,
		State:        string(r.State),
		CreatedAt:    r.CreatedAt,
	}
}

// ToReceivableResponses converts a slice of domain receivables.
func ToReceivableResponses(rs []domain.Receivable) []ReceivableResponse {
	responses := make([]ReceivableResponse, len(rs))
	for i := range rs {
		responses[i] = ToReceivableResponse(&rs[i])
	}
	return responses
}
