package dto

import "github.com/bizrecords/ledger_backend/internal/core/domain"

// CreateCurrencyRequest defines the data needed to register a currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
	Symbol       string `json:"symbol" binding:"required"`
	Name         string `json:"name" binding:"required"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: c.CurrencyCode,
		Symbol:       c.Symbol,
		Name:         c.Name,
	}
}

// ToCurrencyResponses converts a slice of domain currencies.
func ToCurrencyResponses(cs []domain.Currency) []CurrencyResponse {
	responses := make([]CurrencyResponse, len(cs))
	for i := range cs {
		responses[i] = ToCurrencyResponse(&cs[i])
	}
	return responses
}
