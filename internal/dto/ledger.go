package dto

import (
	"time"

	"github.com/bizrecords/ledger_backend/internal/apperrors"
	"github.com/bizrecords/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// dateLayout is the accepted textual form for the transaction date.
const dateLayout = "2006-01-02"

// createMoneyWhitelist is the fixed set of fields a caller may supply when
// constructing a money movement. Anything else is rejected before validation.
var createMoneyWhitelist = map[string]struct{}{
	"operation":  {},
	"account_id": {},
	"to_id":      {},
	"amount":     {},
	"reference":  {},
	"date":       {},
}

// CreateMoneyRequest carries the whitelisted creation fields of a money
// movement, already normalized (date parsed, amount as decimal).
type CreateMoneyRequest struct {
	Operation string          `json:"operation"`
	AccountID string          `json:"account_id"`
	ToID      string          `json:"to_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
	Date      time.Time       `json:"date"`
}

// ParseCreateMoneyRequest builds a CreateMoneyRequest from raw caller input.
// The date, when textual, is normalized before the whitelist check so a request
// carrying only a malformed date reports the parse failure, not a field error.
// Unknown keys fail with an unknown_field error per offending key; nothing is
// persisted on any failure.
func ParseCreateMoneyRequest(raw map[string]any) (*CreateMoneyRequest, error) {
	var errs apperrors.ValidationErrors

	req := &CreateMoneyRequest{}
	if v, ok := raw["date"]; ok {
		switch d := v.(type) {
		case string:
			parsed, err := time.Parse(dateLayout, d)
			if err != nil {
				errs = errs.Add("date", apperrors.CodeInvalidDate)
			} else {
				req.Date = parsed
			}
		case time.Time:
			req.Date = d
		default:
			errs = errs.Add("date", apperrors.CodeInvalidDate)
		}
	}

	for key := range raw {
		if _, ok := createMoneyWhitelist[key]; !ok {
			errs = errs.Add(key, apperrors.CodeUnknownField)
		}
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	if v, ok := raw["operation"].(string); ok {
		req.Operation = v
	}
	if v, ok := raw["account_id"].(string); ok {
		req.AccountID = v
	}
	if v, ok := raw["to_id"].(string); ok {
		req.ToID = v
	}
	if v, ok := raw["reference"].(string); ok {
		req.Reference = v
	}
	switch a := raw["amount"].(type) {
	case string:
		parsed, err := decimal.NewFromString(a)
		if err != nil {
			return nil, apperrors.ValidationErrors{}.Add("amount", apperrors.CodeInclusion)
		}
		req.Amount = parsed
	case float64:
		req.Amount = decimal.NewFromFloat(a)
	case decimal.Decimal:
		req.Amount = a
	}

	return req, nil
}

// LedgerDetailResponse defines the data returned for one posting.
type LedgerDetailResponse struct {
	DetailID     string          `json:"detailID"`
	AccountID    string          `json:"accountID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	State        string          `json:"state"`
}

// LedgerTransactionResponse defines the public view of a ledger transaction.
type LedgerTransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	Operation     string                 `json:"operation"`
	AccountID     string                 `json:"accountID"`
	ToID          string                 `json:"toID"`
	Amount        decimal.Decimal        `json:"amount"`
	Description   string                 `json:"description"`
	Reference     string                 `json:"reference"`
	Date          time.Time              `json:"date"`
	CurrencyCode  string                 `json:"currencyCode"`
	Conciliation  bool                   `json:"conciliation"`
	Status        string                 `json:"status"`
	ApproverID    string                 `json:"approverID,omitempty"`
	CreatorID     string                 `json:"creatorID"`
	CreatedAt     time.Time              `json:"createdAt"`
	Details       []LedgerDetailResponse `json:"details,omitempty"`
}

// ListTransactionsParams holds the paging inputs for transaction listing.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a page of transactions plus the next cursor.
type ListTransactionsResponse struct {
	Transactions []LedgerTransactionResponse `json:"transactions"`
	NextToken    *string                     `json:"nextToken,omitempty"`
}

// ToLedgerDetailResponse converts a domain posting to its response DTO.
func ToLedgerDetailResponse(d *domain.LedgerDetail) LedgerDetailResponse {
	return LedgerDetailResponse{
		DetailID:     d.DetailID,
		AccountID:    d.AccountID,
		Amount:       d.Amount,
		CurrencyCode: d.CurrencyCode,
		State:        string(d.State),
	}
}

// ToLedgerTransactionResponse converts a domain transaction (and its details,
// when loaded) to the public view.
func ToLedgerTransactionResponse(t *domain.LedgerTransaction) LedgerTransactionResponse {
	resp := LedgerTransactionResponse{
		TransactionID: t.TransactionID,
		Operation:     string(t.Operation),
		AccountID:     t.AccountID,
		ToID:          t.ToID,
		Amount:        t.Amount,
		Description:   t.Description,
		Reference:     t.Reference,
		Date:          t.Date,
		CurrencyCode:  t.CurrencyCode,
		Conciliation:  t.Conciliation,
		Status:        string(t.Status),
		ApproverID:    t.ApproverID,
		CreatorID:     t.CreatorID,
		CreatedAt:     t.CreatedAt,
	}
	for i := range t.Details {
		resp.Details = append(resp.Details, ToLedgerDetailResponse(&t.Details[i]))
	}
	return resp
}

// ToLedgerTransactionResponses converts a slice of domain transactions.
func ToLedgerTransactionResponses(ts []domain.LedgerTransaction) []LedgerTransactionResponse {
	responses := make([]LedgerTransactionResponse, len(ts))
	for i := range ts {
		responses[i] = ToLedgerTransactionResponse(&ts[i])
	}
	return responses
}
