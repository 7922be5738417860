package domain

import "github.com/shopspring/decimal"

// ReceivableState tracks whether a receivable still has an outstanding balance.
type ReceivableState string

const (
	ReceivableApproved ReceivableState = "approved"
	ReceivablePaid     ReceivableState = "paid"
)

// Receivable is an outstanding amount owed to the organisation, settled through
// batch payment processing. Its identifier doubles as the account-proxy
// referenced by settlement ledger transactions.
type Receivable struct {
	ReceivableID string          `json:"receivableID"`
	Name         string          `json:"name"`      // display name, e.g. "I-0002"
	ContactID    string          `json:"contactID"` // owing counterparty account
	CurrencyCode string          `json:"currencyCode"`
	Total        decimal.Decimal `json:"total"`
	Balance      decimal.Decimal `json:"balance"` // outstanding amount
	State        ReceivableState `json:"state"`
	AuditFields
}

// Outstanding reports whether the receivable still awaits settlement.
func (r *Receivable) Outstanding() bool {
	return r.State == ReceivableApproved && r.Balance.IsPositive()
}
