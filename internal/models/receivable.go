package models

import "github.com/shopspring/decimal"

// Receivable represents a row of the receivables table.
type Receivable struct {
	ReceivableID string          `db:"receivable_id"`
	Name         string          `db:"name"`
	ContactID    string          `db:"contact_id"`
	CurrencyCode string          `db:"currency_code"`
	Total        decimal.Decimal `db:"total"`
	Balance      decimal.Decimal `db:"balance"`
	State        string          `db:"state"`
	AuditFields
}
