package models

// AccountableType mirrors domain.AccountableType at the storage layer.
type AccountableType string

// Account represents a row of the accounts table.
type Account struct {
	AccountID       string          `db:"account_id"`
	Name            string          `db:"name"`
	AccountableType AccountableType `db:"accountable_type"`
	CurrencyCode    string          `db:"currency_code"`
	Description     string          `db:"description"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}
