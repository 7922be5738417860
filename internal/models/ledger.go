package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerTransaction represents a row of the ledgers table.
type LedgerTransaction struct {
	TransactionID string          `db:"transaction_id"`
	Operation     string          `db:"operation"`
	AccountID     string          `db:"account_id"`
	ToID          string          `db:"to_id"`
	Amount        decimal.Decimal `db:"amount"`
	Description   string          `db:"description"`
	Reference     string          `db:"reference"`
	Date          time.Time       `db:"date"`
	CurrencyCode  string          `db:"currency_code"`
	Conciliation  bool            `db:"conciliation"`
	Status        string          `db:"status"`
	IsMoney       bool            `db:"is_money"`
	ApproverID    *string         `db:"approver_id"` // NULL until conciliated
	CreatorID     string          `db:"creator_id"`
	AuditFields
}

// LedgerDetail represents a row of the ledger_details table.
type LedgerDetail struct {
	DetailID      string          `db:"detail_id"`
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Amount        decimal.Decimal `db:"amount"`
	CurrencyCode  string          `db:"currency_code"`
	State         string          `db:"state"`
	AuditFields
}
