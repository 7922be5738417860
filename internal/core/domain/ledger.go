package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType names the kind of money movement a ledger transaction records.
type OperationType string

const (
	OperationIn    OperationType = "in"    // deposit
	OperationOut   OperationType = "out"   // withdrawal
	OperationTrans OperationType = "trans" // transfer between money stores
)

// Valid reports whether the operation is one of the known movement kinds.
func (o OperationType) Valid() bool {
	switch o {
	case OperationIn, OperationOut, OperationTrans:
		return true
	}
	return false
}

// DetailState is the reconciliation state of a single posting.
type DetailState string

const (
	DetailUnconciled DetailState = "uncon"
	DetailConciled   DetailState = "con"
)

// LedgerStatus is the externally-managed activity status of a transaction,
// distinct from its conciliation flag. Only active transactions may be
// conciliated.
type LedgerStatus string

const (
	StatusActive LedgerStatus = "act"
	StatusNulled LedgerStatus = "nul"
)

// LedgerDetail is one signed posting row of a balanced transaction. A positive
// amount credits the account, a negative one debits it. Details have no
// lifecycle of their own; they are created with, and frozen with, their parent
// transaction.
type LedgerDetail struct {
	DetailID      string          `json:"detailID"`
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	State         DetailState     `json:"state"`
	AuditFields
}

// LedgerTransaction is the user-facing record of one monetary event between a
// primary account and a counterparty/destination account. A money-movement
// transaction owns exactly two balanced LedgerDetail rows.
type LedgerTransaction struct {
	TransactionID string          `json:"transactionID"`
	Operation     OperationType   `json:"operation"`
	AccountID     string          `json:"accountID"` // primary account
	ToID          string          `json:"toID"`      // counterparty or destination
	Amount        decimal.Decimal `json:"amount"`    // signed after normalization
	Description   string          `json:"description"`
	Reference     string          `json:"reference"`
	Date          time.Time       `json:"date"`
	CurrencyCode  string          `json:"currencyCode"`
	Conciliation  bool            `json:"conciliation"`
	Status        LedgerStatus    `json:"status"`
	IsMoney       bool            `json:"isMoney"` // set once at construction
	ApproverID    string          `json:"approverID"`
	CreatorID     string          `json:"creatorID"`
	AuditFields
	Details []LedgerDetail `json:"details,omitempty"`
}

// Active reports whether the transaction may still be acted upon.
func (t *LedgerTransaction) Active() bool {
	return t.Status == StatusActive
}

// SignedAmount computes the amount of the primary posting from the entered
// magnitude: +amount for "in", -amount for "out" and "trans".
func (t *LedgerTransaction) SignedAmount() decimal.Decimal {
	magnitude := t.Amount.Abs()
	switch t.Operation {
	case OperationOut, OperationTrans:
		return magnitude.Neg()
	default:
		return magnitude
	}
}

// BuildDetails generates the balanced posting pair: the primary account gets
// the operation-signed amount, the destination the negated amount, both tagged
// with the primary account's currency and starting unconciled. Generation runs
// at most once; it is skipped silently when the pair already exists or when any
// of account, destination, or amount is missing (presence validation rejects
// the record in that case).
func (t *LedgerTransaction) BuildDetails(currencyCode string, now time.Time) bool {
	if len(t.Details) > 0 {
		return false
	}
	if t.AccountID == "" || t.ToID == "" || t.Amount.IsZero() {
		return false
	}

	signed := t.SignedAmount()
	audit := NewAuditFields(t.CreatorID, now)
	t.Details = []LedgerDetail{
		{
			TransactionID: t.TransactionID,
			AccountID:     t.AccountID,
			Amount:        signed,
			CurrencyCode:  currencyCode,
			State:         DetailUnconciled,
			AuditFields:   audit,
		},
		{
			TransactionID: t.TransactionID,
			AccountID:     t.ToID,
			Amount:        signed.Neg(),
			CurrencyCode:  currencyCode,
			State:         DetailUnconciled,
			AuditFields:   audit,
		},
	}
	t.CurrencyCode = currencyCode
	return true
}

// NormalizeAmount stores the transaction's own amount with the operation sign:
// the entered magnitude for "in", its negation for "out" and "trans". Safe to
// call more than once.
func (t *LedgerTransaction) NormalizeAmount() {
	switch t.Operation {
	case OperationOut, OperationTrans:
		t.Amount = t.Amount.Abs().Neg()
	default:
		t.Amount = t.Amount.Abs()
	}
}

// DetailsBalance sums the signed posting amounts. Zero for every valid
// money-movement transaction.
func (t *LedgerTransaction) DetailsBalance() decimal.Decimal {
	sum := decimal.Zero
	for _, d := range t.Details {
		sum = sum.Add(d.Amount)
	}
	return sum
}

// Conciliate marks the transaction and all its postings as confirmed and stamps
// the approving user. It reports false, changing nothing, when the transaction
// is not active or is already conciliated.
func (t *LedgerTransaction) Conciliate(approverID string, now time.Time) bool {
	if !t.Active() || t.Conciliation {
		return false
	}
	for i := range t.Details {
		t.Details[i].State = DetailConciled
		t.Details[i].Touch(approverID, now)
	}
	t.Conciliation = true
	t.ApproverID = approverID
	t.Touch(approverID, now)
	return true
}
