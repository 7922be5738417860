package domain

// AccountableType is the capability tag of an account. It decides which side of
// a money movement the account may take.
type AccountableType string

const (
	// MoneyStore marks cash and bank accounts, the only accounts eligible as
	// the primary side of a money movement (and as destination of a transfer).
	MoneyStore AccountableType = "MoneyStore"
	// Contact marks counterparty accounts (customers/vendors), eligible as the
	// destination of deposits and withdrawals.
	Contact AccountableType = "Contact"
	// ReceivableProxy marks accounts standing in for receivable records during
	// batch settlement.
	ReceivableProxy AccountableType = "Receivable"
)

// Account identifies a financial participant in the ledger.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary Key (e.g., UUID)
	Name            string          `json:"name"`            // Display label, used in derived descriptions
	AccountableType AccountableType `json:"accountableType"` // Capability tag for eligibility checks
	CurrencyCode    string          `json:"currencyCode"`    // FK -> currencies.code (NON-NULL)
	Description     string          `json:"description"`     // Nullable user description
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// IsMoneyStore reports whether the account may hold the primary side of a money
// movement.
func (a *Account) IsMoneyStore() bool {
	return a.AccountableType == MoneyStore
}
