package domain

// Currency represents a supported currency. Postings are tagged with a currency
// code; no conversion arithmetic happens in this subsystem.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	AuditFields
}
