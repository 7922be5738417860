package accounting

import (
	"fmt"

	"github.com/bizrecords/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidatePostings checks the structural invariants of a transaction's posting
// set before it is persisted: at least two entries, a single currency, no zero
// amounts, and a signed sum of zero.
func ValidatePostings(details []domain.LedgerDetail) error {
	if len(details) < 2 {
		return fmt.Errorf("transaction must have at least two posting entries")
	}

	currency := details[0].CurrencyCode
	sum := decimal.Zero

	for _, d := range details {
		if d.Amount.IsZero() {
			return fmt.Errorf("posting amount must be non-zero for detail ID %s", d.DetailID)
		}
		if d.CurrencyCode != currency {
			return fmt.Errorf("posting currency mismatch for detail ID %s: %s != %s", d.DetailID, d.CurrencyCode, currency)
		}
		sum = sum.Add(d.Amount)
	}

	if !sum.Equal(decimal.Zero) {
		return fmt.Errorf("postings do not balance to zero: sum is %s", sum.String())
	}

	return nil
}
