package locale

import (
	"fmt"

	"github.com/bizrecords/ledger_backend/internal/apperrors"
)

// messages maps validation error codes to human-readable text. The code set is
// the stable contract; the text here is the default English catalog and can be
// swapped per deployment.
var messages = map[string]string{
	apperrors.CodeInclusion:    "is not included in the list",
	apperrors.CodeBlank:        "can't be blank",
	apperrors.CodeUnknownField: "is not an accepted field",
	apperrors.CodeInvalidDate:  "is not a valid date",
}

// Message returns the text for a validation error code. Unknown codes fall back
// to the code itself so nothing is ever silently dropped.
func Message(code string) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return code
}

// Description returns the derived description for a money movement, phrased per
// operation and counterparty display name.
func Description(operation string, counterparty string) string {
	switch operation {
	case "in":
		return fmt.Sprintf("Deposit from %s", counterparty)
	case "out":
		return fmt.Sprintf("Withdrawal to %s", counterparty)
	case "trans":
		return fmt.Sprintf("Transfer to %s", counterparty)
	}
	return ""
}

// ReceivableReference returns the reference stamped on ledger transactions
// created by batch settlement of a receivable.
func ReceivableReference(name string) string {
	return fmt.Sprintf("Receivable payment %s", name)
}
