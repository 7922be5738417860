package handlers

import (
	"github.com/bizrecords/ledger_backend/internal/apperrors"
	"github.com/bizrecords/ledger_backend/internal/platform/locale"
)

// validationErrorBody renders collected field errors as a field -> messages
// map, resolving each code through the locale catalog.
func validationErrorBody(errs apperrors.ValidationErrors) map[string][]string {
	body := make(map[string][]string, len(errs))
	for _, fe := range errs {
		body[fe.Field] = append(body[fe.Field], locale.Message(fe.Code))
	}
	return body
}
