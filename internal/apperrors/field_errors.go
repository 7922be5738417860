package apperrors

import (
	"fmt"
	"strings"
)

// Stable validation error codes. Message text for a code comes from the locale
// catalog; callers and tests should match on the code, never on the text.
const (
	CodeInclusion    = "inclusion"     // value resolved to an ineligible resource
	CodeBlank        = "blank"         // required field missing
	CodeUnknownField = "unknown_field" // field outside the creation whitelist
	CodeInvalidDate  = "invalid_date"  // date input could not be parsed
)

// FieldError attaches a validation error code to a single input field.
type FieldError struct {
	Field string
	Code  string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Code)
}

// ValidationErrors collects every field-level failure found before any write is
// attempted. It matches ErrValidation via errors.Is.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Add appends a field error and returns the updated collection.
func (v ValidationErrors) Add(field, code string) ValidationErrors {
	return append(v, FieldError{Field: field, Code: code})
}

// ForField reports whether the collection holds an error for the given field,
// and with which code.
func (v ValidationErrors) ForField(field string) (string, bool) {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Code, true
		}
	}
	return "", false
}

// OrNil returns nil when no field errors were collected, so callers can write
// `return errs.OrNil()` at the end of a validation pass.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
