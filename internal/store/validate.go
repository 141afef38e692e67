package store

import (
	"fmt"
	"strings"
)

// FieldError identifies a single invalid form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors collects every offending field, not just the first.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// requireNonBlank trims value and appends a field error when nothing is
// left. It returns the trimmed value either way.
func requireNonBlank(errs *ValidationErrors, field, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		*errs = append(*errs, FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s cannot be all spaces", field),
		})
	}
	return trimmed
}
