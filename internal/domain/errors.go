package domain

import "fmt"

// ValidationError reports a missing or malformed argument. It is always
// recoverable: the caller fixes the input and retries.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Message
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// Required returns a ValidationError for an empty required field.
func Required(field string) error {
	return &ValidationError{Field: field, Message: "is required"}
}
