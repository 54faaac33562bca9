package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError turns validator errors into one readable line, e.g.
// "Field 'amount' is required; Field 'account' must be an Ethereum address"
func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, formatFieldError(fieldErr))
	}
	return strings.Join(messages, "; ")
}

func formatFieldError(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("Field '%s' is required", field)
	case "eth_addr":
		return fmt.Sprintf("Field '%s' must be an Ethereum address", field)
	default:
		return fmt.Sprintf("Field '%s' failed on '%s'", field, fieldErr.Tag())
	}
}
