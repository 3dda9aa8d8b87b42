package domain

import (
	"fmt"
	"strings"
)

// CustomerDetails is customer input scoped to one invoice-generation attempt.
// Name, Email and Phone are required; the address fields are optional.
type CustomerDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

// ValidationError reports a missing required customer field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field %q is missing", e.Field)
}

// Validate checks the required fields. Whitespace-only values count as missing.
func (c CustomerDetails) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name"}
	}
	if strings.TrimSpace(c.Email) == "" {
		return &ValidationError{Field: "email"}
	}
	if strings.TrimSpace(c.Phone) == "" {
		return &ValidationError{Field: "phone"}
	}
	return nil
}
