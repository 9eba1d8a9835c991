package model

import (
	"encoding/json"
	"fmt"
)

// APIError is the error body returned by the civic-issue backend.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Code    string `json:"error,omitempty"`
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
	return e.Message
}

// ParseAPIError extracts the server message from an error response body.
// It returns nil when the body carries no message.
func ParseAPIError(status int, body []byte) *APIError {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Message == "" {
		return nil
	}
	apiErr.Status = status
	return &apiErr
}

// FieldError describes a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationError is returned when a request cannot be built from user input.
type ValidationError struct {
	Op      string
	Details []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 1 {
		return fmt.Sprintf("%s: %s %s", e.Op, e.Details[0].Field, e.Details[0].Message)
	}
	return fmt.Sprintf("%s: %d invalid fields", e.Op, len(e.Details))
}

// Required builds a ValidationError for missing fields.
func Required(op string, fields ...string) *ValidationError {
	details := make([]FieldError, len(fields))
	for i, f := range fields {
		details[i] = FieldError{Field: f, Message: "is required"}
	}
	return &ValidationError{Op: op, Details: details}
}
