// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}

// StockError carries the shortfall breakdown for 409 responses so tills and
// kitchen screens can show required vs. available to the operator.
type StockError struct {
	Detail    string `json:"detail"`
	Name      string `json:"name"`
	Required  string `json:"required"`
	Available string `json:"available"`
	Expired   string `json:"expired,omitempty"`
}
