package client

import (
	"errors"
	"fmt"
)

// APIError represents a non-2xx HTTP response from the backend.
// Fields carries the per-field validation map some endpoints return
// ({"errors": {"cgpa": "..."}}); it is nil for flat {"error": "..."}
// bodies and for unstructured failures.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an APIError with
// the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// FieldErrors extracts the per-field validation map from err, or nil.
func FieldErrors(err error) map[string]string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}

// ErrMissingPrediction marks a success-status response whose prediction
// payload is missing or empty. An empty result set is a failure, never a
// successful "zero results" state.
var ErrMissingPrediction = errors.New("prediction data missing")
