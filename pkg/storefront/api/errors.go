package api

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError wraps a failure to reach the backend at all: DNS, dial,
// TLS, or a dropped connection mid-response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that did not match the expected shape:
// malformed JSON, a non-numeric price string, or a missing required field.
// The client never papers over these with zero values.
type DecodeError struct {
	Resource string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Resource, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// APIError is a non-2xx response from the backend, carrying the message the
// server put in the body (or a generic fallback when the body had none).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// IsAuth reports an authentication or authorization failure.
func (e *APIError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsValidation reports a request the server rejected as malformed or
// semantically invalid.
func (e *APIError) IsValidation() bool {
	return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
}

// AsAPIError extracts an *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
