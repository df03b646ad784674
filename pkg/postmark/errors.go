package postmark

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport indicates a network-level failure before a response was
	// received from the API.
	ErrTransport = errors.New("postmark: transport failure")

	// ErrBatchTooLarge indicates a batch exceeding MaxBatchSize messages.
	ErrBatchTooLarge = errors.New("postmark: batch exceeds maximum size")
)

// APIError is a non-200 response from the Postmark API. Message carries the
// provider's human-readable error text; ErrorCode is Postmark's own error
// code, which is unrelated to the HTTP status.
type APIError struct {
	Message    string `json:"Message"`
	ErrorCode  int    `json:"ErrorCode"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("postmark: %s (code %d)", e.Message, e.ErrorCode)
	}
	return fmt.Sprintf("postmark: request failed with status %d", e.StatusCode)
}
