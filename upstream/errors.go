package upstream

import (
	"errors"
	"fmt"
)

// APIError is a non-2xx backend response. The body fields are optional; the
// backend sometimes reports failure through "message", sometimes through
// "error" with status "error".
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	ErrField   string `json:"error"`
	Status     string `json:"status"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream: %d: %s", e.StatusCode, e.Message)
	}
	if e.ErrField != "" {
		return fmt.Sprintf("upstream: %d: %s", e.StatusCode, e.ErrField)
	}
	return fmt.Sprintf("upstream: status %d", e.StatusCode)
}

// Normalize converts any error from a Client call into the message shown to
// the operator. Structured backend errors surface their own message; anything
// else (connection failure, malformed body) falls back to a generic notice.
func Normalize(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == "error" {
			if apiErr.ErrField != "" {
				return apiErr.ErrField
			}
			if apiErr.Message != "" {
				return apiErr.Message
			}
			return "An unexpected error occurred."
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "An unexpected error occurred."
	}
	return "Network error. Please try again."
}
