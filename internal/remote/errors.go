package remote

import (
	"errors"
	"fmt"
)

// Error represents a failure response from the remote service.
// Code carries the service's numeric status so callers can categorize
// failures (duplicate account, rate limit, misconfiguration).
type Error struct {
	Code    int    `json:"code"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("remote service error %d: %s", e.Code, e.Message)
}

// AsError extracts a *Error from an error chain
func AsError(err error) (*Error, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// ErrorCode returns the remote status code from an error chain, or 0
// when the error did not originate from the remote service
func ErrorCode(err error) int {
	if svcErr, ok := AsError(err); ok {
		return svcErr.Code
	}
	return 0
}
