package clientcli

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// Errors for configuration validation.
var (
	ErrConfigRequired = errors.New("config is required")
	ErrNoURL          = errors.New("no nbox URL configured, run 'nbox config' first")
	ErrNoToken        = errors.New("no authentication token found, run 'nbox login' first")
)

// APIError represents an error response from the server. The body is kept
// verbatim so callers see exactly what the server said.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return "request failed with status " + strconv.Itoa(e.StatusCode) + ": " + e.Body
}

// Is reports whether target matches this error.
// It matches if target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrUnauthorized is returned when the server rejects the token (401).
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized}

	// ErrForbidden is returned when the request is not permitted (403).
	ErrForbidden = &APIError{StatusCode: http.StatusForbidden}
)

// IsTokenExpired reports whether err is a 401 response whose body signals
// an expired token. Command boundaries use it to print the re-login
// remediation instead of the raw transport error.
func IsTokenExpired(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized &&
		strings.Contains(strings.ToLower(apiErr.Body), "expired")
}
