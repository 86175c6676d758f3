package nbox

import "errors"

// Errors for input parsing.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrBasePathRequired  = errors.New("a base path is required for dotenv input")
)

// ErrNotFound is returned when no entry or secret exists at the requested
// key. Store implementations wrap it so errors.Is works across transports.
var ErrNotFound = errors.New("not found")

// ErrCancelled signals that the user declined a confirmation gate. It is a
// clean abort, not a failure; command boundaries exit 0 on it.
var ErrCancelled = errors.New("operation cancelled")
