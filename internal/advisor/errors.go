package advisor

import "errors"

var (
	// ErrUnavailable indicates no advisor backend could answer the request.
	ErrUnavailable = errors.New("advisor unavailable")
	// ErrMalformed indicates the advisor response did not satisfy the request schema.
	ErrMalformed = errors.New("advisor response malformed")
	// ErrTimeout indicates the advisor did not answer within the configured timeout.
	ErrTimeout = errors.New("advisor timeout")
)
