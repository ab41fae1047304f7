package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Result is the outcome of one advisor call. Value always holds a usable
// answer; Err is non-nil when Value is the caller's fallback.
type Result[T any] struct {
	Value T
	Err   error
}

// Failed reports whether the fallback was used.
func (r Result[T]) Failed() bool {
	return r.Err != nil
}

// Decide requests a structured decision and decodes it into T. Any advisor
// error, schema violation, or decode failure yields fallback.
func Decide[T any](ctx context.Context, a Advisor, req Request, fallback T) Result[T] {
	resp, err := a.Advise(ctx, req)
	if err != nil {
		return Result[T]{Value: fallback, Err: err}
	}

	if req.Schema != nil {
		if err := req.Schema.Validate(resp.Fields); err != nil {
			return Result[T]{Value: fallback, Err: err}
		}
	}

	data, err := json.Marshal(resp.Fields)
	if err != nil {
		return Result[T]{Value: fallback, Err: fmt.Errorf("%w: %w", ErrMalformed, err)}
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return Result[T]{Value: fallback, Err: fmt.Errorf("%w: %w", ErrMalformed, err)}
	}

	return Result[T]{Value: value}
}

// Compose requests free text. An error or blank response yields fallback.
func Compose(ctx context.Context, a Advisor, req Request, fallback string) Result[string] {
	resp, err := a.Advise(ctx, req)
	if err != nil {
		return Result[string]{Value: fallback, Err: err}
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return Result[string]{Value: fallback, Err: fmt.Errorf("%w: empty response", ErrMalformed)}
	}

	return Result[string]{Value: text}
}
