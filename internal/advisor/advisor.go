// Package advisor defines the Decision Advisor contract used by every
// workflow component that needs a natural-language or structured decision.
// Callers never see a raw failure: Decide and Compose return a Result that
// carries either the advisor's answer or the caller-supplied fallback.
package advisor

import (
	"context"

	"github.com/JaimeStill/docket/internal/prompts"
)

// Request is a single advisor call. Schema is nil for free-text requests.
type Request struct {
	Stage  prompts.Stage
	Prompt string
	Schema *Schema
}

// Response carries the raw text and, for structured requests, the decoded
// JSON object.
type Response struct {
	Text   string
	Fields map[string]any
}

// Advisor answers prompts.
type Advisor interface {
	Advise(ctx context.Context, req Request) (Response, error)
}

// Func adapts an ordinary function to the Advisor interface.
type Func func(ctx context.Context, req Request) (Response, error)

// Advise calls f(ctx, req).
func (f Func) Advise(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}

// Unavailable returns an advisor that fails every request with ErrUnavailable.
// It backs runs where the advisor is disabled, so every decision takes its
// documented fallback.
func Unavailable() Advisor {
	return Func(func(context.Context, Request) (Response, error) {
		return Response{}, ErrUnavailable
	})
}
