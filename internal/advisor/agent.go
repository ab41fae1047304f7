package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/docket/pkg/formatting"
)

// Agent is an Advisor backed by a go-agents chat model.
type Agent struct {
	agent   agent.Agent
	timeout time.Duration
	logger  *slog.Logger
}

// NewAgent creates a chat-backed advisor. Each call is bounded by timeout;
// zero means no per-call bound beyond the caller's context.
func NewAgent(cfg *gaconfig.AgentConfig, timeout time.Duration, logger *slog.Logger) (*Agent, error) {
	a, err := agent.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	return &Agent{
		agent:   a,
		timeout: timeout,
		logger:  logger.With("system", "advisor"),
	}, nil
}

// Advise sends the prompt to the chat model. Structured requests have the
// JSON object extracted from the reply; schema validation is left to Decide.
func (a *Agent) Advise(ctx context.Context, req Request) (Response, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := a.agent.Chat(ctx, req.Prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Response{}, fmt.Errorf("%w: %s after %v", ErrTimeout, req.Stage, a.timeout)
		}
		return Response{}, fmt.Errorf("%w: %s: %w", ErrUnavailable, req.Stage, err)
	}

	text := resp.Content()
	a.logger.DebugContext(ctx, "advisor replied",
		"stage", req.Stage,
		"duration", time.Since(start),
		"chars", len(text),
	)

	out := Response{Text: text}
	if req.Schema != nil {
		fields, err := formatting.Parse[map[string]any](text)
		if err != nil {
			return Response{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		out.Fields = fields
	}

	return out, nil
}
