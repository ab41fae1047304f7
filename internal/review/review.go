// Package review produces the advisory pre-review note for a document
// entering renewal. The note is informational; no later step consumes it.
package review

import (
	"context"
	"fmt"

	"github.com/JaimeStill/docket/internal/advisor"
	"github.com/JaimeStill/docket/internal/audit"
	"github.com/JaimeStill/docket/internal/prompts"
)

const agent = "AI Review Agent"

// FallbackSummary replaces the note when the advisor fails.
const FallbackSummary = "System error: Failed to retrieve AI summary. Manual review required."

// Summarizer drafts pre-review notes.
type Summarizer struct {
	advisor advisor.Advisor
	prompts prompts.System
	journal audit.Journal
}

// NewSummarizer creates a summarizer.
func NewSummarizer(a advisor.Advisor, p prompts.System, journal audit.Journal) *Summarizer {
	return &Summarizer{advisor: a, prompts: p, journal: journal}
}

// Summarize returns suggested amendments for the document, or
// FallbackSummary.
func (s *Summarizer) Summarize(ctx context.Context, docID, title string) string {
	s.journal.Record(agent, "Start Analysis", fmt.Sprintf("Generating LLM summary for %s: %s", docID, title))

	res := s.compose(ctx, title)
	if res.Failed() {
		s.journal.Fallback(agent, "API Error", fmt.Sprintf("LLM call failed for %s. Error: %v", docID, res.Err))
		return res.Value
	}

	s.journal.Record(agent, "Analysis Complete", fmt.Sprintf("Generated LLM summary for %s.", docID))
	return res.Value
}

func (s *Summarizer) compose(ctx context.Context, title string) advisor.Result[string] {
	prompt, err := s.prompts.Compose(prompts.StageReview, fmt.Sprintf("Document title: %q", title))
	if err != nil {
		return advisor.Result[string]{Value: FallbackSummary, Err: err}
	}

	return advisor.Compose(ctx, s.advisor, advisor.Request{
		Stage:  prompts.StageReview,
		Prompt: prompt,
	}, FallbackSummary)
}
