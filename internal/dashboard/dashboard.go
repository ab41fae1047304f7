// Package dashboard renders the end-of-run compliance report: an advisor
// executive summary of the activity log followed by fixed metrics.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JaimeStill/docket/internal/advisor"
	"github.com/JaimeStill/docket/internal/audit"
	"github.com/JaimeStill/docket/internal/prompts"
	"github.com/JaimeStill/docket/pkg/formatting"
	"github.com/JaimeStill/docket/pkg/storage"
)

const agent = "Compliance Agent"

const (
	// FallbackSummary replaces the executive summary when the advisor fails.
	FallbackSummary = "AI Summary Failed. Review raw logs for details."

	unreadableLog = "Error: Activity log file could not be read."
	contentType   = "text/markdown; charset=utf-8"
)

// Metrics are the run counters reported in the Key Metrics section.
type Metrics struct {
	DocumentsRenewed     int
	CredentialingGranted int
}

// Journal is the activity log the reporter summarizes and appends to.
type Journal interface {
	audit.Journal
	Text() (string, error)
	Fallbacks() int
}

// Report is a generated dashboard.
type Report struct {
	Content  string
	Location string
}

// Reporter generates and stores the dashboard.
type Reporter struct {
	advisor advisor.Advisor
	prompts prompts.System
	journal Journal
	store   storage.System
	key     string
	date    time.Time
}

// NewReporter creates a reporter that writes to key in store. date is the
// run's reference date shown in the report title.
func NewReporter(a advisor.Advisor, p prompts.System, journal Journal, store storage.System, key string, date time.Time) *Reporter {
	return &Reporter{
		advisor: a,
		prompts: p,
		journal: journal,
		store:   store,
		key:     key,
		date:    date,
	}
}

// Generate summarizes the activity log, renders the report, and writes it,
// replacing any previous report at the same key.
func (r *Reporter) Generate(ctx context.Context, m Metrics) (*Report, error) {
	logText, err := r.journal.Text()
	if err != nil {
		r.journal.Record(agent, "Log Read Error", fmt.Sprintf("Could not read activity log for AI analysis. Error: %v", err))
		logText = unreadableLog
	}

	r.journal.Record(agent, "Dashboard Generation", "Starting metric aggregation and AI analysis...")

	res := r.summarize(ctx, logText)
	if res.Failed() {
		r.journal.Fallback(agent, "AI Summary Error", fmt.Sprintf("Failed to generate AI summary. Error: %v", res.Err))
	}

	content := Render(r.date, res.Value, m, r.journal.Fallbacks())

	if err := r.store.Upload(ctx, r.key, strings.NewReader(content), contentType); err != nil {
		r.journal.Record(agent, "Dashboard Error", fmt.Sprintf("Could not save dashboard. Error: %v", err))
		return nil, fmt.Errorf("store dashboard: %w", err)
	}

	location := r.store.Location(r.key)
	r.journal.Record(agent, "Dashboard Generation", fmt.Sprintf("Dashboard saved to %s.", location))

	return &Report{Content: content, Location: location}, nil
}

// Render produces the dashboard markdown.
func Render(date time.Time, summary string, m Metrics, fallbacks int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Daily Workflow Summary (%s)\n\n", formatting.FormatDate(date))
	sb.WriteString("## Executive Summary (AI Generated)\n")
	sb.WriteString(summary)
	sb.WriteString("\n\n---\n\n## Key Metrics\n")
	fmt.Fprintf(&sb, "**Documents Renewed:** %d\n", m.DocumentsRenewed)
	fmt.Fprintf(&sb, "**C&P Privileges Granted:** %d\n", m.CredentialingGranted)
	fmt.Fprintf(&sb, "**Advisor Fallbacks:** %d\n", fallbacks)
	return sb.String()
}

func (r *Reporter) summarize(ctx context.Context, logText string) advisor.Result[string] {
	prompt, err := r.prompts.Compose(prompts.StageSummary, "ACTIVITY LOG FOR ANALYSIS:\n"+logText)
	if err != nil {
		return advisor.Result[string]{Value: FallbackSummary, Err: err}
	}

	return advisor.Compose(ctx, r.advisor, advisor.Request{
		Stage:  prompts.StageSummary,
		Prompt: prompt,
	}, FallbackSummary)
}
