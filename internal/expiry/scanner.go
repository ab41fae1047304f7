// Package expiry selects documents approaching expiry and asks the advisor
// how urgently each needs renewal.
package expiry

import (
	"context"
	"fmt"
	"time"

	"github.com/JaimeStill/docket/internal/advisor"
	"github.com/JaimeStill/docket/internal/audit"
	"github.com/JaimeStill/docket/internal/documents"
	"github.com/JaimeStill/docket/internal/prompts"
	"github.com/JaimeStill/docket/internal/staff"
	"github.com/JaimeStill/docket/pkg/formatting"
)

const agent = "Document Expiry Agent"

var urgencySchema = advisor.NewSchema(
	advisor.Field{
		Name: "urgency_level",
		Type: advisor.TypeEnum,
		Enum: []string{string(UrgencyLow), string(UrgencyMedium), string(UrgencyHigh)},
	},
	advisor.Field{Name: "recommended_action", Type: advisor.TypeString},
)

type recommendation struct {
	UrgencyLevel      Urgency `json:"urgency_level"`
	RecommendedAction string  `json:"recommended_action"`
}

var defaultRecommendation = recommendation{
	UrgencyLevel:      UrgencyMedium,
	RecommendedAction: "send_email",
}

// Candidate is a document selected for renewal with its urgency decision.
type Candidate struct {
	documents.Document
	DaysUntilExpiry   int
	UrgencyLevel      Urgency
	RecommendedAction string
	// Fallback is true when the advisor failed and the default was used.
	Fallback bool
}

// Scanner selects renewal candidates from the registry.
type Scanner struct {
	registry  *documents.Registry
	directory *staff.Directory
	advisor   advisor.Advisor
	prompts   prompts.System
	journal   audit.Journal
	enforce   bool
}

// Option configures a Scanner.
type Option func(*Scanner)

// EnforceHints raises every advisor decision to at least the guideline hint.
func EnforceHints(enforce bool) Option {
	return func(s *Scanner) { s.enforce = enforce }
}

// NewScanner creates a scanner over registry.
func NewScanner(
	registry *documents.Registry,
	directory *staff.Directory,
	a advisor.Advisor,
	p prompts.System,
	journal audit.Journal,
	opts ...Option,
) *Scanner {
	s := &Scanner{
		registry:  registry,
		directory: directory,
		advisor:   a,
		prompts:   p,
		journal:   journal,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan returns every Active document expiring on or before
// reference + horizonDays, in registry order, each with an urgency decision.
// An advisor failure for one document falls back to Medium / send_email and
// the scan continues.
func (s *Scanner) Scan(ctx context.Context, horizonDays int, reference time.Time) []Candidate {
	s.journal.Record(agent, "Check Start", "Analyzing documents for upcoming expiries.")

	reference = formatting.Day(reference)
	cutoff := reference.AddDate(0, 0, horizonDays)

	expiring := s.registry.Expiring(cutoff)
	candidates := make([]Candidate, 0, len(expiring))

	for _, doc := range expiring {
		if err := ctx.Err(); err != nil {
			s.journal.Record(agent, "Check Aborted", fmt.Sprintf("Scan cancelled: %v", err))
			break
		}
		candidates = append(candidates, s.assess(ctx, doc, reference))
	}

	s.journal.Record(agent, "Found Documents", fmt.Sprintf("Found %d documents for action.", len(candidates)))
	return candidates
}

func (s *Scanner) assess(ctx context.Context, doc documents.Document, reference time.Time) Candidate {
	// Documents without an owner are skipped downstream; only the position
	// is needed here, so the miss is not logged.
	owner := s.directory.Fallback()
	if doc.OwnerEmail != "" {
		owner = s.directory.Lookup(doc.OwnerEmail)
	}
	days := formatting.DaysBetween(reference, doc.ExpiryDate)

	res := s.decide(ctx, doc, owner.Position, days, reference)
	if res.Failed() {
		s.journal.Fallback(agent, "AI Decision Error",
			fmt.Sprintf("LLM failed for %s. Defaulting to Medium urgency. Error: %v", doc.DocID, res.Err))
	}

	urgency := res.Value.UrgencyLevel
	if s.enforce {
		urgency = Raise(urgency, Hint(doc.Type, owner.Position, days))
	}

	return Candidate{
		Document:          doc,
		DaysUntilExpiry:   days,
		UrgencyLevel:      urgency,
		RecommendedAction: res.Value.RecommendedAction,
		Fallback:          res.Failed(),
	}
}

func (s *Scanner) decide(ctx context.Context, doc documents.Document, position string, days int, reference time.Time) advisor.Result[recommendation] {
	body := fmt.Sprintf(
		"DOCUMENT DETAILS:\n- Title: %s\n- Type: %s\n- Status: %s\n- Days until expiry: %d\n- Owner Position: %s\n\nCurrent date: %s",
		doc.Title, doc.Type, doc.Status, days, position, formatting.FormatDate(reference),
	)

	prompt, err := s.prompts.Compose(prompts.StageUrgency, body)
	if err != nil {
		return advisor.Result[recommendation]{Value: defaultRecommendation, Err: err}
	}

	return advisor.Decide(ctx, s.advisor, advisor.Request{
		Stage:  prompts.StageUrgency,
		Prompt: prompt,
		Schema: urgencySchema,
	}, defaultRecommendation)
}
