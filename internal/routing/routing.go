// Package routing decides who reviews and who approves a document renewal,
// and who grants credentialing approval.
package routing

import (
	"context"
	"errors"
	"fmt"

	"github.com/JaimeStill/docket/internal/advisor"
	"github.com/JaimeStill/docket/internal/audit"
	"github.com/JaimeStill/docket/internal/prompts"
	"github.com/JaimeStill/docket/internal/staff"
)

const agent = "Routing & Role Agent"

// ErrNoApprover indicates no roster entry holds the credentialing approval role.
var ErrNoApprover = errors.New("no credentialing approver in roster")

var routingSchema = advisor.NewSchema(
	advisor.Field{Name: "reviewer_email", Type: advisor.TypeString},
	advisor.Field{Name: "approver_email", Type: advisor.TypeString},
)

type route struct {
	ReviewerEmail string `json:"reviewer_email"`
	ApproverEmail string `json:"approver_email"`
}

// Decision is the routing outcome for one document.
type Decision struct {
	Reviewer staff.Record
	Approver staff.Record
	// Fallback is true when the advisor failed and both roles went to the
	// fallback identity.
	Fallback bool
}

// Resolver resolves routing decisions against the staff directory.
type Resolver struct {
	directory    *staff.Directory
	advisor      advisor.Advisor
	prompts      prompts.System
	journal      audit.Journal
	approverRole string
}

// NewResolver creates a resolver. approverRole is the approval_role tag
// that identifies the credentialing approver.
func NewResolver(directory *staff.Directory, a advisor.Advisor, p prompts.System, journal audit.Journal, approverRole string) *Resolver {
	return &Resolver{
		directory:    directory,
		advisor:      a,
		prompts:      p,
		journal:      journal,
		approverRole: approverRole,
	}
}

// Resolve asks the advisor for a reviewer and approver for the document.
// Returned emails are resolved through the directory, so unknown addresses
// degrade to the fallback identity. Any advisor failure routes both roles
// to the fallback identity.
func (r *Resolver) Resolve(ctx context.Context, title, ownerRole string) Decision {
	r.journal.Record(agent, "AI Routing Start", fmt.Sprintf("Using LLM for route determination for: %s", title))

	res := r.decide(ctx, title, ownerRole)
	if res.Failed() {
		r.journal.Fallback(agent, "AI Routing ERROR",
			fmt.Sprintf("LLM routing failed. Falling back to default QMR route. Error: %v", res.Err))
		fb := r.directory.Fallback()
		return Decision{Reviewer: fb, Approver: fb, Fallback: true}
	}

	d := Decision{
		Reviewer: r.directory.Lookup(res.Value.ReviewerEmail),
		Approver: r.directory.Lookup(res.Value.ApproverEmail),
	}

	r.journal.Record(agent, "AI Routing Complete",
		fmt.Sprintf("AI Route: Reviewer set to %s | Approver set to %s", d.Reviewer.Name, d.Approver.Name))
	return d
}

// CredentialingApprover returns the first roster entry holding the approver
// role. No advisor is involved.
func (r *Resolver) CredentialingApprover() (staff.Record, error) {
	approver, ok := r.directory.FindByRole(r.approverRole)
	if !ok {
		r.journal.Record(agent, "C&P Approver Error", "No C&P Approver found in HR list.")
		return staff.Record{}, fmt.Errorf("%w: role %q", ErrNoApprover, r.approverRole)
	}

	r.journal.Record(agent, "C&P Approver Found", fmt.Sprintf("Approver set to %s", approver.Name))
	return approver, nil
}

func (r *Resolver) decide(ctx context.Context, title, ownerRole string) advisor.Result[route] {
	body := fmt.Sprintf(
		"DOCUMENT DETAILS:\n- Document Title: %s\n- Document Owner Role: %s\n\nSTAFF LIST:\n%s",
		title, ownerRole, r.directory.Roster(),
	)

	prompt, err := r.prompts.Compose(prompts.StageRouting, body)
	if err != nil {
		return advisor.Result[route]{Err: err}
	}

	return advisor.Decide(ctx, r.advisor, advisor.Request{
		Stage:  prompts.StageRouting,
		Prompt: prompt,
		Schema: routingSchema,
	}, route{})
}
