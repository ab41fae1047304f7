// Package comms drafts and sends the simulated notifications of both
// workflows.
package comms

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/docket/internal/advisor"
	"github.com/JaimeStill/docket/internal/audit"
	"github.com/JaimeStill/docket/internal/prompts"
)

const agent = "Communication Agent"

var draftSchema = advisor.NewSchema(
	advisor.Field{Name: "subject", Type: advisor.TypeString},
	advisor.Field{Name: "body", Type: advisor.TypeString},
)

// Message is a drafted subject and body.
type Message struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Drafter writes messages through the advisor, falling back to fixed
// templates.
type Drafter struct {
	advisor advisor.Advisor
	prompts prompts.System
	journal audit.Journal
}

// NewDrafter creates a drafter.
func NewDrafter(a advisor.Advisor, p prompts.System, journal audit.Journal) *Drafter {
	return &Drafter{advisor: a, prompts: p, journal: journal}
}

// Draft writes a message to recipientName about subject, due by dueDate,
// for the action described by actionContext.
func (d *Drafter) Draft(ctx context.Context, recipientName, subject, dueDate, actionContext string) Message {
	fallback := FallbackMessage(recipientName, subject, dueDate, actionContext)

	res := d.decide(ctx, recipientName, subject, dueDate, actionContext, fallback)
	if res.Failed() {
		d.journal.Fallback(agent, "LLM Gen Error",
			fmt.Sprintf("Failed to generate email content. Using fallback template. Error: %v", res.Err))
		return fallback
	}

	if strings.TrimSpace(res.Value.Subject) == "" || strings.TrimSpace(res.Value.Body) == "" {
		d.journal.Fallback(agent, "LLM Gen Error", "Generated email content was empty. Using fallback template.")
		return fallback
	}

	return res.Value
}

// FallbackMessage returns the fixed template for a draft: the expiry
// reminder when actionContext mentions expiry (case-insensitive), otherwise
// the generic review/approval request.
func FallbackMessage(recipientName, subject, dueDate, actionContext string) Message {
	if strings.Contains(strings.ToLower(actionContext), "expiry") {
		return Message{
			Subject: fmt.Sprintf("ACTION REQUIRED: Document '%s' expires on %s", subject, dueDate),
			Body: fmt.Sprintf(
				"Dear %s,\n\nThis is an urgent reminder that your document, '%s', is due to expire on %s. "+
					"Please submit the updated version for review immediately as the system requires your action to renew it.\n\n"+
					"Thank you,\nAI Document Control System",
				recipientName, subject, dueDate,
			),
		}
	}

	return Message{
		Subject: fmt.Sprintf("ACTION: Review/Approval Request for '%s'", subject),
		Body: fmt.Sprintf(
			"Dear %s,\n\nA new submission for '%s' requires your action. "+
				"Please log into the system to complete your review/approval. Thank you.",
			recipientName, subject,
		),
	}
}

func (d *Drafter) decide(ctx context.Context, recipientName, subject, dueDate, actionContext string, fallback Message) advisor.Result[Message] {
	body := fmt.Sprintf(
		"DETAILS:\n- Recipient Name: %s\n- Document Title: %s\n- Due Date: %s\n- Context/Action Required: %s",
		recipientName, subject, dueDate, actionContext,
	)

	prompt, err := d.prompts.Compose(prompts.StageDraft, body)
	if err != nil {
		return advisor.Result[Message]{Value: fallback, Err: err}
	}

	return advisor.Decide(ctx, d.advisor, advisor.Request{
		Stage:  prompts.StageDraft,
		Prompt: prompt,
		Schema: draftSchema,
	}, fallback)
}
