package credentialing

import (
	"context"
	"fmt"

	"github.com/JaimeStill/docket/internal/advisor"
	"github.com/JaimeStill/docket/internal/audit"
	"github.com/JaimeStill/docket/internal/prompts"
)

const agent = "Credential Verification Agent"

var verifySchema = advisor.NewSchema(
	advisor.Field{Name: "is_compliant", Type: advisor.TypeBool},
	advisor.Field{Name: "missing_docs", Type: advisor.TypeStrings},
	advisor.Field{Name: "policy_justification", Type: advisor.TypeString},
)

type verification struct {
	IsCompliant         bool     `json:"is_compliant"`
	MissingDocs         []string `json:"missing_docs"`
	PolicyJustification string   `json:"policy_justification"`
}

var failClosed = verification{
	IsCompliant:         false,
	MissingDocs:         []string{"AI Policy Check Failed"},
	PolicyJustification: "System error in policy interpretation.",
}

// Verifier asks the advisor whether an application satisfies the policy.
// Any advisor failure fails closed.
type Verifier struct {
	advisor advisor.Advisor
	prompts prompts.System
	policy  Policy
	journal audit.Journal
}

// NewVerifier creates a verifier for policy.
func NewVerifier(a advisor.Advisor, p prompts.System, policy Policy, journal audit.Journal) *Verifier {
	return &Verifier{
		advisor: a,
		prompts: p,
		policy:  policy,
		journal: journal,
	}
}

// Verify checks applicant against the policy. A compliant verdict that
// still lists missing items is treated as non-compliant.
func (v *Verifier) Verify(ctx context.Context, applicant Applicant) Result {
	v.journal.Record(agent, "Check Start", fmt.Sprintf("Verifying C&P application for %s.", applicant.Name))

	res := v.decide(ctx, applicant)
	if res.Failed() {
		v.journal.Fallback(agent, "AI Policy Error",
			fmt.Sprintf("LLM verification failed. Defaulting to NON-COMPLIANT. Error: %v", res.Err))
	}

	out := res.Value
	missing := make([]string, len(out.MissingDocs))
	copy(missing, out.MissingDocs)

	result := Result{
		ApplicantName:  applicant.Name,
		ApplicantEmail: applicant.Email,
		Specialty:      applicant.Specialty,
		Compliant:      out.IsCompliant && len(missing) == 0,
		MissingItems:   missing,
		Justification:  out.PolicyJustification,
	}

	v.journal.Record(agent, "Check Complete", fmt.Sprintf("Application for %s is %s.", applicant.Name, result.Status()))
	return result
}

func (v *Verifier) decide(ctx context.Context, applicant Applicant) advisor.Result[verification] {
	body := fmt.Sprintf("C&P POLICY RULES:\n%s\n\nCONSULTANT APPLICATION DATA:\n%s", v.policy.Text(), applicant.Text())

	prompt, err := v.prompts.Compose(prompts.StageVerify, body)
	if err != nil {
		return advisor.Result[verification]{Value: failClosed, Err: err}
	}

	return advisor.Decide(ctx, v.advisor, advisor.Request{
		Stage:  prompts.StageVerify,
		Prompt: prompt,
		Schema: verifySchema,
	}, failClosed)
}
