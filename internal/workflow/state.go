package workflow

import (
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/docket/internal/credentialing"
	"github.com/JaimeStill/docket/internal/expiry"
	"github.com/JaimeStill/docket/internal/routing"
	"github.com/JaimeStill/docket/internal/staff"
)

const orchestrator = "Orchestrator"

// State bag keys.
const (
	KeyCandidate = "candidate"
	KeyOwner     = "owner"
	KeyDecision  = "decision"
	KeyApplicant = "applicant"
	KeyResult    = "result"
	KeyGranted   = "granted"
)

// Metrics are the counters one run reports.
type Metrics struct {
	DocumentsRenewed     int
	CredentialingGranted int
	AdvisorFallbacks     int
}

func get[T any](s state.State, key string) (T, error) {
	var zero T
	val, ok := s.Get(key)
	if !ok {
		return zero, fmt.Errorf("missing %s in state", key)
	}

	v, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("%s is not %T", key, zero)
	}

	return v, nil
}

func candidateOf(s state.State) (expiry.Candidate, error) {
	return get[expiry.Candidate](s, KeyCandidate)
}

func ownerOf(s state.State) (staff.Record, error) {
	return get[staff.Record](s, KeyOwner)
}

func decisionOf(s state.State) (routing.Decision, error) {
	return get[routing.Decision](s, KeyDecision)
}

func applicantOf(s state.State) (credentialing.Applicant, error) {
	return get[credentialing.Applicant](s, KeyApplicant)
}

func resultOf(s state.State) (credentialing.Result, error) {
	return get[credentialing.Result](s, KeyResult)
}

func compliant(s state.State) bool {
	r, err := resultOf(s)
	return err == nil && r.Compliant
}
