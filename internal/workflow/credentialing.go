package workflow

import (
	"context"
	"fmt"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/docket/internal/credentialing"
)

// RunCredentialing executes the credentialing workflow for one applicant
// and reports whether privileges were granted. The outcome is either granted
// or pending documents.
func RunCredentialing(ctx context.Context, rt *Runtime, applicant credentialing.Applicant) (bool, error) {
	rt.Journal.Record(orchestrator, "Start Process B",
		fmt.Sprintf("New C&P application received (Dr. %s).", applicant.Name))

	graph, err := buildCredentialingGraph(rt)
	if err != nil {
		return false, fmt.Errorf("build credentialing graph: %w", err)
	}

	initial := state.New(nil)
	initial = initial.Set(KeyApplicant, applicant)

	final, err := graph.Execute(ctx, initial)
	if err != nil {
		return false, fmt.Errorf("execute credentialing graph: %w", err)
	}

	granted, err := get[bool](final, KeyGranted)
	if err != nil {
		return false, err
	}

	return granted, nil
}

// verify → grant (compliant) | reject (not compliant) → conclude
func buildCredentialingGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("docket-credentialing")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("verify", VerifyNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("grant", GrantNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("reject", RejectNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("conclude", ConcludeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("verify", "grant", compliant); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("verify", "reject", state.Not(compliant)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("grant", "conclude", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("reject", "conclude", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("verify"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("conclude"); err != nil {
		return nil, err
	}

	return graph, nil
}

// VerifyNode checks the application against policy.
func VerifyNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		applicant, err := applicantOf(s)
		if err != nil {
			return s, fmt.Errorf("verify: %w", err)
		}

		result := rt.Verifier.Verify(ctx, applicant)
		s = s.Set(KeyResult, result)
		s = s.Set(KeyGranted, false)
		return s, nil
	})
}

// GrantNode requests final approval from the credentialing approver and
// records the granted privileges.
func GrantNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		result, err := resultOf(s)
		if err != nil {
			return s, fmt.Errorf("grant: %w", err)
		}

		approver, err := rt.Resolver.CredentialingApprover()
		if err != nil {
			return s, fmt.Errorf("grant: %w", err)
		}

		rt.Notifier.ApprovalRequest(ctx, result.ApplicantName, result.Specialty, approver)
		rt.Journal.Record(orchestrator, "HITL Simulation",
			fmt.Sprintf("Awaiting final C&P approval from %s for %s.", approver.Name, result.ApplicantName))

		rt.Compliance.GrantPrivileges(result.ApplicantName, result.Specialty)
		return s.Set(KeyGranted, true), nil
	})
}

// RejectNode tells the applicant which documents are missing.
func RejectNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		result, err := resultOf(s)
		if err != nil {
			return s, fmt.Errorf("reject: %w", err)
		}

		rt.Notifier.Rejection(result)
		rt.Journal.Record(orchestrator, "State Update",
			fmt.Sprintf("Application PENDING DOCS for %s.", result.ApplicantName))

		return s, nil
	})
}

// ConcludeNode logs the credentialing outcome.
func ConcludeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		result, err := resultOf(s)
		if err != nil {
			return s, fmt.Errorf("conclude: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "credentialing complete",
			"applicant", result.ApplicantName,
			"status", result.Status(),
			"missing", len(result.MissingItems),
		)

		return s, nil
	})
}
