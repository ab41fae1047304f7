package workflow

import (
	"context"
	"fmt"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/docket/internal/comms"
	"github.com/JaimeStill/docket/internal/documents"
	"github.com/JaimeStill/docket/internal/expiry"
)

const communicationAgent = "Communication Agent"

// RunLifecycle executes the document control lifecycle for every renewal
// candidate in scan order and returns the number of documents renewed.
// A failure or panic while processing one document is recorded and the
// batch continues. The returned error is non-nil only when the graph
// cannot be built.
func RunLifecycle(ctx context.Context, rt *Runtime) (int, error) {
	rt.Journal.Record(orchestrator, "Start Process A", "Daily execution: Document Control Lifecycle.")

	graph, err := buildLifecycleGraph(rt)
	if err != nil {
		return 0, fmt.Errorf("build lifecycle graph: %w", err)
	}

	renewed := 0
	for _, c := range rt.Scanner.Scan(ctx, rt.HorizonDays, rt.Reference) {
		if c.OwnerEmail == "" {
			rt.Journal.Record(orchestrator, "Error",
				fmt.Sprintf("Skipping %s: Owner email not found in HR list.", c.DocID))
			continue
		}

		if err := renew(ctx, rt, graph, c); err != nil {
			rt.Journal.Record(orchestrator, "Error", fmt.Sprintf("Processing %s failed: %v", c.DocID, err))
			rt.Logger.ErrorContext(ctx, "document lifecycle failed", "doc_id", c.DocID, "error", err)
			continue
		}

		renewed++
		rt.Logger.InfoContext(ctx, "document renewed", "doc_id", c.DocID, "urgency", c.UrgencyLevel)
	}

	rt.Journal.Record(orchestrator, "End Process A", "Document Control lifecycle complete for this run.")
	return renewed, nil
}

func renew(ctx context.Context, rt *Runtime, graph state.StateGraph, c expiry.Candidate) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	owner := rt.Directory.Lookup(c.OwnerEmail)

	initial := state.New(nil)
	initial = initial.Set(KeyCandidate, c)
	initial = initial.Set(KeyOwner, owner)

	_, err = graph.Execute(ctx, initial)
	return err
}

func buildLifecycleGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("docket-lifecycle")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	nodes := []struct {
		name string
		node state.StateNode
	}{
		{"summarize", SummarizeNode(rt)},
		{"notify", NotifyNode(rt)},
		{"route", RouteNode(rt)},
		{"review", ReviewNode(rt)},
		{"acknowledge", AcknowledgeNode(rt)},
		{"finalize", FinalizeNode(rt)},
	}

	for _, n := range nodes {
		if err := graph.AddNode(n.name, n.node); err != nil {
			return nil, err
		}
	}

	for i := 1; i < len(nodes); i++ {
		if err := graph.AddEdge(nodes[i-1].name, nodes[i].name, nil); err != nil {
			return nil, err
		}
	}

	if err := graph.SetEntryPoint(nodes[0].name); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint(nodes[len(nodes)-1].name); err != nil {
		return nil, err
	}

	return graph, nil
}

// SummarizeNode requests the advisory document summary. The summary is
// informational and not carried forward.
func SummarizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		c, err := candidateOf(s)
		if err != nil {
			return s, fmt.Errorf("summarize: %w", err)
		}

		rt.Summarizer.Summarize(ctx, c.DocID, c.Title)
		return s, nil
	})
}

// NotifyNode sends the expiry notice to the owner and simulates the owner
// submitting an updated document.
func NotifyNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		c, err := candidateOf(s)
		if err != nil {
			return s, fmt.Errorf("notify: %w", err)
		}

		owner, err := ownerOf(s)
		if err != nil {
			return s, fmt.Errorf("notify: %w", err)
		}

		rt.Notifier.ExpiryNotice(ctx, c.Document, owner)
		rt.Journal.Record(orchestrator, "HITL Simulation",
			fmt.Sprintf("Awaiting updated document %s from %s. (Simulated: Submitted for Review)", c.DocID, owner.Name))

		return s, nil
	})
}

// RouteNode resolves the reviewer and approver from the owner's position.
func RouteNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		c, err := candidateOf(s)
		if err != nil {
			return s, fmt.Errorf("route: %w", err)
		}

		owner, err := ownerOf(s)
		if err != nil {
			return s, fmt.Errorf("route: %w", err)
		}

		decision := rt.Resolver.Resolve(ctx, c.Title, owner.Position)
		return s.Set(KeyDecision, decision), nil
	})
}

// ReviewNode sends the review request and simulates approval.
func ReviewNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		c, err := candidateOf(s)
		if err != nil {
			return s, fmt.Errorf("review: %w", err)
		}

		owner, err := ownerOf(s)
		if err != nil {
			return s, fmt.Errorf("review: %w", err)
		}

		decision, err := decisionOf(s)
		if err != nil {
			return s, fmt.Errorf("review: %w", err)
		}

		rt.Notifier.ReviewRequest(ctx, c.Title, owner.Name, decision.Reviewer)
		rt.Journal.Record(orchestrator, "HITL Simulation",
			fmt.Sprintf("Awaiting approval from %s for %s. (Simulated: Approved)", decision.Approver.Name, c.DocID))

		return s, nil
	})
}

// AcknowledgeNode sends both owner pings around the simulated owner
// acknowledgment and records it.
func AcknowledgeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		c, err := candidateOf(s)
		if err != nil {
			return s, fmt.Errorf("acknowledge: %w", err)
		}

		owner, err := ownerOf(s)
		if err != nil {
			return s, fmt.Errorf("acknowledge: %w", err)
		}

		rt.Notifier.Acknowledge(owner, c.Title, comms.RequestSent)
		rt.Journal.Record(communicationAgent, "HITL Input",
			fmt.Sprintf("Simulated acknowledgment received from %s for '%s'.", owner.Name, c.Title))
		rt.Notifier.Acknowledge(owner, c.Title, comms.Confirmation)

		rt.Compliance.Acknowledge(c.DocID, owner)
		return s, nil
	})
}

// FinalizeNode stamps the reference date as the review date and marks the
// document renewed.
func FinalizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		c, err := candidateOf(s)
		if err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		if !rt.Compliance.UpdateReviewDate(c.DocID, rt.Reference) {
			return s, fmt.Errorf("finalize: %w: %s", ErrDocumentNotFound, c.DocID)
		}

		if !rt.Compliance.FinalizeStatus(c.DocID, documents.StatusRenewed) {
			return s, fmt.Errorf("finalize: %w: %s", ErrDocumentNotFound, c.DocID)
		}

		return s, nil
	})
}
