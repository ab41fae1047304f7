package dashboard_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/docket/internal/advisor"
	"github.com/JaimeStill/docket/internal/audit"
	"github.com/JaimeStill/docket/internal/dashboard"
	"github.com/JaimeStill/docket/internal/prompts"
	"github.com/JaimeStill/docket/pkg/lifecycle"
	"github.com/JaimeStill/docket/pkg/storage"
)

var (
	reference = time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC)
	clock     = func() time.Time { return time.Date(2025, 10, 30, 8, 0, 0, 0, time.UTC) }
)

func newStore(t *testing.T) storage.System {
	t.Helper()
	cfg := storage.Config{Root: t.TempDir()}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}
	store, err := storage.New(&cfg, slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	lc := lifecycle.New(context.Background())
	if err := store.Start(lc); err != nil {
		t.Fatal(err)
	}
	if err := lc.WaitForStartup(); err != nil {
		t.Fatal(err)
	}
	return store
}

func generate(t *testing.T, store storage.System, a advisor.Advisor, m dashboard.Metrics) *dashboard.Report {
	t.Helper()
	journal := audit.NewActivity(&bytes.Buffer{}, reference, audit.WithClock(clock))
	journal.Record("Orchestrator", "Start Process A", "Daily execution: Document Control Lifecycle.")

	p, _ := prompts.New(nil)
	r := dashboard.NewReporter(a, p, journal, store, "compliance_dashboard.md", reference)

	report, err := r.Generate(context.Background(), m)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return report
}

func TestGenerateWithSummary(t *testing.T) {
	store := newStore(t)
	var prompt string
	a := advisor.Func(func(_ context.Context, req advisor.Request) (advisor.Response, error) {
		prompt = req.Prompt
		return advisor.Response{Text: "One document renewed.\n\nC&P pending.\n\nNo fallbacks."}, nil
	})

	report := generate(t, store, a, dashboard.Metrics{DocumentsRenewed: 1})

	want := "# Daily Workflow Summary (2025-10-30)\n\n" +
		"## Executive Summary (AI Generated)\n" +
		"One document renewed.\n\nC&P pending.\n\nNo fallbacks." +
		"\n\n---\n\n## Key Metrics\n" +
		"**Documents Renewed:** 1\n" +
		"**C&P Privileges Granted:** 0\n" +
		"**Advisor Fallbacks:** 0\n"
	if report.Content != want {
		t.Errorf("report =\n%s\nwant\n%s", report.Content, want)
	}

	if !strings.Contains(prompt, "[Orchestrator] Start Process A") {
		t.Error("summary prompt should carry the activity log")
	}

	rc, err := store.Download(context.Background(), "compliance_dashboard.md")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer rc.Close()
	stored, _ := io.ReadAll(rc)
	if string(stored) != report.Content {
		t.Error("stored report differs from returned content")
	}
}

func TestGenerateFallback(t *testing.T) {
	report := generate(t, newStore(t), advisor.Unavailable(), dashboard.Metrics{})

	if !strings.Contains(report.Content, dashboard.FallbackSummary) {
		t.Errorf("report missing fallback summary:\n%s", report.Content)
	}
	if !strings.Contains(report.Content, "**Advisor Fallbacks:** 1\n") {
		t.Errorf("summary fallback should be counted:\n%s", report.Content)
	}
}

func TestGenerateIdempotent(t *testing.T) {
	a := advisor.Func(func(context.Context, advisor.Request) (advisor.Response, error) {
		return advisor.Response{Text: "Stable summary."}, nil
	})
	m := dashboard.Metrics{DocumentsRenewed: 2, CredentialingGranted: 1}

	first := generate(t, newStore(t), a, m)
	second := generate(t, newStore(t), a, m)

	if first.Content != second.Content {
		t.Errorf("reports differ:\n%s\n---\n%s", first.Content, second.Content)
	}
}
