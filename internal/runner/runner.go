// Package runner composes one complete batch run: logs, data load, the
// selected workflows, and the dashboard.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/docket/internal/advisor"
	"github.com/JaimeStill/docket/internal/audit"
	"github.com/JaimeStill/docket/internal/comms"
	"github.com/JaimeStill/docket/internal/compliance"
	"github.com/JaimeStill/docket/internal/config"
	"github.com/JaimeStill/docket/internal/credentialing"
	"github.com/JaimeStill/docket/internal/dashboard"
	"github.com/JaimeStill/docket/internal/documents"
	"github.com/JaimeStill/docket/internal/expiry"
	"github.com/JaimeStill/docket/internal/infrastructure"
	"github.com/JaimeStill/docket/internal/prompts"
	"github.com/JaimeStill/docket/internal/review"
	"github.com/JaimeStill/docket/internal/routing"
	"github.com/JaimeStill/docket/internal/source"
	"github.com/JaimeStill/docket/internal/staff"
	"github.com/JaimeStill/docket/internal/workflow"
	"github.com/JaimeStill/docket/pkg/formatting"
)

const orchestrator = "Orchestrator"

// Result summarizes a completed run.
type Result struct {
	RunID   uuid.UUID
	Metrics workflow.Metrics
	Report  *dashboard.Report
}

// Runner executes runs against one configuration and infrastructure.
type Runner struct {
	cfg     *config.Config
	infra   *infrastructure.Infrastructure
	advisor advisor.Advisor
	console io.Writer
	clock   audit.Clock
}

// Option configures a Runner.
type Option func(*Runner)

// WithAdvisor replaces the configured advisor.
func WithAdvisor(a advisor.Advisor) Option {
	return func(r *Runner) { r.advisor = a }
}

// WithConsole sets the console echo destination (default stdout).
func WithConsole(w io.Writer) Option {
	return func(r *Runner) { r.console = w }
}

// WithClock sets the audit timestamp source.
func WithClock(c audit.Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// New creates a runner. Without WithAdvisor the advisor is the configured
// go-agents chat model, or an always-failing advisor when disabled.
func New(cfg *config.Config, infra *infrastructure.Infrastructure, opts ...Option) (*Runner, error) {
	r := &Runner{
		cfg:     cfg,
		infra:   infra,
		console: os.Stdout,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.advisor == nil {
		a, err := newAdvisor(cfg, infra.Logger)
		if err != nil {
			return nil, err
		}
		r.advisor = a
	}

	return r, nil
}

func newAdvisor(cfg *config.Config, logger *slog.Logger) (advisor.Advisor, error) {
	if !cfg.Advisor.IsEnabled() {
		logger.Warn("advisor disabled, every decision takes its fallback")
		return advisor.Unavailable(), nil
	}

	a, err := advisor.NewAgent(&cfg.Agent, cfg.Advisor.TimeoutDuration(), logger)
	if err != nil {
		return nil, fmt.Errorf("advisor init failed: %w", err)
	}
	return a, nil
}

// Run executes the selected workflows and generates the dashboard. Errors
// returned before the workflows start are fatal startup errors; once the
// workflows start, the run completes and the dashboard is produced.
func (r *Runner) Run(ctx context.Context, process workflow.Process) (*Result, error) {
	runID := uuid.New()
	logger := r.infra.Logger.With("run_id", runID)
	reference := r.cfg.Workflow.Reference()

	logger.InfoContext(ctx, "run starting",
		"process", process,
		"reference_date", formatting.FormatDate(reference),
		"env", r.cfg.Env(),
	)

	activityFile, err := audit.Create(r.cfg.Logs.ActivityPath())
	if err != nil {
		return nil, err
	}

	commsFile, err := audit.Create(r.cfg.Logs.CommunicationsPath())
	if err != nil {
		activityFile.Close()
		return nil, err
	}

	opts := []audit.Option{audit.WithClock(r.clock), audit.WithLogger(logger)}
	if r.cfg.Logs.ConsoleEnabled() {
		opts = append(opts, audit.WithConsole(audit.NewConsole(r.console)))
	}

	activity := audit.NewActivity(activityFile, reference, opts...)
	sender := audit.NewCommunications(commsFile, reference, activity, audit.WithClock(r.clock), audit.WithLogger(logger))
	defer func() {
		if err := errors.Join(activity.Close(), sender.Close()); err != nil {
			logger.Error("log close failed", "error", err)
		}
	}()

	activity.Record(orchestrator, "System Init",
		fmt.Sprintf("Starting Agentic Workflow on %s.", formatting.FormatDate(reference)))

	data, err := source.Load(ctx, r.tabular(logger), r.cfg.Data.Application, r.cfg.Data.Policy)
	if err != nil {
		activity.Record(orchestrator, "Setup Error", fmt.Sprintf("Data load failed: %v", err))
		return nil, fmt.Errorf("load data: %w", err)
	}

	ps, err := prompts.New(r.cfg.Prompts)
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}

	registry, err := documents.NewRegistry(data.Documents)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}

	activity.Record(orchestrator, "Setup", "All data loaded and logging initialized.")
	logger.InfoContext(ctx, "data loaded",
		"staff", len(data.Staff),
		"documents", registry.Len(),
		"applicant", data.Applicant.Name,
	)

	rt := r.runtime(data, registry, ps, activity, sender, logger)
	var metrics workflow.Metrics

	if process.Documents() {
		renewed, err := workflow.RunLifecycle(ctx, rt)
		if err != nil {
			activity.Record(orchestrator, "Error", fmt.Sprintf("Document lifecycle failed: %v", err))
			logger.ErrorContext(ctx, "document lifecycle failed", "error", err)
		}
		metrics.DocumentsRenewed = renewed
	}

	if process.Credentialing() {
		granted, err := workflow.RunCredentialing(ctx, rt, data.Applicant)
		if err != nil {
			activity.Record(orchestrator, "Error", fmt.Sprintf("Credentialing failed: %v", err))
			logger.ErrorContext(ctx, "credentialing failed", "error", err)
		}
		if granted {
			metrics.CredentialingGranted = 1
		}
	}

	reporter := dashboard.NewReporter(r.advisor, ps, activity, r.infra.Storage, r.cfg.Report.Key, reference)
	report, reportErr := reporter.Generate(ctx, dashboard.Metrics{
		DocumentsRenewed:     metrics.DocumentsRenewed,
		CredentialingGranted: metrics.CredentialingGranted,
	})
	metrics.AdvisorFallbacks = activity.Fallbacks()

	activity.Record(orchestrator, "System Shutdown",
		"All workflows executed and dashboard generated. Review logs and outputs folder.")

	logger.InfoContext(ctx, "run complete",
		"renewed", metrics.DocumentsRenewed,
		"granted", metrics.CredentialingGranted,
		"fallbacks", metrics.AdvisorFallbacks,
		"messages", sender.Sent(),
	)
	if report != nil {
		logger.InfoContext(ctx, "dashboard written",
			"location", report.Location,
			"size", formatting.FormatBytes(int64(len(report.Content)), 1),
		)
	}

	result := &Result{RunID: runID, Metrics: metrics, Report: report}
	if reportErr != nil {
		return result, fmt.Errorf("generate dashboard: %w", reportErr)
	}
	return result, nil
}

func (r *Runner) tabular(logger *slog.Logger) source.Tabular {
	if r.cfg.Data.Driver == config.DriverPostgres && r.infra.Database != nil {
		return &source.Postgres{DB: r.infra.Database.Connection(), Statuses: r.cfg.Data.Statuses}
	}
	return &source.CSV{
		StaffPath:     r.cfg.Data.Staff,
		DocumentsPath: r.cfg.Data.Documents,
		Logger:        logger,
	}
}

func (r *Runner) runtime(
	data *source.Data,
	registry *documents.Registry,
	ps prompts.System,
	activity *audit.Activity,
	sender *audit.Communications,
	logger *slog.Logger,
) *workflow.Runtime {
	wf := r.cfg.Workflow
	directory := staff.NewDirectory(data.Staff, wf.FallbackEmail, activity)

	return &workflow.Runtime{
		Directory: directory,
		Scanner: expiry.NewScanner(registry, directory, r.advisor, ps, activity,
			expiry.EnforceHints(wf.EnforceUrgencyPolicy)),
		Resolver:    routing.NewResolver(directory, r.advisor, ps, activity, wf.ApproverRole),
		Notifier:    comms.NewNotifier(comms.NewDrafter(r.advisor, ps, activity), sender),
		Summarizer:  review.NewSummarizer(r.advisor, ps, activity),
		Compliance:  compliance.NewRecorder(registry, activity),
		Verifier:    credentialing.NewVerifier(r.advisor, ps, data.Policy, activity),
		Journal:     activity,
		Logger:      logger.With("system", "workflow"),
		Reference:   wf.Reference(),
		HorizonDays: wf.Horizon(),
	}
}
