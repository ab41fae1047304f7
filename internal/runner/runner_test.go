package runner_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/docket/internal/advisor"
	"github.com/JaimeStill/docket/internal/config"
	"github.com/JaimeStill/docket/internal/infrastructure"
	"github.com/JaimeStill/docket/internal/runner"
	"github.com/JaimeStill/docket/internal/workflow"
)

const staffCSV = `email,name,position,department,approval_role
qmr@phmk.my,Puan Aminah,QMR,Quality,
lim@phmk.my,Ms. Lim,Nurse Manager,Nursing,
chief@phmk.my,Dr. Rahman,Chief of Medical Staff,Medical,Approver
`

const documentsCSV = `doc_id,title,type,status,owner_email,expiry_date,review_date
D001,Hand Hygiene Policy,Policy,Active,lim@phmk.my,2025-11-15,2024-11-15
D002,Sterilization WI,WI,Active,lim@phmk.my,2026-06-01,2025-06-01
`

const applicationJSON = `{
  "name": "Alice Tan",
  "email": "alice.tan@example.com",
  "specialty": "Cardiology",
  "documents_submitted": ["Medical Degree", "APC"]
}`

const policyJSON = `{
  "required_documents": ["Medical Degree", "APC", "Board Certification"]
}`

func clock() time.Time {
	return time.Date(2025, 10, 30, 8, 0, 0, 0, time.UTC)
}

type env struct {
	dir string
	cfg *config.Config
}

func setup(t *testing.T, staff string) *env {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	staffPath := filepath.Join(dir, "hr_ipsg_list.csv")
	if staff != "" {
		staffPath = write("hr_ipsg_list.csv", staff)
	}

	cfgPath := write("config.toml", fmt.Sprintf(`
[data]
staff = %q
documents = %q
application = %q
policy = %q

[logs]
dir = %q
console = false

[storage]
root = %q

[advisor]
enabled = false
`,
		staffPath,
		write("documents.csv", documentsCSV),
		write("consultant_application.json", applicationJSON),
		write("policy_rules.json", policyJSON),
		filepath.Join(dir, "logs"),
		filepath.Join(dir, "outputs"),
	))

	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return &env{dir: dir, cfg: cfg}
}

func (e *env) run(t *testing.T, a advisor.Advisor, process workflow.Process) (*runner.Result, error) {
	t.Helper()
	infra, err := infrastructure.NewWithWriter(context.Background(), e.cfg, io.Discard)
	if err != nil {
		t.Fatalf("infrastructure: %v", err)
	}
	if err := infra.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { infra.Lifecycle.Shutdown(time.Second) })

	r, err := runner.New(e.cfg, infra, runner.WithAdvisor(a), runner.WithClock(clock), runner.WithConsole(io.Discard))
	if err != nil {
		t.Fatalf("runner.New: %v", err)
	}
	return r.Run(context.Background(), process)
}

func (e *env) read(t *testing.T, parts ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(append([]string{e.dir}, parts...)...))
	if err != nil {
		t.Fatalf("read %v: %v", parts, err)
	}
	return string(data)
}

func TestRunAdvisorAlwaysFails(t *testing.T) {
	e := setup(t, staffCSV)

	result, err := e.run(t, advisor.Unavailable(), workflow.ProcessAll)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Metrics.DocumentsRenewed != 1 {
		t.Errorf("renewed = %d, want 1", result.Metrics.DocumentsRenewed)
	}
	if result.Metrics.CredentialingGranted != 0 {
		t.Errorf("granted = %d, want 0", result.Metrics.CredentialingGranted)
	}
	if result.Metrics.AdvisorFallbacks == 0 {
		t.Error("fallbacks should be observed")
	}

	report := e.read(t, "outputs", "compliance_dashboard.md")
	if report != result.Report.Content {
		t.Error("stored report differs from result")
	}
	for _, want := range []string{
		"# Daily Workflow Summary (2025-10-30)",
		"AI Summary Failed",
		"**Documents Renewed:** 1",
		"**C&P Privileges Granted:** 0",
		fmt.Sprintf("**Advisor Fallbacks:** %d", result.Metrics.AdvisorFallbacks),
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}

	activity := e.read(t, "logs", "agent_activity.log")
	if !strings.HasPrefix(activity, "--- Agentic Workflow Execution Log Start: 2025-10-30 ---\n") {
		t.Errorf("activity header:\n%s", activity)
	}
	steps := []string{"System Init", "Setup:", "Start Process A", "End Process A", "Start Process B", "PENDING DOCS", "Dashboard saved to", "System Shutdown"}
	pos := 0
	for _, step := range steps {
		i := strings.Index(activity[pos:], step)
		if i < 0 {
			t.Fatalf("activity log missing %q after offset %d", step, pos)
		}
		pos += i
	}

	comms := e.read(t, "logs", "simulated_communications.log")
	if !strings.Contains(comms, "missing the following documents: AI Policy Check Failed") {
		t.Errorf("rejection not sent:\n%s", comms)
	}
}

func TestRunProcessSelection(t *testing.T) {
	e := setup(t, staffCSV)

	result, err := e.run(t, advisor.Unavailable(), workflow.ProcessCredentialing)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Metrics.DocumentsRenewed != 0 {
		t.Errorf("renewed = %d, want 0", result.Metrics.DocumentsRenewed)
	}

	activity := e.read(t, "logs", "agent_activity.log")
	if strings.Contains(activity, "Start Process A") {
		t.Error("document lifecycle should not run")
	}
	if !strings.Contains(activity, "Start Process B") {
		t.Error("credentialing should run")
	}
}

func TestRunIsRepeatable(t *testing.T) {
	e := setup(t, staffCSV)

	first, err := e.run(t, advisor.Unavailable(), workflow.ProcessAll)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	second, err := e.run(t, advisor.Unavailable(), workflow.ProcessAll)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}

	if first.Report.Content != second.Report.Content {
		t.Error("identical runs produced different reports")
	}
	if first.RunID == second.RunID {
		t.Error("run ids should differ")
	}

	activity := e.read(t, "logs", "agent_activity.log")
	if strings.Count(activity, "System Init") != 1 {
		t.Error("activity log should be recreated each run")
	}
}

func TestRunDataLoadFailure(t *testing.T) {
	e := setup(t, "")

	result, err := e.run(t, advisor.Unavailable(), workflow.ProcessAll)
	if err == nil {
		t.Fatal("expected error")
	}
	if result != nil {
		t.Error("no result expected on startup failure")
	}
	if _, statErr := os.Stat(filepath.Join(e.dir, "outputs", "compliance_dashboard.md")); statErr == nil {
		t.Error("no report should be written")
	}
}
