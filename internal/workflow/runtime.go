package workflow

import (
	"log/slog"
	"time"

	"github.com/JaimeStill/docket/internal/audit"
	"github.com/JaimeStill/docket/internal/comms"
	"github.com/JaimeStill/docket/internal/compliance"
	"github.com/JaimeStill/docket/internal/credentialing"
	"github.com/JaimeStill/docket/internal/expiry"
	"github.com/JaimeStill/docket/internal/review"
	"github.com/JaimeStill/docket/internal/routing"
	"github.com/JaimeStill/docket/internal/staff"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by the runner from loaded data and infrastructure.
type Runtime struct {
	Directory  *staff.Directory
	Scanner    *expiry.Scanner
	Resolver   *routing.Resolver
	Notifier   *comms.Notifier
	Summarizer *review.Summarizer
	Compliance *compliance.Recorder
	Verifier   *credentialing.Verifier
	Journal    audit.Journal
	Logger     *slog.Logger

	// Reference is the run's "today": the scan origin and the review date
	// stamped on renewed documents.
	Reference   time.Time
	HorizonDays int
}
