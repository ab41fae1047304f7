// Package audit writes the two run logs: the activity log of every
// workflow action and the communications log of every simulated message.
// Both are recreated at the start of each run.
package audit

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/JaimeStill/docket/pkg/formatting"
)

// TimestampLayout formats the bracketed timestamp on every log line.
const TimestampLayout = "2006-01-02 15:04:05"

// Clock supplies entry timestamps.
type Clock func() time.Time

// Recorder accepts activity entries.
type Recorder interface {
	Record(agent, action, detail string)
}

// Entry is one activity log line.
type Entry struct {
	Timestamp time.Time
	Agent     string
	Action    string
	Detail    string
	Fallback  bool
}

// String renders the entry as it appears in the activity log.
func (e Entry) String() string {
	return fmt.Sprintf("[%s] [%s] %s: %s", e.Timestamp.Format(TimestampLayout), e.Agent, e.Action, e.Detail)
}

// Option configures a log.
type Option func(*options)

type options struct {
	clock   Clock
	console *Console
	logger  *slog.Logger
}

// WithClock overrides the timestamp source.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithConsole echoes activity entries to c.
func WithConsole(c *Console) Option {
	return func(o *options) { o.console = c }
}

// WithLogger sets the diagnostic logger used for write failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) options {
	o := options{
		clock:  time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Create truncates (or creates) the file at path, creating parent
// directories as needed.
func Create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create log %s: %w", path, err)
	}
	return f, nil
}

func header(title string, date time.Time) string {
	return fmt.Sprintf("--- %s: %s ---\n", title, formatting.FormatDate(date))
}

func closeWriter(w io.Writer) error {
	if c, ok := w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Journal is a Recorder that also distinguishes advisor fallbacks.
type Journal interface {
	Recorder
	Fallback(agent, action, detail string)
}
