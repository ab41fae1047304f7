package audit

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Activity is the append-only activity log. It mirrors every line in memory
// so the dashboard can read the full run log without reopening the file.
type Activity struct {
	mu        sync.Mutex
	w         io.Writer
	text      strings.Builder
	entries   []Entry
	fallbacks int

	clock   Clock
	console *Console
	logger  *slog.Logger
}

// NewActivity writes the log header for date to w and returns the log.
func NewActivity(w io.Writer, date time.Time, opts ...Option) *Activity {
	o := newOptions(opts)
	a := &Activity{
		w:       w,
		clock:   o.clock,
		console: o.console,
		logger:  o.logger.With("system", "audit", "log", "activity"),
	}
	a.write(header("Agentic Workflow Execution Log Start", date))
	return a
}

// Record appends an entry.
func (a *Activity) Record(agent, action, detail string) {
	a.append(Entry{Agent: agent, Action: action, Detail: detail})
}

// Fallback appends an entry for an advisor failure that was replaced by its
// documented fallback, and counts it.
func (a *Activity) Fallback(agent, action, detail string) {
	a.append(Entry{Agent: agent, Action: action, Detail: detail, Fallback: true})
}

// Fallbacks returns the number of fallback entries recorded.
func (a *Activity) Fallbacks() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fallbacks
}

// Entries returns a copy of the recorded entries.
func (a *Activity) Entries() []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Text returns the full log content, header included.
func (a *Activity) Text() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.text.String(), nil
}

// Close closes the underlying writer if it is closable.
func (a *Activity) Close() error {
	return closeWriter(a.w)
}

func (a *Activity) append(e Entry) {
	e.Timestamp = a.clock()

	a.mu.Lock()
	a.entries = append(a.entries, e)
	if e.Fallback {
		a.fallbacks++
	}
	a.write(e.String() + "\n")
	a.mu.Unlock()

	if a.console != nil {
		a.console.Print(e)
	}
}

// write must be called with mu held, or before the log is shared.
func (a *Activity) write(s string) {
	a.text.WriteString(s)
	if _, err := io.WriteString(a.w, s); err != nil {
		a.logger.Error("activity log write failed", "error", err)
	}
}
