package audit

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Channel names a simulated delivery channel.
type Channel string

const (
	ChannelEmail         Channel = "Email"
	ChannelWhatsApp      Channel = "WhatsApp"
	ChannelCredentialing Channel = "Email (C&P)"
)

// Communications is the simulated outbox. Nothing is delivered; every
// message is written as a block to the communications log and noted in
// the activity log.
type Communications struct {
	mu       sync.Mutex
	w        io.Writer
	activity Recorder
	clock    Clock
	logger   *slog.Logger
	sent     int
}

// NewCommunications writes the log header for date to w and returns the log.
func NewCommunications(w io.Writer, date time.Time, activity Recorder, opts ...Option) *Communications {
	o := newOptions(opts)
	c := &Communications{
		w:        w,
		activity: activity,
		clock:    o.clock,
		logger:   o.logger.With("system", "audit", "log", "communications"),
	}
	c.write(header("Simulated Communications Log Start", date))
	return c
}

// Send logs a message to recipient on channel.
func (c *Communications) Send(recipient string, channel Channel, subject, body string) {
	block := fmt.Sprintf(
		"[%s] [%s] TO: %s | SUBJECT: %s\n---BODY---\n%s\n----------\n",
		c.clock().Format(TimestampLayout), channel, recipient, subject, body,
	)

	c.mu.Lock()
	c.write(block)
	c.sent++
	c.mu.Unlock()

	c.activity.Record("Communication Agent", fmt.Sprintf("%s Sent", channel), fmt.Sprintf("'%s' to %s", subject, recipient))
}

// Sent returns the number of messages logged.
func (c *Communications) Sent() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sent
}

// Close closes the underlying writer if it is closable.
func (c *Communications) Close() error {
	return closeWriter(c.w)
}

func (c *Communications) write(s string) {
	if _, err := io.WriteString(c.w, s); err != nil {
		c.logger.Error("communications log write failed", "error", err)
	}
}
