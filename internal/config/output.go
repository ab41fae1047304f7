package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	EnvLogsDir        = "DOCKET_LOGS_DIR"
	EnvLogsConsole    = "DOCKET_LOGS_CONSOLE"
	EnvReportKey      = "DOCKET_REPORT_KEY"
	EnvAdvisorEnabled = "DOCKET_ADVISOR_ENABLED"
	EnvAdvisorTimeout = "DOCKET_ADVISOR_TIMEOUT"
)

// LogsConfig places the activity and communications logs. Console is a
// pointer so an overlay can switch the echo off.
type LogsConfig struct {
	Dir            string `toml:"dir"`
	Activity       string `toml:"activity"`
	Communications string `toml:"communications"`
	Console        *bool  `toml:"console"`
}

// ActivityPath returns the activity log path.
func (c *LogsConfig) ActivityPath() string {
	return filepath.Join(c.Dir, c.Activity)
}

// CommunicationsPath returns the communications log path.
func (c *LogsConfig) CommunicationsPath() string {
	return filepath.Join(c.Dir, c.Communications)
}

// ConsoleEnabled reports whether activity entries are echoed to stdout.
func (c *LogsConfig) ConsoleEnabled() bool {
	return c.Console == nil || *c.Console
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *LogsConfig) Finalize() error {
	if c.Dir == "" {
		c.Dir = "logs"
	}
	if c.Activity == "" {
		c.Activity = "agent_activity.log"
	}
	if c.Communications == "" {
		c.Communications = "simulated_communications.log"
	}
	if v := os.Getenv(EnvLogsDir); v != "" {
		c.Dir = v
	}
	if v := os.Getenv(EnvLogsConsole); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Console = &b
		}
	}
	if c.Activity == c.Communications {
		return fmt.Errorf("activity and communications logs must differ")
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *LogsConfig) Merge(overlay *LogsConfig) {
	if overlay.Dir != "" {
		c.Dir = overlay.Dir
	}
	if overlay.Activity != "" {
		c.Activity = overlay.Activity
	}
	if overlay.Communications != "" {
		c.Communications = overlay.Communications
	}
	if overlay.Console != nil {
		c.Console = overlay.Console
	}
}

// ReportConfig names the dashboard report within storage.
type ReportConfig struct {
	Key string `toml:"key"`
}

// Finalize applies defaults and environment variable overrides.
func (c *ReportConfig) Finalize() error {
	if c.Key == "" {
		c.Key = "compliance_dashboard.md"
	}
	if v := os.Getenv(EnvReportKey); v != "" {
		c.Key = v
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *ReportConfig) Merge(overlay *ReportConfig) {
	if overlay.Key != "" {
		c.Key = overlay.Key
	}
}

// AdvisorConfig controls the Decision Advisor. When disabled every
// decision takes its fallback and no agent is configured.
type AdvisorConfig struct {
	Enabled *bool  `toml:"enabled"`
	Timeout string `toml:"timeout"`
}

// IsEnabled reports whether the advisor is enabled (default true).
func (c *AdvisorConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *AdvisorConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AdvisorConfig) Finalize() error {
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
	if v := os.Getenv(EnvAdvisorEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enabled = &b
		}
	}
	if v := os.Getenv(EnvAdvisorTimeout); v != "" {
		c.Timeout = v
	}
	if d, err := time.ParseDuration(c.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid timeout %q", c.Timeout)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *AdvisorConfig) Merge(overlay *AdvisorConfig) {
	if overlay.Enabled != nil {
		c.Enabled = overlay.Enabled
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}
