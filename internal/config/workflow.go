package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/JaimeStill/docket/pkg/formatting"
)

const (
	EnvWorkflowReferenceDate = "DOCKET_WORKFLOW_REFERENCE_DATE"
	EnvWorkflowHorizonDays   = "DOCKET_WORKFLOW_HORIZON_DAYS"
	EnvWorkflowFallbackEmail = "DOCKET_WORKFLOW_FALLBACK_EMAIL"
	EnvWorkflowApproverRole  = "DOCKET_WORKFLOW_APPROVER_ROLE"
	EnvWorkflowEnforce       = "DOCKET_WORKFLOW_ENFORCE_URGENCY_POLICY"
)

const DefaultHorizonDays = 60

// WorkflowConfig holds the batch parameters shared by both workflows.
type WorkflowConfig struct {
	// ReferenceDate is the run's "today" as YYYY-MM-DD.
	ReferenceDate string `toml:"reference_date"`
	// HorizonDays is nil when unset; 0 selects only documents expiring on
	// or before the reference date.
	HorizonDays   *int   `toml:"horizon_days"`
	FallbackEmail string `toml:"fallback_email"`
	ApproverRole  string `toml:"approver_role"`
	// EnforceUrgencyPolicy raises advisor urgency to at least the
	// guideline hint.
	EnforceUrgencyPolicy bool `toml:"enforce_urgency_policy"`
}

// Reference returns ReferenceDate as a time.Time.
func (c *WorkflowConfig) Reference() time.Time {
	t, _ := formatting.ParseDate(c.ReferenceDate)
	return t
}

// Horizon returns the scan horizon in days.
func (c *WorkflowConfig) Horizon() int {
	if c.HorizonDays == nil {
		return DefaultHorizonDays
	}
	return *c.HorizonDays
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WorkflowConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *WorkflowConfig) Merge(overlay *WorkflowConfig) {
	if overlay.ReferenceDate != "" {
		c.ReferenceDate = overlay.ReferenceDate
	}
	if overlay.HorizonDays != nil {
		c.HorizonDays = overlay.HorizonDays
	}
	if overlay.FallbackEmail != "" {
		c.FallbackEmail = overlay.FallbackEmail
	}
	if overlay.ApproverRole != "" {
		c.ApproverRole = overlay.ApproverRole
	}
	if overlay.EnforceUrgencyPolicy {
		c.EnforceUrgencyPolicy = true
	}
}

func (c *WorkflowConfig) loadDefaults() {
	if c.ReferenceDate == "" {
		c.ReferenceDate = "2025-10-30"
	}
	if c.HorizonDays == nil {
		days := DefaultHorizonDays
		c.HorizonDays = &days
	}
	if c.FallbackEmail == "" {
		c.FallbackEmail = "qmr@phmk.my"
	}
	if c.ApproverRole == "" {
		c.ApproverRole = "Approver"
	}
}

func (c *WorkflowConfig) loadEnv() {
	if v := os.Getenv(EnvWorkflowReferenceDate); v != "" {
		c.ReferenceDate = v
	}
	if v := os.Getenv(EnvWorkflowHorizonDays); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			c.HorizonDays = &days
		}
	}
	if v := os.Getenv(EnvWorkflowFallbackEmail); v != "" {
		c.FallbackEmail = v
	}
	if v := os.Getenv(EnvWorkflowApproverRole); v != "" {
		c.ApproverRole = v
	}
	if v := os.Getenv(EnvWorkflowEnforce); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.EnforceUrgencyPolicy = b
		}
	}
}

func (c *WorkflowConfig) validate() error {
	if _, err := formatting.ParseDate(c.ReferenceDate); err != nil {
		return fmt.Errorf("invalid reference_date: %w", err)
	}
	if c.Horizon() < 0 {
		return fmt.Errorf("invalid horizon_days: %d", c.Horizon())
	}
	return nil
}
