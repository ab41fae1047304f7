package config

import (
	"fmt"
	"os"
)

const (
	EnvDataDriver      = "DOCKET_DATA_DRIVER"
	EnvDataStaff       = "DOCKET_DATA_STAFF"
	EnvDataDocuments   = "DOCKET_DATA_DOCUMENTS"
	EnvDataApplication = "DOCKET_DATA_APPLICATION"
	EnvDataPolicy      = "DOCKET_DATA_POLICY"
)

// Data drivers.
const (
	DriverCSV      = "csv"
	DriverPostgres = "postgres"
)

// DataConfig locates the run inputs. Staff and Documents are only read by
// the csv driver; the postgres driver reads both tables from [database],
// optionally restricted to Statuses.
type DataConfig struct {
	Driver      string   `toml:"driver"`
	Staff       string   `toml:"staff"`
	Documents   string   `toml:"documents"`
	Application string   `toml:"application"`
	Policy      string   `toml:"policy"`
	Statuses    []string `toml:"statuses"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *DataConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *DataConfig) Merge(overlay *DataConfig) {
	if overlay.Driver != "" {
		c.Driver = overlay.Driver
	}
	if overlay.Staff != "" {
		c.Staff = overlay.Staff
	}
	if overlay.Documents != "" {
		c.Documents = overlay.Documents
	}
	if overlay.Application != "" {
		c.Application = overlay.Application
	}
	if overlay.Policy != "" {
		c.Policy = overlay.Policy
	}
	if len(overlay.Statuses) > 0 {
		c.Statuses = overlay.Statuses
	}
}

func (c *DataConfig) loadDefaults() {
	if c.Driver == "" {
		c.Driver = DriverCSV
	}
	if c.Staff == "" {
		c.Staff = "data/hr_ipsg_list.csv"
	}
	if c.Documents == "" {
		c.Documents = "data/documents.csv"
	}
	if c.Application == "" {
		c.Application = "data/consultant_application.json"
	}
	if c.Policy == "" {
		c.Policy = "data/policy_rules.json"
	}
}

func (c *DataConfig) loadEnv() {
	if v := os.Getenv(EnvDataDriver); v != "" {
		c.Driver = v
	}
	if v := os.Getenv(EnvDataStaff); v != "" {
		c.Staff = v
	}
	if v := os.Getenv(EnvDataDocuments); v != "" {
		c.Documents = v
	}
	if v := os.Getenv(EnvDataApplication); v != "" {
		c.Application = v
	}
	if v := os.Getenv(EnvDataPolicy); v != "" {
		c.Policy = v
	}
}

func (c *DataConfig) validate() error {
	switch c.Driver {
	case DriverCSV, DriverPostgres:
		return nil
	default:
		return fmt.Errorf("unknown data driver %q", c.Driver)
	}
}
