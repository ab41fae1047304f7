package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/docket/pkg/database"
	"github.com/JaimeStill/docket/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"
	DotEnvFile           = ".env"

	EnvDocketEnv             = "DOCKET_ENV"
	EnvDocketShutdownTimeout = "DOCKET_SHUTDOWN_TIMEOUT"
	EnvDocketLogLevel        = "DOCKET_LOG_LEVEL"
)

var databaseEnv = &database.Env{
	URL:          "DOCKET_DB_URL",
	Host:         "DOCKET_DB_HOST",
	Port:         "DOCKET_DB_PORT",
	Name:         "DOCKET_DB_NAME",
	User:         "DOCKET_DB_USER",
	Password:     "DOCKET_DB_PASSWORD",
	SSLMode:      "DOCKET_DB_SSL_MODE",
	MaxOpenConns: "DOCKET_DB_MAX_OPEN_CONNS",
	ConnTimeout:  "DOCKET_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Backend:          "DOCKET_STORAGE_BACKEND",
	Root:             "DOCKET_STORAGE_ROOT",
	ContainerName:    "DOCKET_STORAGE_CONTAINER_NAME",
	ConnectionString: "DOCKET_STORAGE_CONNECTION_STRING",
	AccountURL:       "DOCKET_STORAGE_ACCOUNT_URL",
}

// Config is the root configuration for a docket run.
type Config struct {
	Workflow        WorkflowConfig    `toml:"workflow"`
	Data            DataConfig        `toml:"data"`
	Database        database.Config   `toml:"database"`
	Logs            LogsConfig        `toml:"logs"`
	Report          ReportConfig      `toml:"report"`
	Storage         storage.Config    `toml:"storage"`
	Advisor         AdvisorConfig     `toml:"advisor"`
	Prompts         map[string]string `toml:"prompts"`
	LogLevel        string            `toml:"log_level"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`

	// Agent is decoded from the [agent] table through its JSON field names.
	Agent gaconfig.AgentConfig `toml:"-"`
}

// Env returns the DOCKET_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvDocketEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Level returns the configured diagnostic log level.
func (c *Config) Level() slog.Level {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.LogLevel))
	return level
}

// Load reads .env (if present) into the process environment, then the base
// config at path (if present), applies any DOCKET_ENV overlay found next to
// it, and finalizes all values. An empty path selects config.toml in the
// working directory.
func Load(path string) (*Config, error) {
	if path == "" {
		path = BaseConfigFile
	}

	dir := filepath.Dir(path)
	if err := godotenv.Load(filepath.Join(dir, DotEnvFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		loaded, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if overlay := overlayPath(dir); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	for stage, text := range overlay.Prompts {
		if c.Prompts == nil {
			c.Prompts = make(map[string]string, len(overlay.Prompts))
		}
		c.Prompts[stage] = text
	}
	c.Workflow.Merge(&overlay.Workflow)
	c.Data.Merge(&overlay.Data)
	c.Database.Merge(&overlay.Database)
	c.Logs.Merge(&overlay.Logs)
	c.Report.Merge(&overlay.Report)
	c.Storage.Merge(&overlay.Storage)
	c.Advisor.Merge(&overlay.Advisor)
	c.Agent.Merge(&overlay.Agent)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Workflow.Finalize(); err != nil {
		return fmt.Errorf("workflow: %w", err)
	}
	if err := c.Data.Finalize(); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if c.Data.Driver == DriverPostgres {
		if err := c.Database.Finalize(databaseEnv); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if err := c.Logs.Finalize(); err != nil {
		return fmt.Errorf("logs: %w", err)
	}
	if err := c.Report.Finalize(); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Advisor.Finalize(); err != nil {
		return fmt.Errorf("advisor: %w", err)
	}
	if c.Advisor.IsEnabled() {
		if err := FinalizeAgent(&c.Agent); err != nil {
			return fmt.Errorf("agent: %w", err)
		}
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvDocketShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvDocketLogLevel); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	for stage := range c.Prompts {
		if strings.TrimSpace(c.Prompts[stage]) == "" {
			return fmt.Errorf("empty prompt override for %q", stage)
		}
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var tables struct {
		Agent map[string]any `toml:"agent"`
	}
	if err := toml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if tables.Agent != nil {
		raw, err := json.Marshal(tables.Agent)
		if err != nil {
			return nil, fmt.Errorf("parse agent: %w", err)
		}
		if err := json.Unmarshal(raw, &cfg.Agent); err != nil {
			return nil, fmt.Errorf("parse agent: %w", err)
		}
	}

	return &cfg, nil
}

func overlayPath(dir string) string {
	if env := os.Getenv(EnvDocketEnv); env != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
