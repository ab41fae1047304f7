// Package infrastructure provides core system initialization for a run.
// It assembles the common dependencies (logging, database, storage) that
// the workflows require.
package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/docket/internal/config"
	"github.com/JaimeStill/docket/pkg/database"
	"github.com/JaimeStill/docket/pkg/lifecycle"
	"github.com/JaimeStill/docket/pkg/storage"
)

// Infrastructure holds the core systems required by a run. Database is nil
// unless the postgres data driver is configured.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
}

// New creates an Infrastructure from the run configuration, writing
// diagnostics to stderr. It initializes all systems but does not start
// them; call Start separately.
func New(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	return NewWithWriter(ctx, cfg, os.Stderr)
}

// NewWithWriter is New with diagnostics written to w.
func NewWithWriter(ctx context.Context, cfg *config.Config, w io.Writer) (*Infrastructure, error) {
	lc := lifecycle.New(ctx)
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level()}))

	var db database.System
	if cfg.Data.Driver == config.DriverPostgres {
		var err error
		db, err = database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator
// and blocks until every startup hook has completed.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	if err := i.Lifecycle.WaitForStartup(); err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}
	return nil
}
