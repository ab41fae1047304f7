// Package storage persists generated reports to a local directory or an
// Azure Blob Storage container.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/JaimeStill/docket/pkg/lifecycle"
)

// System manages report storage and lifecycle coordination.
type System interface {
	// Start registers a startup hook that prepares the storage target.
	Start(lc *lifecycle.Coordinator) error
	// Upload writes data to the given key, replacing any existing object.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download returns a stream for the object at key. The caller must close the reader.
	// Returns ErrNotFound if the object does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Location returns a human-readable reference for key.
	Location(key string) string
}

// New creates the storage system selected by cfg.Backend.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case BackendLocal, "":
		return newLocal(cfg, logger), nil
	case BackendAzure:
		return newAzure(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
