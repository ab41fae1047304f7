package storage_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/docket/pkg/lifecycle"
	"github.com/JaimeStill/docket/pkg/storage"
)

func newLocal(t *testing.T) (storage.System, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "outputs")

	cfg := storage.Config{Root: root}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	sys, err := storage.New(&cfg, slog.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	lc := lifecycle.New(context.Background())
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := lc.WaitForStartup(); err != nil {
		t.Fatalf("WaitForStartup: %v", err)
	}
	t.Cleanup(func() { lc.Shutdown(time.Second) })

	return sys, root
}

func TestLocalUploadDownload(t *testing.T) {
	sys, root := newLocal(t)
	ctx := context.Background()

	if err := sys.Upload(ctx, "compliance_dashboard.md", strings.NewReader("first"), "text/markdown"); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if err := sys.Upload(ctx, "compliance_dashboard.md", strings.NewReader("second"), "text/markdown"); err != nil {
		t.Fatalf("Upload overwrite: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "compliance_dashboard.md"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("file content = %q, want overwritten content", data)
	}

	rc, err := sys.Download(ctx, "compliance_dashboard.md")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer rc.Close()

	got, _ := io.ReadAll(rc)
	if string(got) != "second" {
		t.Errorf("Download = %q", got)
	}
}

func TestLocalKeyValidation(t *testing.T) {
	sys, _ := newLocal(t)
	ctx := context.Background()

	tests := []struct {
		name string
		key  string
		want error
	}{
		{"empty", "", storage.ErrEmptyKey},
		{"traversal", "../escape.md", storage.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sys.Upload(ctx, tt.key, strings.NewReader("x"), "text/plain")
			if !errors.Is(err, tt.want) {
				t.Errorf("Upload error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLocalDownloadMissing(t *testing.T) {
	sys, _ := newLocal(t)

	_, err := sys.Download(context.Background(), "missing.md")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Download error = %v, want ErrNotFound", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		wantErr bool
	}{
		{"local default", storage.Config{}, false},
		{"azure without credentials", storage.Config{Backend: storage.BackendAzure}, true},
		{"azure with account url", storage.Config{Backend: storage.BackendAzure, AccountURL: "https://acct.blob.core.windows.net/"}, false},
		{"unknown backend", storage.Config{Backend: "s3"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("Finalize error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigEnvAndMerge(t *testing.T) {
	t.Setenv("TEST_STORAGE_ROOT", "/tmp/reports")

	cfg := storage.Config{Backend: storage.BackendLocal}
	cfg.Merge(&storage.Config{ContainerName: "dashboards"})
	if err := cfg.Finalize(&storage.Env{Root: "TEST_STORAGE_ROOT"}); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.Root != "/tmp/reports" {
		t.Errorf("Root = %q", cfg.Root)
	}
	if cfg.ContainerName != "dashboards" {
		t.Errorf("ContainerName = %q", cfg.ContainerName)
	}
}
