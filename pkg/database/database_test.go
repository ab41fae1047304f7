package database_test

import (
	"log/slog"
	"testing"

	"github.com/JaimeStill/docket/pkg/database"
)

func TestNewReturnsSystem(t *testing.T) {
	cfg := database.Config{
		Host:         "localhost",
		Port:         5432,
		Name:         "docket",
		User:         "docket",
		Password:     "docket",
		SSLMode:      "disable",
		MaxOpenConns: 2,
		ConnTimeout:  "1s",
	}

	sys, err := database.New(&cfg, slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	conn := sys.Connection()
	if conn == nil {
		t.Fatal("Connection() returned nil")
	}

	// sql.Open is lazy; Close succeeds without a live server.
	if err := conn.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
