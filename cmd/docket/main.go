package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/docket/internal/config"
	"github.com/JaimeStill/docket/internal/infrastructure"
	"github.com/JaimeStill/docket/internal/runner"
	"github.com/JaimeStill/docket/internal/workflow"
)

func main() {
	var (
		configPath = flag.String("config", config.BaseConfigFile, "Path to the base config file")
		process    = flag.String("process", string(workflow.ProcessAll), "Workflows to run: all, documents, or credentialing")
	)
	flag.Parse()

	if err := run(*configPath, *process); err != nil {
		log.Fatal(err)
	}
}

func run(configPath, process string) error {
	selected, err := workflow.ParseProcess(process)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	infra, err := infrastructure.New(ctx, cfg)
	if err != nil {
		return err
	}

	infra.Logger.Info(
		"docket starting",
		"env", cfg.Env(),
		"process", selected,
		"data_driver", cfg.Data.Driver,
		"storage_backend", cfg.Storage.Backend,
	)

	defer func() {
		if err := infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
			infra.Logger.Error("shutdown failed", "error", err)
		}
	}()

	if err := infra.Start(); err != nil {
		return err
	}

	r, err := runner.New(cfg, infra)
	if err != nil {
		return err
	}

	result, err := r.Run(ctx, selected)
	if err != nil {
		return err
	}

	infra.Logger.Info(
		"docket finished",
		"run_id", result.RunID,
		"report", result.Report.Location,
	)
	return nil
}
