package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/nfl-draft-league/internal/app"
	"github.com/riskibarqy/nfl-draft-league/internal/config"
	"github.com/riskibarqy/nfl-draft-league/internal/observability"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/logging"
	"github.com/robfig/cron/v3"
)

const stopTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName+"-worker", "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("worker stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetry, err := observability.Start(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = telemetry.Shutdown(shutdownCtx)
	}()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn("close app resources failed", "error", err)
		}
	}()

	scheduler := cron.New(cron.WithLocation(cfg.NFLLocation))
	if err := registerJobs(ctx, scheduler, application, cfg, logger); err != nil {
		return err
	}

	scheduler.Start()
	logger.Info("worker started", "dispatch_mode", cfg.JobDispatchMode, "jobs", len(scheduler.Entries()))

	<-ctx.Done()

	logger.Info("worker stopping, waiting for running jobs")
	stopped := scheduler.Stop()
	select {
	case <-stopped.Done():
	case <-time.After(stopTimeout):
		logger.Warn("worker stop timed out", "timeout", stopTimeout.String())
	}

	return nil
}
