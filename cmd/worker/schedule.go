package main

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/nfl-draft-league/internal/app"
	"github.com/riskibarqy/nfl-draft-league/internal/config"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/logging"
	"github.com/riskibarqy/nfl-draft-league/internal/usecase"
	"github.com/robfig/cron/v3"
)

type scheduledJob struct {
	name string
	spec string
}

// jobTrigger runs or enqueues a job; JobService satisfies both shapes.
type jobTrigger func(ctx context.Context, name string, input usecase.JobInput) (usecase.JobResult, error)

func scheduledJobs(cfg config.Config) []scheduledJob {
	return []scheduledJob{
		{name: usecase.JobSyncGames, spec: cfg.JobCronGames},
		{name: usecase.JobSyncOdds, spec: cfg.JobCronOdds},
		{name: usecase.JobSyncStandings, spec: cfg.JobCronStandings},
		{name: usecase.JobSyncTeamStats, spec: cfg.JobCronTeamStats},
		{name: usecase.JobKeepAlive, spec: cfg.JobCronKeepAlive},
	}
}

func triggerFor(application *app.App, mode string) jobTrigger {
	if mode == config.JobDispatchQStash {
		return application.JobService.Dispatch
	}
	return application.JobService.Run
}

func registerJobs(ctx context.Context, scheduler *cron.Cron, application *app.App, cfg config.Config, logger *logging.Logger) error {
	trigger := triggerFor(application, cfg.JobDispatchMode)
	for _, job := range scheduledJobs(cfg) {
		if job.spec == "" {
			logger.Info("job schedule disabled", "job", job.name)
			continue
		}
		if _, err := scheduler.AddFunc(job.spec, newCronFunc(ctx, job.name, trigger, stopTimeout, logger)); err != nil {
			return fmt.Errorf("schedule job %s (%q): %w", job.name, job.spec, err)
		}
		logger.Info("job scheduled", "job", job.name, "spec", job.spec)
	}
	return nil
}

// newCronFunc runs trigger until it returns. A job already running when ctx
// is cancelled keeps going for up to grace before its context is cancelled.
func newCronFunc(ctx context.Context, name string, trigger jobTrigger, grace time.Duration, logger *logging.Logger) func() {
	return func() {
		if ctx.Err() != nil {
			return
		}

		jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		defer cancel()
		stopGrace := context.AfterFunc(ctx, func() {
			select {
			case <-time.After(grace):
				cancel()
			case <-jobCtx.Done():
			}
		})
		defer stopGrace()

		result, err := trigger(jobCtx, name, usecase.JobInput{})
		if err != nil {
			logger.ErrorContext(jobCtx, "scheduled job failed", "job", name, "error", err)
			return
		}
		logger.InfoContext(jobCtx, "scheduled job finished",
			"job", name,
			"status", result.Status,
			"records", result.Records,
			"skipped", result.Skipped,
			"duration_ms", result.DurationMs,
		)
	}
}
