package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/id"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/logging"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	JobSyncGames     = "sync-games"
	JobSyncOdds      = "sync-odds"
	JobSyncStandings = "sync-standings"
	JobSyncTeamStats = "sync-team-stats"
	JobKeepAlive     = "keep-alive"
	JobRunAll        = "run-all"

	jobStatusSuccess = "success"
	jobStatusFailed  = "failed"
	jobStatusSkipped = "skipped"
	jobStatusQueued  = "queued"

	jobPathPrefix = "/v1/internal/jobs/"
)

type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

// JobLocker guards a job name so that only one runner executes it at a time.
// The returned release func must be called once the job finishes.
type JobLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

type JobInput struct {
	Week       *int
	Date       *time.Time
	DispatchID string
}

type JobResult struct {
	Job        string      `json:"job"`
	Status     string      `json:"status"`
	Records    int         `json:"records"`
	Skipped    int         `json:"skipped"`
	DurationMs int64       `json:"durationMs"`
	Message    string      `json:"message,omitempty"`
	Tasks      []JobResult `json:"tasks,omitempty"`
}

type JobServiceConfig struct {
	LockTTL     time.Duration
	MaxWorkers  int
	DedupBucket time.Duration
}

type JobService struct {
	ingestion    *IngestionService
	queue        JobQueue
	locker       JobLocker
	dispatchRepo jobscheduler.Repository
	ids          id.Generator
	cfg          JobServiceConfig
	logger       *logging.Logger
	now          func() time.Time
}

var dedupUnsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func NewJobService(
	ingestion *IngestionService,
	queue JobQueue,
	locker JobLocker,
	dispatchRepo jobscheduler.Repository,
	ids id.Generator,
	cfg JobServiceConfig,
	logger *logging.Logger,
) *JobService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if ids == nil {
		ids = id.NewTimeOrderedGenerator("")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 10 * time.Minute
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	if cfg.DedupBucket <= 0 {
		cfg.DedupBucket = time.Minute
	}

	return &JobService{
		ingestion:    ingestion,
		queue:        queue,
		locker:       locker,
		dispatchRepo: dispatchRepo,
		ids:          ids,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

func IsKnownJob(name string) bool {
	switch name {
	case JobSyncGames, JobSyncOdds, JobSyncStandings, JobSyncTeamStats, JobKeepAlive, JobRunAll:
		return true
	default:
		return false
	}
}

// Run executes one job in-process. run-all fans the sync jobs out on a worker
// pool and never fails as a whole; its tasks carry the individual outcome.
func (s *JobService) Run(ctx context.Context, name string, input JobInput) (JobResult, error) {
	name = strings.TrimSpace(name)
	ctx, span := startUsecaseSpan(ctx, "usecase.JobService.Run", attribute.String("job.name", name))
	defer span.End()

	if !IsKnownJob(name) {
		return JobResult{}, fmt.Errorf("%w: job=%s", ErrNotFound, name)
	}

	dispatchID := strings.TrimSpace(input.DispatchID)
	if dispatchID == "" {
		generated, err := s.ids.NewID()
		if err != nil {
			return JobResult{}, fmt.Errorf("generate dispatch id: %w", err)
		}
		dispatchID = generated
	}

	release, err := s.acquire(ctx, name)
	if errors.Is(err, ErrJobLocked) {
		result := JobResult{Job: name, Status: jobStatusSkipped, Message: ErrJobLocked.Error()}
		metrics.ObserveJob(name, result.Status, 0)
		s.recordDispatchEvent(ctx, jobscheduler.DispatchEvent{
			DispatchID: dispatchID,
			JobName:    name,
			JobPath:    jobPathPrefix + name,
			Status:     jobscheduler.StatusSkipped,
			Payload:    jobPayload(input, dispatchID),
		})
		return result, nil
	}
	if err != nil {
		return JobResult{}, fmt.Errorf("%w: acquire job lock job=%s: %w", ErrDependencyUnavailable, name, err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.WarnContext(ctx, "release job lock failed", "job", name, "error", err)
		}
	}()

	var result JobResult
	if name == JobRunAll {
		result, err = s.runAll(ctx, input)
	} else {
		result, err = s.runOne(ctx, name, input)
	}

	event := jobscheduler.DispatchEvent{
		DispatchID: dispatchID,
		JobName:    name,
		JobPath:    jobPathPrefix + name,
		Status:     jobscheduler.StatusCompleted,
		Payload:    jobPayload(input, dispatchID),
		Records:    result.Records,
	}
	if err != nil {
		event.Status = jobscheduler.StatusFailed
		event.ErrorMessage = err.Error()
		failSpan(span, err)
	}
	s.recordDispatchEvent(ctx, event)

	return result, err
}

func (s *JobService) runOne(ctx context.Context, name string, input JobInput) (JobResult, error) {
	start := s.now()
	summary, err := s.execute(ctx, name, input)
	duration := s.now().Sub(start)

	result := JobResult{
		Job:        name,
		Status:     jobStatusSuccess,
		Records:    summary.Records,
		Skipped:    summary.Skipped,
		DurationMs: duration.Milliseconds(),
		Message:    summary.Message,
	}
	if err != nil {
		result.Status = jobStatusFailed
		result.Message = err.Error()
		metrics.ObserveJob(name, result.Status, duration)
		s.logger.ErrorContext(ctx, "job failed", "job", name, "duration_ms", result.DurationMs, "error", err)
		return result, fmt.Errorf("run job=%s: %w", name, err)
	}

	metrics.ObserveJob(name, result.Status, duration)
	s.logger.InfoContext(ctx, "job finished",
		"job", name,
		"records", result.Records,
		"skipped", result.Skipped,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

func (s *JobService) execute(ctx context.Context, name string, input JobInput) (SyncSummary, error) {
	switch name {
	case JobSyncGames:
		return s.ingestion.SyncGames(ctx, input.Date)
	case JobSyncOdds:
		return s.ingestion.SyncOdds(ctx, input.Week)
	case JobSyncStandings:
		return s.ingestion.SyncStandings(ctx)
	case JobSyncTeamStats:
		return s.ingestion.SyncTeamStats(ctx)
	case JobKeepAlive:
		return s.ingestion.KeepAlive(ctx)
	default:
		return SyncSummary{}, fmt.Errorf("%w: job=%s", ErrNotFound, name)
	}
}

func (s *JobService) runAll(ctx context.Context, input JobInput) (JobResult, error) {
	jobs := []string{JobSyncTeamStats, JobSyncStandings, JobSyncGames, JobSyncOdds}
	start := s.now()

	workerCount := s.cfg.MaxWorkers
	if workerCount > len(jobs) {
		workerCount = len(jobs)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return JobResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan JobResult, len(jobs))
	var records atomic.Int32
	var skipped atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, name := range jobs {
		name := name
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row, err := s.runTask(ctx, name, input)
			if err != nil {
				failedCount.Add(1)
			}
			records.Add(int32(row.Records))
			skipped.Add(int32(row.Skipped))
			results <- row
		}); err != nil {
			workers.Done()
			return JobResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	result := JobResult{
		Job:    JobRunAll,
		Status: jobStatusSuccess,
		Tasks:  make([]JobResult, 0, len(jobs)),
	}
	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].Job < result.Tasks[j].Job
	})

	result.Records = int(records.Load())
	result.Skipped = int(skipped.Load())
	if failed := int(failedCount.Load()); failed > 0 {
		result.Status = jobStatusFailed
		result.Message = fmt.Sprintf("%d of %d tasks failed", failed, len(jobs))
	}
	duration := s.now().Sub(start)
	result.DurationMs = duration.Milliseconds()
	metrics.ObserveJob(JobRunAll, result.Status, duration)

	return result, nil
}

// runTask runs one run-all task under its own job lock, so it never overlaps
// a standalone run of the same job. A held lock skips the task.
func (s *JobService) runTask(ctx context.Context, name string, input JobInput) (JobResult, error) {
	release, err := s.acquire(ctx, name)
	if errors.Is(err, ErrJobLocked) {
		metrics.ObserveJob(name, jobStatusSkipped, 0)
		return JobResult{Job: name, Status: jobStatusSkipped, Message: ErrJobLocked.Error()}, nil
	}
	if err != nil {
		err = fmt.Errorf("%w: acquire job lock job=%s: %w", ErrDependencyUnavailable, name, err)
		return JobResult{Job: name, Status: jobStatusFailed, Message: err.Error()}, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.WarnContext(ctx, "release job lock failed", "job", name, "error", err)
		}
	}()

	return s.runOne(ctx, name, input)
}

// Dispatch enqueues the job on the internal job route instead of running it.
func (s *JobService) Dispatch(ctx context.Context, name string, input JobInput) (JobResult, error) {
	name = strings.TrimSpace(name)
	ctx, span := startUsecaseSpan(ctx, "usecase.JobService.Dispatch", attribute.String("job.name", name))
	defer span.End()

	if !IsKnownJob(name) {
		return JobResult{}, fmt.Errorf("%w: job=%s", ErrNotFound, name)
	}

	now := s.now().UTC()
	dedupID := dedupKey(name, jobScope(input), now, s.cfg.DedupBucket)
	path := jobPathPrefix + name
	payload := jobPayload(input, dedupID)

	if err := s.queue.Enqueue(ctx, path, payload, 0, dedupID); err != nil {
		s.recordDispatchEvent(ctx, jobscheduler.DispatchEvent{
			DispatchID:   dedupID,
			JobName:      name,
			JobPath:      path,
			Status:       jobscheduler.StatusFailed,
			Payload:      payload,
			ErrorMessage: err.Error(),
			OccurredAt:   now,
		})
		return JobResult{}, fmt.Errorf("enqueue job=%s: %w", name, err)
	}
	s.recordDispatchEvent(ctx, jobscheduler.DispatchEvent{
		DispatchID: dedupID,
		JobName:    name,
		JobPath:    path,
		Status:     jobscheduler.StatusSent,
		Payload:    payload,
		OccurredAt: now,
	})

	return JobResult{Job: name, Status: jobStatusQueued, Message: dedupID}, nil
}

func (s *JobService) ListDispatches(ctx context.Context, limit int) ([]jobscheduler.DispatchEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobService.ListDispatches")
	defer span.End()

	limit = jobscheduler.ClampListLimit(limit)
	if s.dispatchRepo == nil {
		return []jobscheduler.DispatchEvent{}, nil
	}

	items, err := s.dispatchRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list job dispatches: %w", err)
	}
	return items, nil
}

func (s *JobService) acquire(ctx context.Context, name string) (func(context.Context) error, error) {
	if s.locker == nil {
		return func(context.Context) error { return nil }, nil
	}
	return s.locker.Acquire(ctx, "job-lock:"+name, s.cfg.LockTTL)
}

func jobScope(input JobInput) string {
	switch {
	case input.Week != nil:
		return fmt.Sprintf("week-%d", *input.Week)
	case input.Date != nil:
		return input.Date.Format("20060102")
	default:
		return "current"
	}
}

func jobPayload(input JobInput, dispatchID string) map[string]any {
	payload := map[string]any{"dispatch_id": dispatchID}
	if input.Week != nil {
		payload["week"] = *input.Week
	}
	if input.Date != nil {
		payload["date"] = input.Date.Format("2006-01-02")
	}
	return payload
}

func dedupKey(prefix, scope string, at time.Time, bucket time.Duration) string {
	if bucket <= 0 {
		bucket = time.Minute
	}
	slot := at.UTC().Truncate(bucket).Format("20060102T150405Z")
	prefix = sanitizeDedupSegment(prefix)
	scope = sanitizeDedupSegment(scope)
	return prefix + "-" + scope + "-" + slot
}

func sanitizeDedupSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return dedupUnsafeCharRegex.ReplaceAllString(value, "-")
}

func (s *JobService) recordDispatchEvent(ctx context.Context, event jobscheduler.DispatchEvent) {
	if s.dispatchRepo == nil || strings.TrimSpace(event.DispatchID) == "" {
		return
	}
	traceID, spanID := traceMetaFromContext(ctx)
	event.TraceID = traceID
	event.SpanID = spanID
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	if err := s.dispatchRepo.UpsertEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "record job dispatch event failed",
			"dispatch_id", event.DispatchID,
			"status", event.Status,
			"error", err,
		)
	}
}

func traceMetaFromContext(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}
