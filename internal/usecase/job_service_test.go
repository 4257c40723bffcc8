package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/jobscheduler"
	jobschedulermock "github.com/riskibarqy/nfl-draft-league/internal/mocks/domain/jobscheduler"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type staticIDs struct{ id string }

func (s staticIDs) NewID() (string, error) { return s.id, nil }

type recordingQueue struct {
	mu      sync.Mutex
	paths   []string
	dedups  []string
	payload []any
	err     error
}

func (q *recordingQueue) Enqueue(_ context.Context, path string, payload any, _ time.Duration, deduplicationID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.paths = append(q.paths, path)
	q.dedups = append(q.dedups, deduplicationID)
	q.payload = append(q.payload, payload)
	return q.err
}

type heldLocker struct{}

func (heldLocker) Acquire(context.Context, string, time.Duration) (func(context.Context) error, error) {
	return nil, ErrJobLocked
}

// partialLocker holds the listed keys and grants every other one.
type partialLocker struct {
	countingLocker
	held map[string]bool
}

func (l *partialLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	if l.held[key] {
		return nil, ErrJobLocked
	}
	return l.countingLocker.Acquire(ctx, key, ttl)
}

type countingLocker struct {
	mu       sync.Mutex
	keys     []string
	released int
}

func (l *countingLocker) Acquire(_ context.Context, key string, _ time.Duration) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = append(l.keys, key)
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.released++
		return nil
	}, nil
}

func TestDedupKey_UsesQStashSafeFormat(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, time.September, 15, 4, 25, 42, 0, time.UTC)
	got := dedupKey("sync-odds", "week:2/2024 reg", at, 5*time.Minute)

	if strings.Contains(got, ":") {
		t.Fatalf("dedup key must not contain colon, got=%q", got)
	}

	want := "sync-odds-week-2-2024-reg-20240915T042500Z"
	if got != want {
		t.Fatalf("unexpected dedup key: got=%q want=%q", got, want)
	}
}

func TestSanitizeDedupSegment_EmptyFallback(t *testing.T) {
	t.Parallel()

	if got := sanitizeDedupSegment(" \t "); got != "unknown" {
		t.Fatalf("unexpected sanitize fallback: got=%q want=%q", got, "unknown")
	}
}

func TestJobService_Run_UnknownJob(t *testing.T) {
	t.Parallel()

	service := NewJobService(nil, nil, nil, nil, nil, JobServiceConfig{}, logging.NewNop())
	_, err := service.Run(context.Background(), "sync-players", JobInput{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestJobService_Run_RecordsCompletedDispatch(t *testing.T) {
	t.Parallel()

	f := newIngestionFixture(t)
	dispatchRepo := jobschedulermock.NewRepository(t)
	locker := &countingLocker{}
	service := NewJobService(f.service, nil, locker, dispatchRepo, staticIDs{id: "run-1"}, JobServiceConfig{}, logging.NewNop())

	dispatchRepo.
		On("UpsertEvent", mock.Anything, mock.MatchedBy(func(event jobscheduler.DispatchEvent) bool {
			return event.DispatchID == "run-1" &&
				event.JobName == JobKeepAlive &&
				event.JobPath == "/v1/internal/jobs/keep-alive" &&
				event.Status == jobscheduler.StatusCompleted &&
				event.Records == 1
		})).
		Return(nil).
		Once()

	got, err := service.Run(context.Background(), JobKeepAlive, JobInput{})
	require.NoError(t, err)
	assert.Equal(t, JobKeepAlive, got.Job)
	assert.Equal(t, "success", got.Status)
	assert.Equal(t, 1, got.Records)
	assert.Equal(t, []string{"job-lock:keep-alive"}, locker.keys)
	assert.Equal(t, 1, locker.released)
}

func TestJobService_Run_FailureIsReturnedAndRecorded(t *testing.T) {
	t.Parallel()

	f := newIngestionFixture(t)
	f.pinger.err = errors.New("connection refused")
	dispatchRepo := jobschedulermock.NewRepository(t)
	service := NewJobService(f.service, nil, nil, dispatchRepo, staticIDs{id: "run-2"}, JobServiceConfig{}, logging.NewNop())

	dispatchRepo.
		On("UpsertEvent", mock.Anything, mock.MatchedBy(func(event jobscheduler.DispatchEvent) bool {
			return event.Status == jobscheduler.StatusFailed && strings.Contains(event.ErrorMessage, "connection refused")
		})).
		Return(nil).
		Once()

	got, err := service.Run(context.Background(), JobKeepAlive, JobInput{})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	assert.Equal(t, "failed", got.Status)
}

func TestJobService_Run_SkipsWhenLocked(t *testing.T) {
	t.Parallel()

	f := newIngestionFixture(t)
	service := NewJobService(f.service, nil, heldLocker{}, nil, staticIDs{id: "run-3"}, JobServiceConfig{}, logging.NewNop())

	got, err := service.Run(context.Background(), JobSyncStandings, JobInput{})
	require.NoError(t, err)
	assert.Equal(t, "skipped", got.Status)
	assert.Equal(t, 0, f.pinger.calls)
}

func TestJobService_RunAll_CollectsTaskResults(t *testing.T) {
	t.Parallel()

	f := newIngestionFixture(t)
	f.provider.standings = []ExternalStanding{{TeamID: 62, Abbreviation: "KC", Wins: 2}}
	f.provider.teamStats = []ExternalTeamStats{{Team: ExternalTeam{ID: 62, Abbreviation: "KC"}, Wins: 2}}

	f.standingRepo.
		On("Upsert", mock.Anything, mock.AnythingOfType("[]standing.Standing")).
		Return(errors.New("deadlock detected")).
		Once()
	f.teamRepo.
		On("Upsert", mock.Anything, mock.AnythingOfType("[]team.Team")).
		Return(nil).
		Once()
	f.teamRepo.
		On("UpsertStats", mock.Anything, mock.AnythingOfType("[]team.Stats")).
		Return(nil).
		Once()

	service := NewJobService(f.service, nil, nil, nil, nil, JobServiceConfig{MaxWorkers: 2}, logging.NewNop())
	got, err := service.Run(context.Background(), JobRunAll, JobInput{})
	require.NoError(t, err)

	assert.Equal(t, JobRunAll, got.Job)
	assert.Equal(t, "failed", got.Status)
	assert.Equal(t, "1 of 4 tasks failed", got.Message)
	assert.Equal(t, 1, got.Records)
	require.Len(t, got.Tasks, 4)

	statuses := make(map[string]string, len(got.Tasks))
	for _, task := range got.Tasks {
		statuses[task.Job] = task.Status
	}
	assert.Equal(t, map[string]string{
		JobSyncGames:     "success",
		JobSyncOdds:      "success",
		JobSyncStandings: "failed",
		JobSyncTeamStats: "success",
	}, statuses)
	assert.Equal(t, JobSyncGames, got.Tasks[0].Job)
}

func TestJobService_Dispatch_EnqueuesInternalRoute(t *testing.T) {
	t.Parallel()

	queue := &recordingQueue{}
	dispatchRepo := jobschedulermock.NewRepository(t)
	service := NewJobService(nil, queue, nil, dispatchRepo, nil, JobServiceConfig{DedupBucket: 5 * time.Minute}, logging.NewNop())
	service.now = func() time.Time { return time.Date(2024, 9, 15, 4, 27, 0, 0, time.UTC) }

	dispatchRepo.
		On("UpsertEvent", mock.Anything, mock.MatchedBy(func(event jobscheduler.DispatchEvent) bool {
			return event.Status == jobscheduler.StatusSent && event.DispatchID == "sync-odds-week-3-20240915T042500Z"
		})).
		Return(nil).
		Once()

	got, err := service.Dispatch(context.Background(), JobSyncOdds, JobInput{Week: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, "queued", got.Status)
	assert.Equal(t, []string{"/v1/internal/jobs/sync-odds"}, queue.paths)
	assert.Equal(t, []string{"sync-odds-week-3-20240915T042500Z"}, queue.dedups)

	payload := queue.payload[0].(map[string]any)
	assert.Equal(t, 3, payload["week"])
}

func TestJobService_Dispatch_QueueFailure(t *testing.T) {
	t.Parallel()

	queue := &recordingQueue{err: errors.New("qstash unavailable")}
	dispatchRepo := jobschedulermock.NewRepository(t)
	service := NewJobService(nil, queue, nil, dispatchRepo, nil, JobServiceConfig{}, logging.NewNop())

	dispatchRepo.
		On("UpsertEvent", mock.Anything, mock.MatchedBy(func(event jobscheduler.DispatchEvent) bool {
			return event.Status == jobscheduler.StatusFailed
		})).
		Return(nil).
		Once()

	_, err := service.Dispatch(context.Background(), JobSyncGames, JobInput{})
	if !errors.Is(err, queue.err) {
		t.Fatalf("expected queue error, got %v", err)
	}
}

func TestJobService_RunAll_LocksEachTask(t *testing.T) {
	t.Parallel()

	f := newIngestionFixture(t)
	locker := &partialLocker{held: map[string]bool{"job-lock:" + JobSyncOdds: true}}

	service := NewJobService(f.service, nil, locker, nil, staticIDs{id: "run-4"}, JobServiceConfig{MaxWorkers: 4}, logging.NewNop())
	got, err := service.Run(context.Background(), JobRunAll, JobInput{})
	require.NoError(t, err)

	assert.Equal(t, "success", got.Status)
	require.Len(t, got.Tasks, 4)
	statuses := make(map[string]string, len(got.Tasks))
	for _, task := range got.Tasks {
		statuses[task.Job] = task.Status
	}
	assert.Equal(t, "skipped", statuses[JobSyncOdds])
	assert.Equal(t, "success", statuses[JobSyncGames])
	assert.Zero(t, f.provider.gotWeek)

	assert.ElementsMatch(t, []string{
		"job-lock:" + JobRunAll,
		"job-lock:" + JobSyncGames,
		"job-lock:" + JobSyncStandings,
		"job-lock:" + JobSyncTeamStats,
	}, locker.keys)
	assert.Equal(t, 4, locker.released)
}
