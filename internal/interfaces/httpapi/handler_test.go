package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/odds"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/season"
	"github.com/riskibarqy/nfl-draft-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/logging"
	"github.com/riskibarqy/nfl-draft-league/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJobToken = "job-secret"

type envelope struct {
	APIVersion string `json:"apiVersion"`
	Data       any    `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) (http.Handler, *memory.Dataset) {
	t.Helper()

	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	calendar, err := season.NewCalendar(season.DefaultWeekEndDates, loc)
	require.NoError(t, err)

	data := memory.NewSeededDataset()
	teamRepo := memory.NewTeamRepository(data)
	standingRepo := memory.NewStandingRepository(data)
	oddsRepo := memory.NewOddsRepository(data)
	draftRepo := memory.NewDraftRepository(data)
	gameRepo := memory.NewGameRepository(data)
	dispatchRepo := memory.NewJobDispatchRepository(data)

	ingestion := usecase.NewIngestionService(nil, gameRepo, oddsRepo, standingRepo, teamRepo, data, calendar, usecase.IngestionConfig{}, logging.NewNop())
	jobs := usecase.NewJobService(ingestion, nil, nil, dispatchRepo, nil, usecase.JobServiceConfig{}, logging.NewNop())

	handler := NewHandler(
		usecase.NewDraftService(draftRepo),
		usecase.NewStandingService(standingRepo),
		usecase.NewTeamService(teamRepo),
		usecase.NewOddsService(oddsRepo, oddsRepo, calendar),
		jobs,
		data,
		logging.NewNop(),
	)

	return NewRouter(handler, logging.NewNop(), RouterConfig{InternalJobToken: testJobToken}), data
}

func doRequest(t *testing.T, router http.Handler, method, target, body string, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var out envelope
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec, body := doRequest(t, router, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2.0", body.APIVersion)
}

func TestRouter_Readyz(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec, _ := doRequest(t, router, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ListDraftPicks_OrderedByPickNumber(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec, body := doRequest(t, router, http.MethodGet, "/v1/draft-picks", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	items, ok := body.Data.([]any)
	require.True(t, ok)
	require.Len(t, items, 8)
	for i, item := range items {
		pick := item.(map[string]any)
		assert.EqualValues(t, i+1, pick["pickNumber"])
	}
}

func TestRouter_TheoreticalWins(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec, body := doRequest(t, router, http.MethodGet, "/v1/theoretical-wins", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	results := body.Data.(map[string]any)
	require.Len(t, results, 4)

	alex := results["1"].(map[string]any)
	assert.Equal(t, "alex", alex["userName"])
	assert.EqualValues(t, 2, alex["totalWins"])

	teams := alex["teams"].([]any)
	require.Len(t, teams, 2)
	assert.Equal(t, "Chiefs", teams[0].(map[string]any)["teamName"])
	assert.Equal(t, "Ravens", teams[1].(map[string]any)["teamName"])
}

func TestRouter_TheoreticalWinTotals(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec, body := doRequest(t, router, http.MethodGet, "/v1/theoretical-wins/totals", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	totals := body.Data.(map[string]any)
	assert.EqualValues(t, 2, totals["1"])
	assert.EqualValues(t, 3, totals["2"])
	assert.EqualValues(t, 3, totals["3"])
	assert.EqualValues(t, 2, totals["4"])
}

func TestRouter_ListStandings_OrderedByOverallRank(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec, body := doRequest(t, router, http.MethodGet, "/v1/standings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	items := body.Data.([]any)
	require.Len(t, items, 8)
	assert.Equal(t, "KC", items[0].(map[string]any)["abbreviation"])
	assert.Equal(t, "BAL", items[7].(map[string]any)["abbreviation"])
}

func TestRouter_UserWinTotals(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec, body := doRequest(t, router, http.MethodGet, "/v1/user-win-totals", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	items := body.Data.([]any)
	require.Len(t, items, 4)
	first := items[0].(map[string]any)
	assert.NotNil(t, first["winPercentage"])
}

func TestRouter_ListWeeklyOdds_FormatsInLeagueTimeZone(t *testing.T) {
	t.Parallel()

	router, data := newTestRouter(t)
	away, home := 150, -150
	err := memory.NewOddsRepository(data).UpsertLines(context.Background(), []odds.GameLine{{
		GameID:               9001,
		Week:                 2,
		StartTime:            time.Date(2024, 9, 16, 0, 15, 0, 0, time.UTC),
		AwayTeamAbbreviation: "BAL",
		HomeTeamAbbreviation: "KC",
		SourceName:           "Bovada",
		MoneyLineAway:        &away,
		MoneyLineHome:        &home,
		DateFetched:          time.Date(2024, 9, 15, 12, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)

	rec, body := doRequest(t, router, http.MethodGet, "/v1/odds?week=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := body.Data.(map[string]any)
	assert.EqualValues(t, 2, payload["week"])
	games := payload["games"].([]any)
	require.Len(t, games, 1)

	game := games[0].(map[string]any)
	assert.Equal(t, "Ravens", game["awayTeamName"])
	assert.Equal(t, "Chiefs", game["homeTeamName"])
	assert.Equal(t, "2024-09-15", game["startDate"])
	assert.Equal(t, "19:15:00", game["startTime"])
	assert.Equal(t, "07:00:00", game["dateFetchedTime"])
}

func TestRouter_ExpectedWins(t *testing.T) {
	t.Parallel()

	router, data := newTestRouter(t)
	away, home := 150, -150
	err := memory.NewOddsRepository(data).UpsertLines(context.Background(), []odds.GameLine{{
		GameID:               9001,
		Week:                 2,
		StartTime:            time.Date(2024, 9, 16, 0, 15, 0, 0, time.UTC),
		AwayTeamAbbreviation: "BAL",
		HomeTeamAbbreviation: "KC",
		SourceName:           "Bovada",
		MoneyLineAway:        &away,
		MoneyLineHome:        &home,
	}})
	require.NoError(t, err)

	rec, body := doRequest(t, router, http.MethodGet, "/v1/expected-wins?week=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	users := body.Data.(map[string]any)["users"].([]any)
	require.Len(t, users, 4)

	first := users[0].(map[string]any)
	assert.Equal(t, "alex", first["userName"])
	assert.EqualValues(t, 0.6, first["totalExpectedWins"])

	second := users[1].(map[string]any)
	assert.Equal(t, "casey", second["userName"])
	assert.EqualValues(t, 0.4, second["totalExpectedWins"])
}

func TestRouter_WeekQueryValidation(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	for _, target := range []string{"/v1/odds?week=0", "/v1/odds?week=19", "/v1/expected-wins?week=abc"} {
		rec, body := doRequest(t, router, http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		require.NotNil(t, body.Error, target)
		assert.Equal(t, "INVALID_ARGUMENT", body.Error.Status, target)
	}
}

func TestRouter_CurrentWeek(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec, body := doRequest(t, router, http.MethodGet, "/v1/weeks/current", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	info := body.Data.(map[string]any)
	assert.EqualValues(t, 18, info["weeks"])
	assert.Equal(t, "America/Chicago", info["timeZone"])
	week := info["week"].(float64)
	assert.True(t, week >= 1 && week <= 18)
}

func TestRouter_InternalJobs_RequireToken(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec, _ := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/keep-alive", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doRequest(t, router, http.MethodPost, "/v1/internal/jobs/keep-alive", "", map[string]string{"X-Internal-Job-Token": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_InternalJobs_RunKeepAliveAndListDispatches(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	headers := map[string]string{"X-Internal-Job-Token": testJobToken}

	rec, body := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/keep-alive", `{"dispatch_id":"manual-1"}`, headers)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := body.Data.(map[string]any)
	assert.Equal(t, "keep-alive", result["job"])
	assert.Equal(t, "success", result["status"])

	rec, body = doRequest(t, router, http.MethodGet, "/v1/internal/jobs/dispatches?limit=5", "", headers)
	require.Equal(t, http.StatusOK, rec.Code)
	events := body.Data.([]any)
	require.Len(t, events, 1)
	event := events[0].(map[string]any)
	assert.Equal(t, "manual-1", event["dispatchId"])
	assert.Equal(t, "completed", event["status"])
}

func TestRouter_InternalJobs_RejectsBadInput(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	headers := map[string]string{"X-Internal-Job-Token": testJobToken}

	rec, _ := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/sync-players", "", headers)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doRequest(t, router, http.MethodPost, "/v1/internal/jobs/sync-odds", `{"week":0}`, headers)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doRequest(t, router, http.MethodPost, "/v1/internal/jobs/sync-games", `{"date":"15/09/2024"}`, headers)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doRequest(t, router, http.MethodPost, "/v1/internal/jobs/sync-games", `{"league":"nfl"}`, headers)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecoverPanic_WritesInternalError(t *testing.T) {
	t.Parallel()

	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/standings", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestRouter_SwaggerRoutesFollowConfig(t *testing.T) {
	handler := NewHandler(nil, nil, nil, nil, nil, nil, logging.NewNop())

	enabled := NewRouter(handler, logging.NewNop(), RouterConfig{SwaggerEnabled: true})
	rec := httptest.NewRecorder()
	enabled.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/v1/expected-wins")

	disabled := NewRouter(handler, logging.NewNop(), RouterConfig{})
	rec = httptest.NewRecorder()
	disabled.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
