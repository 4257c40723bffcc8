package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/draft"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/odds"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/standing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftRepository_SeededStandingRowsFeedEngine(t *testing.T) {
	t.Parallel()

	repo := NewDraftRepository(NewSeededDataset())
	rows, err := repo.ListStandingRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 8)
	assert.Equal(t, 1, rows[0].PickPosition)

	picks, teams := draft.SplitStandingRows(rows)
	results := draft.AssignTeams(picks, teams)
	require.Len(t, results, 4)

	// alex picks first and last in the seeded draft.
	alex := results[1]
	require.Len(t, alex.Teams, 2)
	assert.Equal(t, "Chiefs", alex.Teams[0].TeamName)
	assert.Equal(t, "Ravens", alex.Teams[1].TeamName)
	assert.Equal(t, 2, alex.TotalWins)
}

func TestStandingRepository_OwnedRecordsDefaultToZero(t *testing.T) {
	t.Parallel()

	ds := NewDataset(
		[]User{{ID: 1, UserName: "alex"}},
		nil,
		nil,
		[]UserTeam{{UserID: 1, TeamID: 62}, {UserID: 1, TeamID: 99}},
		[]standing.Standing{{TeamID: 62, Wins: 3, Losses: 1}},
	)
	records, err := NewStandingRepository(ds).ListOwnedRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []standing.OwnedRecord{
		{UserID: 1, UserName: "alex", TeamID: 62, Wins: 3, Losses: 1},
		{UserID: 1, UserName: "alex", TeamID: 99},
	}, records)
}

func TestOddsRepository_UpsertKeepsIDAndResolvesNames(t *testing.T) {
	t.Parallel()

	ds := NewSeededDataset()
	repo := NewOddsRepository(ds)
	ctx := context.Background()
	start := time.Date(2024, 9, 15, 17, 0, 0, 0, time.UTC)
	ml := func(v int) *int { return &v }

	require.NoError(t, repo.UpsertLines(ctx, []odds.GameLine{
		{GameID: 501, Week: 2, StartTime: start, AwayTeamAbbreviation: "BAL", HomeTeamAbbreviation: "KC", SourceName: "Bovada", MoneyLineAway: ml(150)},
	}))
	require.NoError(t, repo.UpsertLines(ctx, []odds.GameLine{
		{GameID: 501, Week: 2, StartTime: start, AwayTeamAbbreviation: "BAL", HomeTeamAbbreviation: "KC", SourceName: "Bovada", MoneyLineAway: ml(140)},
	}))

	lines, err := repo.ListByWeek(ctx, 2)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1), lines[0].ID)
	assert.Equal(t, 140, *lines[0].MoneyLineAway)
	assert.Equal(t, "Ravens", lines[0].AwayTeamName)
	assert.Equal(t, "Chiefs", lines[0].HomeTeamName)

	empty, err := repo.ListByWeek(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestJobDispatchRepository_KeepsPayloadAcrossEvents(t *testing.T) {
	t.Parallel()

	repo := NewJobDispatchRepository(NewSeededDataset())
	ctx := context.Background()
	sentAt := time.Date(2024, 9, 15, 4, 25, 0, 0, time.UTC)

	require.NoError(t, repo.UpsertEvent(ctx, jobscheduler.DispatchEvent{
		DispatchID: "d-1",
		JobName:    "sync-odds",
		Status:     jobscheduler.StatusSent,
		Payload:    map[string]any{"week": 2},
		OccurredAt: sentAt,
	}))
	require.NoError(t, repo.UpsertEvent(ctx, jobscheduler.DispatchEvent{
		DispatchID: "d-1",
		JobName:    "sync-odds",
		Status:     jobscheduler.StatusCompleted,
		Records:    16,
		OccurredAt: sentAt.Add(time.Minute),
	}))

	events, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, jobscheduler.StatusCompleted, events[0].Status)
	assert.Equal(t, 16, events[0].Records)
	assert.Equal(t, map[string]any{"week": 2}, events[0].Payload)

	err = repo.UpsertEvent(ctx, jobscheduler.DispatchEvent{DispatchID: " "})
	require.Error(t, err)
}
