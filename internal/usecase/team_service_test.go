package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/team"
	teammock "github.com/riskibarqy/nfl-draft-league/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTeamService_List(t *testing.T) {
	t.Parallel()

	repo := teammock.NewRepository(t)
	repo.On("List", mock.Anything).
		Return([]team.Team{{ID: 62, City: "Detroit", Name: "Lions", Abbreviation: "DET"}}, nil).
		Once()

	got, err := NewTeamService(repo).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "DET", got[0].Abbreviation)
}

func TestTeamService_ListStats(t *testing.T) {
	t.Parallel()

	repo := teammock.NewRepository(t)
	repo.On("ListStats", mock.Anything).
		Return([]team.StatsView{{
			Stats:        team.Stats{TeamID: 62, GamesPlayed: 17, Wins: 15, Losses: 2},
			TeamName:     "Lions",
			Abbreviation: "DET",
			City:         "Detroit",
		}}, nil).
		Once()

	got, err := NewTeamService(repo).ListStats(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 15, got[0].Wins)
	require.Equal(t, "Lions", got[0].TeamName)
}

func TestTeamService_WrapsRepositoryErrors(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("connection reset")
	repo := teammock.NewRepository(t)
	repo.On("List", mock.Anything).Return(nil, dbErr).Once()
	repo.On("ListStats", mock.Anything).Return(nil, dbErr).Once()

	service := NewTeamService(repo)

	_, err := service.List(context.Background())
	require.ErrorIs(t, err, dbErr)
	require.ErrorContains(t, err, "list teams")

	_, err = service.ListStats(context.Background())
	require.ErrorIs(t, err, dbErr)
	require.ErrorContains(t, err, "list team stats")
}
