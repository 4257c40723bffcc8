package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/standing"
	standingmock "github.com/riskibarqy/nfl-draft-league/internal/mocks/domain/standing"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStandingService_UserWinTotals_UsingMockery(t *testing.T) {
	t.Parallel()

	standingRepo := standingmock.NewRepository(t)
	service := NewStandingService(standingRepo)

	standingRepo.
		On("ListOwnedRecords", mock.Anything).
		Return([]standing.OwnedRecord{
			{UserID: 1, UserName: "Alice", TeamID: 10, Wins: 3, Losses: 1},
			{UserID: 1, UserName: "Alice", TeamID: 20, Wins: 1, Losses: 3},
			{UserID: 2, UserName: "Bob", TeamID: 30, Wins: 4, Losses: 0},
			{UserID: 3, UserName: "Cara", TeamID: 40},
		}, nil).
		Once()

	got, err := service.UserWinTotals(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, int64(2), got[0].UserID)
	require.Equal(t, int64(1), got[1].UserID)
	require.NotNil(t, got[1].WinPercentage)
	require.InDelta(t, 0.5, *got[1].WinPercentage, 1e-9)
	require.Equal(t, 4, got[1].Wins)
	require.Nil(t, got[2].WinPercentage)
}
