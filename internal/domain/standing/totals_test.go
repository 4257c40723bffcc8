package standing

import (
	"math"
	"testing"
)

func TestUserTotals(t *testing.T) {
	records := []OwnedRecord{
		{UserID: 1, UserName: "alice", TeamID: 10, Wins: 10, Losses: 7},
		{UserID: 2, UserName: "bob", TeamID: 11, Wins: 14, Losses: 3},
		{UserID: 1, UserName: "alice", TeamID: 12, Wins: 4, Losses: 12, Ties: 1},
		{UserID: 3, UserName: "carol", TeamID: 13},
		{UserID: 4, UserName: "dave", TeamID: 14, Wins: 14, Losses: 3},
	}

	got := UserTotals(records)
	if len(got) != 4 {
		t.Fatalf("expected 4 users, got %d", len(got))
	}

	wantOrder := []int64{2, 4, 1, 3}
	for i, userID := range wantOrder {
		if got[i].UserID != userID {
			t.Fatalf("position %d: got user %d, want %d (%+v)", i, got[i].UserID, userID, got)
		}
	}

	alice := got[2]
	if alice.Wins != 14 || alice.Losses != 19 || alice.Ties != 1 {
		t.Fatalf("unexpected totals for alice: %+v", alice)
	}
	if alice.WinPercentage == nil || math.Abs(*alice.WinPercentage-14.0/34.0) > 1e-9 {
		t.Fatalf("unexpected win percentage for alice: %v", alice.WinPercentage)
	}
	if got[3].WinPercentage != nil {
		t.Fatalf("expected nil win percentage for user without games, got %v", *got[3].WinPercentage)
	}
}

func TestUserTotals_Empty(t *testing.T) {
	if got := UserTotals(nil); len(got) != 0 {
		t.Fatalf("expected no rows, got %+v", got)
	}
}
