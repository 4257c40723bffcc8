package odds

import (
	"math"
	"testing"
)

func TestImpliedWinProbability(t *testing.T) {
	tests := []struct {
		name      string
		moneyline int
		want      float64
	}{
		{name: "favorite", moneyline: -110, want: 110.0 / 210.0},
		{name: "heavy favorite", moneyline: -400, want: 0.8},
		{name: "underdog", moneyline: 150, want: 0.4},
		{name: "even", moneyline: 100, want: 0.5},
		{name: "zero line", moneyline: 0, want: 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ImpliedWinProbability(tc.moneyline)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("ImpliedWinProbability(%d) = %v, want %v", tc.moneyline, got, tc.want)
			}
		})
	}

	if got := ImpliedWinProbability(-110); math.Abs(got-0.5238) > 1e-4 {
		t.Fatalf("expected ~0.5238, got %v", got)
	}
}

func TestExpectedWins(t *testing.T) {
	ownerships := []Ownership{
		{UserID: 1, UserName: "alice", TeamID: 10, TeamAbbreviation: "KC"},
		{UserID: 1, UserName: "alice", TeamID: 11, TeamAbbreviation: "BUF"},
		{UserID: 2, UserName: "bob", TeamID: 12, TeamAbbreviation: "BAL"},
		{UserID: 3, UserName: "carol", TeamID: 13, TeamAbbreviation: "NYJ"},
	}
	lines := []GameLine{
		{GameID: 100, Week: 1, HomeTeamAbbreviation: "KC", AwayTeamAbbreviation: "BAL", MoneyLineHome: intPtr(-150), MoneyLineAway: intPtr(130)},
		{GameID: 101, Week: 1, HomeTeamAbbreviation: "BUF", AwayTeamAbbreviation: "ARI", MoneyLineHome: intPtr(-300), MoneyLineAway: intPtr(240)},
	}

	got := ExpectedWins(ownerships, lines)
	if len(got) != 3 {
		t.Fatalf("expected three users, got %+v", got)
	}

	// KC 0.6 + BUF 0.75
	if got[0].UserID != 1 || got[0].TotalExpectedWins != 1.35 {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	// BAL 100/230
	if got[1].UserID != 2 || got[1].TotalExpectedWins != 0.43 {
		t.Fatalf("unexpected second row: %+v", got[1])
	}
	if got[2].UserID != 3 || got[2].UserName != "carol" || got[2].TotalExpectedWins != 0 {
		t.Fatalf("expected owner without a line to total 0, got %+v", got[2])
	}
}

func TestExpectedWins_MissingMoneylineContributesNothing(t *testing.T) {
	ownerships := []Ownership{{UserID: 5, UserName: "dan", TeamAbbreviation: "SEA"}}
	lines := []GameLine{{HomeTeamAbbreviation: "SEA", AwayTeamAbbreviation: "DEN", MoneyLineAway: intPtr(-120)}}

	got := ExpectedWins(ownerships, lines)
	if len(got) != 1 || got[0].TotalExpectedWins != 0 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestExpectedWins_TiesOrderedByUserID(t *testing.T) {
	ownerships := []Ownership{
		{UserID: 9, UserName: "z", TeamAbbreviation: "MIA"},
		{UserID: 4, UserName: "y", TeamAbbreviation: "JAX"},
	}
	lines := []GameLine{{HomeTeamAbbreviation: "MIA", AwayTeamAbbreviation: "JAX", MoneyLineHome: intPtr(100), MoneyLineAway: intPtr(100)}}

	got := ExpectedWins(ownerships, lines)
	if len(got) != 2 || got[0].UserID != 4 || got[1].UserID != 9 {
		t.Fatalf("expected tie broken by user id, got %+v", got)
	}
	if got[0].TotalExpectedWins != 0.5 {
		t.Fatalf("unexpected total: %+v", got[0])
	}
}

func TestExpectedWins_RoundsHalfAwayFromZero(t *testing.T) {
	ownerships := []Ownership{{UserID: 1, UserName: "a", TeamAbbreviation: "LV"}}
	// 100/(300+100) = 0.25, 100/(60+100) = 0.625 -> 0.875 -> 0.88
	lines := []GameLine{
		{HomeTeamAbbreviation: "LV", AwayTeamAbbreviation: "LAC", MoneyLineHome: intPtr(300)},
		{HomeTeamAbbreviation: "DEN", AwayTeamAbbreviation: "LV", MoneyLineAway: intPtr(60)},
	}

	got := ExpectedWins(ownerships, lines)
	if got[0].TotalExpectedWins != 0.88 {
		t.Fatalf("expected 0.88, got %v", got[0].TotalExpectedWins)
	}
}

func TestGameLine_MoneyLineFor(t *testing.T) {
	line := GameLine{HomeTeamAbbreviation: "GB", AwayTeamAbbreviation: "CHI", MoneyLineHome: intPtr(-200), MoneyLineAway: intPtr(170)}

	if ml, ok := line.MoneyLineFor("CHI"); !ok || ml != 170 {
		t.Fatalf("expected away line, got %d %v", ml, ok)
	}
	if _, ok := line.MoneyLineFor("MIN"); ok {
		t.Fatalf("expected no line for team outside the game")
	}
	if _, ok := line.MoneyLineFor(""); ok {
		t.Fatalf("expected no line for empty abbreviation")
	}
}

func intPtr(v int) *int { return &v }
