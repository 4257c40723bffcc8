package odds

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ImpliedWinProbability converts an American moneyline into the implied
// chance of winning. Favorites (negative lines) use -ml/(-ml+100); everything
// else uses 100/(ml+100), so a zero line reads as 0.5.
func ImpliedWinProbability(moneyline int) float64 {
	if moneyline < 0 {
		favorite := float64(-moneyline)
		return favorite / (favorite + 100)
	}
	return 100 / (float64(moneyline) + 100)
}

// ExpectedWins sums the implied win probability of every owned team across
// the given lines. A team matches a line by abbreviation on either side; a
// team without a line, or whose side has no moneyline, adds nothing. Every
// user with at least one ownership appears in the result. Totals are rounded
// half away from zero to two places and sorted descending, then by user id.
func ExpectedWins(ownerships []Ownership, lines []GameLine) []UserExpectedWins {
	type accumulator struct {
		name  string
		total decimal.Decimal
	}

	byUser := make(map[int64]*accumulator, len(ownerships))
	for _, owned := range ownerships {
		acc, ok := byUser[owned.UserID]
		if !ok {
			acc = &accumulator{name: owned.UserName, total: decimal.Zero}
			byUser[owned.UserID] = acc
		}
		for _, line := range lines {
			ml, ok := line.MoneyLineFor(owned.TeamAbbreviation)
			if !ok {
				continue
			}
			acc.total = acc.total.Add(decimal.NewFromFloat(ImpliedWinProbability(ml)))
		}
	}

	out := make([]UserExpectedWins, 0, len(byUser))
	for userID, acc := range byUser {
		out = append(out, UserExpectedWins{
			UserID:            userID,
			UserName:          acc.name,
			TotalExpectedWins: acc.total.Round(2).InexactFloat64(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalExpectedWins != out[j].TotalExpectedWins {
			return out[i].TotalExpectedWins > out[j].TotalExpectedWins
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

// MoneyLineFor returns the moneyline of the side played by abbreviation.
// Home is checked first.
func (l GameLine) MoneyLineFor(abbreviation string) (int, bool) {
	if abbreviation == "" {
		return 0, false
	}
	switch abbreviation {
	case l.HomeTeamAbbreviation:
		if l.MoneyLineHome == nil {
			return 0, false
		}
		return *l.MoneyLineHome, true
	case l.AwayTeamAbbreviation:
		if l.MoneyLineAway == nil {
			return 0, false
		}
		return *l.MoneyLineAway, true
	default:
		return 0, false
	}
}
