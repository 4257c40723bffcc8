package draft

import "sort"

// AssignTeams re-runs the draft as if every pick had taken the best team
// still available. Picks are walked by ascending PickPosition and each one
// receives the first unassigned team by ascending OverallRank. A pick that
// finds no team left still yields an entry with no teams.
//
// PickPosition and OverallRank values are expected to be distinct; duplicate
// values fall back to input order. Neither input slice is modified.
func AssignTeams(picks []Pick, rankedTeams []RankedTeam) map[int64]UserDraftResult {
	orderedPicks := append([]Pick(nil), picks...)
	sort.SliceStable(orderedPicks, func(i, j int) bool {
		return orderedPicks[i].PickPosition < orderedPicks[j].PickPosition
	})

	orderedTeams := append([]RankedTeam(nil), rankedTeams...)
	sort.SliceStable(orderedTeams, func(i, j int) bool {
		return orderedTeams[i].OverallRank < orderedTeams[j].OverallRank
	})

	out := make(map[int64]UserDraftResult, len(orderedPicks))
	assigned := make(map[int64]struct{}, len(orderedTeams))
	for _, pick := range orderedPicks {
		result, ok := out[pick.UserID]
		if !ok {
			result = UserDraftResult{
				UserID:   pick.UserID,
				UserName: pick.UserName,
				Teams:    []AssignedTeam{},
			}
		}

		for _, team := range orderedTeams {
			if _, taken := assigned[team.TeamID]; taken {
				continue
			}
			assigned[team.TeamID] = struct{}{}
			result.Teams = append(result.Teams, AssignedTeam{
				TeamID:   team.TeamID,
				TeamName: team.TeamName,
				Wins:     team.Wins,
			})
			result.TotalWins += team.Wins
			break
		}

		out[pick.UserID] = result
	}

	return out
}

// AggregateWins folds assignment results down to total wins per user.
func AggregateWins(results map[int64]UserDraftResult) map[int64]int {
	out := make(map[int64]int, len(results))
	for userID, result := range results {
		total := 0
		for _, team := range result.Teams {
			total += team.Wins
		}
		out[userID] = total
	}
	return out
}

// SplitStandingRows turns joined draft rows into engine inputs: one pick per
// row and one ranked team per distinct team id.
func SplitStandingRows(rows []StandingRow) ([]Pick, []RankedTeam) {
	picks := make([]Pick, 0, len(rows))
	teams := make([]RankedTeam, 0, len(rows))
	seen := make(map[int64]struct{}, len(rows))
	for _, row := range rows {
		picks = append(picks, Pick{
			UserID:       row.UserID,
			UserName:     row.UserName,
			PickPosition: row.PickPosition,
		})
		if _, ok := seen[row.TeamID]; ok {
			continue
		}
		seen[row.TeamID] = struct{}{}
		teams = append(teams, RankedTeam{
			TeamID:      row.TeamID,
			TeamName:    row.TeamName,
			Wins:        row.Wins,
			OverallRank: row.OverallRank,
		})
	}
	return picks, teams
}
