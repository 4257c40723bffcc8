package standing

import "sort"

// UserTotals sums owned team records per user. The result is ordered by win
// percentage descending with users that have no games last; equal values
// fall back to user id.
func UserTotals(records []OwnedRecord) []UserRecord {
	byUser := make(map[int64]*UserRecord, len(records))
	order := make([]int64, 0, len(records))
	for _, rec := range records {
		total, ok := byUser[rec.UserID]
		if !ok {
			total = &UserRecord{UserID: rec.UserID, UserName: rec.UserName}
			byUser[rec.UserID] = total
			order = append(order, rec.UserID)
		}
		total.Wins += rec.Wins
		total.Losses += rec.Losses
		total.Ties += rec.Ties
	}

	out := make([]UserRecord, 0, len(order))
	for _, userID := range order {
		total := byUser[userID]
		if games := total.Wins + total.Losses + total.Ties; games > 0 {
			pct := float64(total.Wins) / float64(games)
			total.WinPercentage = &pct
		}
		out = append(out, *total)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].WinPercentage, out[j].WinPercentage
		switch {
		case a == nil && b == nil:
			return out[i].UserID < out[j].UserID
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a > *b
		default:
			return out[i].UserID < out[j].UserID
		}
	})
	return out
}
