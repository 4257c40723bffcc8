package draft

// Pick is one draft slot: the user choosing and where in the order they choose.
type Pick struct {
	UserID       int64
	UserName     string
	PickPosition int
}

// RankedTeam is a drafted team with its current record position.
// OverallRank 1 is the best record.
type RankedTeam struct {
	TeamID      int64
	TeamName    string
	Wins        int
	OverallRank int
}

type AssignedTeam struct {
	TeamID   int64
	TeamName string
	Wins     int
}

// UserDraftResult is the outcome of a draft re-run for one user.
type UserDraftResult struct {
	UserID    int64
	UserName  string
	Teams     []AssignedTeam
	TotalWins int
}

// DraftPick is the stored draft selection row.
type DraftPick struct {
	ID           int64
	UserID       int64
	TeamID       int64
	PickNumber   int
	PickPosition int
}

// StandingRow joins a draft pick with the picking user and the current
// standing of the picked team.
type StandingRow struct {
	PickPosition int
	UserID       int64
	UserName     string
	TeamID       int64
	TeamName     string
	OverallRank  int
	Wins         int
}
