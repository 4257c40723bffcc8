package standing

// Standing is the current regular season record of one NFL team.
// Rank fields are nil when the provider has not ranked the team yet.
type Standing struct {
	TeamID            int64
	Abbreviation      string
	Wins              int
	Losses            int
	Ties              int
	OTWins            int
	OTLosses          int
	WinPct            float64
	PointsFor         int
	PointsAgainst     int
	PointDifferential int
	Conference        string
	ConferenceRank    *int
	GamesBack         float64
	Division          string
	DivisionRank      *int
	PlayoffRank       *int
	OverallRank       *int
	HomeWins          int
	AwayWins          int
	Streak            string
	OfficialLogoURL   string
	SocialMedia       string
}

// OwnedRecord is the record of one team owned by a user.
type OwnedRecord struct {
	UserID   int64
	UserName string
	TeamID   int64
	Wins     int
	Losses   int
	Ties     int
}

// UserRecord totals the records of every team a user owns. WinPercentage is
// nil when none of the user's teams has played.
type UserRecord struct {
	UserID        int64
	UserName      string
	Wins          int
	Losses        int
	Ties          int
	WinPercentage *float64
}
