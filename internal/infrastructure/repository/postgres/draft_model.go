package postgres

type draftPickModel struct {
	ID           int64 `db:"id"`
	UserID       int64 `db:"user_id"`
	TeamID       int64 `db:"team_id"`
	PickNumber   int   `db:"pick_number"`
	PickPosition int   `db:"pick_position"`
}

type draftStandingRow struct {
	PickPosition int    `db:"pick_position"`
	UserID       int64  `db:"user_id"`
	UserName     string `db:"user_name"`
	TeamID       int64  `db:"team_id"`
	TeamName     string `db:"team_name"`
	OverallRank  int    `db:"overall_rank"`
	Wins         int    `db:"wins"`
}
