package game

import (
	"fmt"
	"time"
)

// Game is one scheduled NFL game.
type Game struct {
	ID                       int64
	Week                     int
	StartTime                time.Time
	EndedTime                *time.Time
	AwayTeamID               int64
	HomeTeamID               int64
	VenueID                  *int64
	VenueAllegiance          string
	ScheduleStatus           string
	OriginalStartTime        *time.Time
	DelayedOrPostponedReason string
	PlayedStatus             string
	AwayScoreTotal           *int
	HomeScoreTotal           *int
}

func (g Game) Validate() error {
	if g.ID <= 0 {
		return fmt.Errorf("game id is required")
	}
	if g.Week <= 0 {
		return fmt.Errorf("game week is required")
	}
	if g.StartTime.IsZero() {
		return fmt.Errorf("game start time is required")
	}
	if g.AwayTeamID <= 0 || g.HomeTeamID <= 0 {
		return fmt.Errorf("game teams are required")
	}

	return nil
}
