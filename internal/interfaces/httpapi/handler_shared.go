package httpapi

import (
	"strconv"
	"time"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/draft"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/odds"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/standing"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/team"
	"github.com/riskibarqy/nfl-draft-league/internal/usecase"
)

const (
	displayDateLayout = "2006-01-02"
	displayTimeLayout = "15:04:05"
)

type draftPickDTO struct {
	ID           int64 `json:"id"`
	UserID       int64 `json:"userId"`
	TeamID       int64 `json:"teamId"`
	PickNumber   int   `json:"pickNumber"`
	PickPosition int   `json:"pickPosition"`
}

type standingDTO struct {
	TeamID            int64   `json:"teamId"`
	Abbreviation      string  `json:"abbreviation"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	Ties              int     `json:"ties"`
	OTWins            int     `json:"otWins"`
	OTLosses          int     `json:"otLosses"`
	WinPct            float64 `json:"winPct"`
	PointsFor         int     `json:"pointsFor"`
	PointsAgainst     int     `json:"pointsAgainst"`
	PointDifferential int     `json:"pointDifferential"`
	Conference        string  `json:"conference"`
	ConferenceRank    *int    `json:"conferenceRank"`
	GamesBack         float64 `json:"gamesBack"`
	Division          string  `json:"division"`
	DivisionRank      *int    `json:"divisionRank"`
	PlayoffRank       *int    `json:"playoffRank"`
	OverallRank       *int    `json:"overallRank"`
	HomeWins          int     `json:"homeWins"`
	AwayWins          int     `json:"awayWins"`
	Streak            string  `json:"streak"`
	OfficialLogoURL   string  `json:"officialLogoUrl"`
	SocialMedia       string  `json:"socialMedia"`
}

type teamStatsDTO struct {
	TeamID                 int64   `json:"teamId"`
	TeamName               string  `json:"teamName"`
	Abbreviation           string  `json:"abbreviation"`
	City                   string  `json:"city"`
	GamesPlayed            int     `json:"gamesPlayed"`
	Wins                   int     `json:"wins"`
	Losses                 int     `json:"losses"`
	PointsFor              int     `json:"pointsFor"`
	PointsAgainst          int     `json:"pointsAgainst"`
	PassingAttempts        int     `json:"passingAttempts"`
	PassingCompletions     int     `json:"passingCompletions"`
	PassingYards           int     `json:"passingYards"`
	RushingAttempts        int     `json:"rushingAttempts"`
	RushingYards           int     `json:"rushingYards"`
	ReceivingYards         int     `json:"receivingYards"`
	Tackles                int     `json:"tackles"`
	Interceptions          int     `json:"interceptions"`
	Fumbles                int     `json:"fumbles"`
	KickoffReturns         int     `json:"kickoffReturns"`
	PuntReturns            int     `json:"puntReturns"`
	FieldGoalsMade         int     `json:"fieldGoalsMade"`
	FieldGoalsAttempted    int     `json:"fieldGoalsAttempted"`
	ExtraPointsMade        int     `json:"extraPointsMade"`
	ExtraPointsAttempted   int     `json:"extraPointsAttempted"`
	OffensePlays           int     `json:"offensePlays"`
	OffenseYards           int     `json:"offenseYards"`
	OffenseAvgYardsPerPlay float64 `json:"offenseAvgYardsPerPlay"`
	TotalTD                int     `json:"totalTd"`
}

type assignedTeamDTO struct {
	TeamID   int64  `json:"teamId"`
	TeamName string `json:"teamName"`
	Wins     int    `json:"wins"`
}

type userDraftResultDTO struct {
	UserID    int64             `json:"userId"`
	UserName  string            `json:"userName"`
	Teams     []assignedTeamDTO `json:"teams"`
	TotalWins int               `json:"totalWins"`
}

type userRecordDTO struct {
	UserID        int64    `json:"userId"`
	UserName      string   `json:"userName"`
	Wins          int      `json:"wins"`
	Losses        int      `json:"losses"`
	Ties          int      `json:"ties"`
	WinPercentage *float64 `json:"winPercentage"`
}

type gameLineDTO struct {
	ID                   int64    `json:"id"`
	GameID               int64    `json:"gameId"`
	Week                 int      `json:"week"`
	AwayTeamAbbreviation string   `json:"awayTeamAbbreviation"`
	AwayTeamName         string   `json:"awayTeamName"`
	HomeTeamAbbreviation string   `json:"homeTeamAbbreviation"`
	HomeTeamName         string   `json:"homeTeamName"`
	SourceName           string   `json:"sourceName"`
	MoneyLineAway        *int     `json:"moneyLineAway"`
	MoneyLineHome        *int     `json:"moneyLineHome"`
	PointSpreadAway      *float64 `json:"pointSpreadAway"`
	PointSpreadHome      *float64 `json:"pointSpreadHome"`
	OverUnder            *float64 `json:"overUnder"`
	StartTimeUTC         string   `json:"startTimeUtc"`
	StartDate            string   `json:"startDate"`
	StartTime            string   `json:"startTime"`
	DateFetchedDate      string   `json:"dateFetchedDate"`
	DateFetchedTime      string   `json:"dateFetchedTime"`
}

type weeklyOddsDTO struct {
	Week  int           `json:"week"`
	Games []gameLineDTO `json:"games"`
}

type userExpectedWinsDTO struct {
	UserID            int64   `json:"userId"`
	UserName          string  `json:"userName"`
	TotalExpectedWins float64 `json:"totalExpectedWins"`
}

type weeklyExpectedWinsDTO struct {
	Week  int                   `json:"week"`
	Users []userExpectedWinsDTO `json:"users"`
}

type currentWeekDTO struct {
	Week     int    `json:"week"`
	Weeks    int    `json:"weeks"`
	TimeZone string `json:"timeZone"`
}

type jobDispatchDTO struct {
	DispatchID    string         `json:"dispatchId"`
	JobName       string         `json:"jobName"`
	JobPath       string         `json:"jobPath"`
	Status        string         `json:"status"`
	Payload       map[string]any `json:"payload"`
	Records       int            `json:"records"`
	ErrorMessage  string         `json:"errorMessage,omitempty"`
	OccurredAtUTC string         `json:"occurredAtUtc"`
	TraceID       string         `json:"traceId,omitempty"`
	SpanID        string         `json:"spanId,omitempty"`
}

func draftPickToDTO(v draft.DraftPick) draftPickDTO {
	return draftPickDTO{
		ID:           v.ID,
		UserID:       v.UserID,
		TeamID:       v.TeamID,
		PickNumber:   v.PickNumber,
		PickPosition: v.PickPosition,
	}
}

func standingToDTO(v standing.Standing) standingDTO {
	return standingDTO{
		TeamID:            v.TeamID,
		Abbreviation:      v.Abbreviation,
		Wins:              v.Wins,
		Losses:            v.Losses,
		Ties:              v.Ties,
		OTWins:            v.OTWins,
		OTLosses:          v.OTLosses,
		WinPct:            v.WinPct,
		PointsFor:         v.PointsFor,
		PointsAgainst:     v.PointsAgainst,
		PointDifferential: v.PointDifferential,
		Conference:        v.Conference,
		ConferenceRank:    v.ConferenceRank,
		GamesBack:         v.GamesBack,
		Division:          v.Division,
		DivisionRank:      v.DivisionRank,
		PlayoffRank:       v.PlayoffRank,
		OverallRank:       v.OverallRank,
		HomeWins:          v.HomeWins,
		AwayWins:          v.AwayWins,
		Streak:            v.Streak,
		OfficialLogoURL:   v.OfficialLogoURL,
		SocialMedia:       v.SocialMedia,
	}
}

func teamStatsToDTO(v team.StatsView) teamStatsDTO {
	return teamStatsDTO{
		TeamID:                 v.TeamID,
		TeamName:               v.TeamName,
		Abbreviation:           v.Abbreviation,
		City:                   v.City,
		GamesPlayed:            v.GamesPlayed,
		Wins:                   v.Wins,
		Losses:                 v.Losses,
		PointsFor:              v.PointsFor,
		PointsAgainst:          v.PointsAgainst,
		PassingAttempts:        v.PassingAttempts,
		PassingCompletions:     v.PassingCompletions,
		PassingYards:           v.PassingYards,
		RushingAttempts:        v.RushingAttempts,
		RushingYards:           v.RushingYards,
		ReceivingYards:         v.ReceivingYards,
		Tackles:                v.Tackles,
		Interceptions:          v.Interceptions,
		Fumbles:                v.Fumbles,
		KickoffReturns:         v.KickoffReturns,
		PuntReturns:            v.PuntReturns,
		FieldGoalsMade:         v.FieldGoalsMade,
		FieldGoalsAttempted:    v.FieldGoalsAttempted,
		ExtraPointsMade:        v.ExtraPointsMade,
		ExtraPointsAttempted:   v.ExtraPointsAttempted,
		OffensePlays:           v.OffensePlays,
		OffenseYards:           v.OffenseYards,
		OffenseAvgYardsPerPlay: v.OffenseAvgYardsPerPlay,
		TotalTD:                v.TotalTD,
	}
}

// draftResultsToDTO keys results by the decimal user id since JSON object
// keys are strings.
func draftResultsToDTO(results map[int64]draft.UserDraftResult) map[string]userDraftResultDTO {
	out := make(map[string]userDraftResultDTO, len(results))
	for userID, result := range results {
		teams := make([]assignedTeamDTO, 0, len(result.Teams))
		for _, t := range result.Teams {
			teams = append(teams, assignedTeamDTO{TeamID: t.TeamID, TeamName: t.TeamName, Wins: t.Wins})
		}
		out[strconv.FormatInt(userID, 10)] = userDraftResultDTO{
			UserID:    result.UserID,
			UserName:  result.UserName,
			Teams:     teams,
			TotalWins: result.TotalWins,
		}
	}
	return out
}

func winTotalsToDTO(totals map[int64]int) map[string]int {
	out := make(map[string]int, len(totals))
	for userID, wins := range totals {
		out[strconv.FormatInt(userID, 10)] = wins
	}
	return out
}

func userRecordToDTO(v standing.UserRecord) userRecordDTO {
	return userRecordDTO{
		UserID:        v.UserID,
		UserName:      v.UserName,
		Wins:          v.Wins,
		Losses:        v.Losses,
		Ties:          v.Ties,
		WinPercentage: v.WinPercentage,
	}
}

func gameLineToDTO(v odds.GameLine, loc *time.Location) gameLineDTO {
	if loc == nil {
		loc = time.UTC
	}
	start := v.StartTime.In(loc)
	fetched := v.DateFetched.In(loc)

	return gameLineDTO{
		ID:                   v.ID,
		GameID:               v.GameID,
		Week:                 v.Week,
		AwayTeamAbbreviation: v.AwayTeamAbbreviation,
		AwayTeamName:         v.AwayTeamName,
		HomeTeamAbbreviation: v.HomeTeamAbbreviation,
		HomeTeamName:         v.HomeTeamName,
		SourceName:           v.SourceName,
		MoneyLineAway:        v.MoneyLineAway,
		MoneyLineHome:        v.MoneyLineHome,
		PointSpreadAway:      v.PointSpreadAway,
		PointSpreadHome:      v.PointSpreadHome,
		OverUnder:            v.OverUnder,
		StartTimeUTC:         v.StartTime.UTC().Format(time.RFC3339),
		StartDate:            start.Format(displayDateLayout),
		StartTime:            start.Format(displayTimeLayout),
		DateFetchedDate:      fetched.Format(displayDateLayout),
		DateFetchedTime:      fetched.Format(displayTimeLayout),
	}
}

func weeklyOddsToDTO(v usecase.WeeklyOdds, loc *time.Location) weeklyOddsDTO {
	games := make([]gameLineDTO, 0, len(v.Lines))
	for _, line := range v.Lines {
		games = append(games, gameLineToDTO(line, loc))
	}
	return weeklyOddsDTO{Week: v.Week, Games: games}
}

func weeklyExpectedWinsToDTO(v usecase.WeeklyExpectedWins) weeklyExpectedWinsDTO {
	users := make([]userExpectedWinsDTO, 0, len(v.Users))
	for _, u := range v.Users {
		users = append(users, userExpectedWinsDTO{
			UserID:            u.UserID,
			UserName:          u.UserName,
			TotalExpectedWins: u.TotalExpectedWins,
		})
	}
	return weeklyExpectedWinsDTO{Week: v.Week, Users: users}
}

func jobDispatchToDTO(v jobscheduler.DispatchEvent) jobDispatchDTO {
	return jobDispatchDTO{
		DispatchID:    v.DispatchID,
		JobName:       v.JobName,
		JobPath:       v.JobPath,
		Status:        string(v.Status),
		Payload:       v.Payload,
		Records:       v.Records,
		ErrorMessage:  v.ErrorMessage,
		OccurredAtUTC: v.OccurredAt.UTC().Format(time.RFC3339),
		TraceID:       v.TraceID,
		SpanID:        v.SpanID,
	}
}
