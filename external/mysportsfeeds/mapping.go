package mysportsfeeds

import (
	"strings"
	"time"

	"github.com/riskibarqy/nfl-draft-league/internal/usecase"
)

const fullGameSegment = "FULL"

func mapGames(payload gamesEnvelope) []usecase.ExternalGame {
	out := make([]usecase.ExternalGame, 0, len(payload.Games))
	for _, item := range payload.Games {
		schedule := item.Schedule
		g := usecase.ExternalGame{
			ID:              schedule.ID,
			Week:            schedule.Week,
			VenueAllegiance: schedule.VenueAllegiance,
			ScheduleStatus:  schedule.ScheduleStatus,
			PlayedStatus:    schedule.PlayedStatus,
		}
		if start := parseProviderTime(schedule.StartTime); start != nil {
			g.StartTime = *start
		}
		g.EndedTime = parseProviderTime(schedule.EndedTime)
		if schedule.OriginalStartTime != nil {
			g.OriginalStartTime = parseProviderTime(*schedule.OriginalStartTime)
		}
		if schedule.DelayedOrPostponedReason != nil {
			g.DelayedOrPostponedReason = *schedule.DelayedOrPostponedReason
		}
		if schedule.AwayTeam != nil {
			g.AwayTeamID = schedule.AwayTeam.ID
		}
		if schedule.HomeTeam != nil {
			g.HomeTeamID = schedule.HomeTeam.ID
		}
		if schedule.Venue != nil && schedule.Venue.ID > 0 {
			venueID := schedule.Venue.ID
			g.VenueID = &venueID
		}
		if item.Score != nil {
			g.AwayScoreTotal = item.Score.AwayScoreTotal
			g.HomeScoreTotal = item.Score.HomeScoreTotal
		}
		out = append(out, g)
	}
	return out
}

func mapGameLines(payload gameLinesEnvelope) []usecase.ExternalGameLines {
	out := make([]usecase.ExternalGameLines, 0, len(payload.GameLines))
	for _, item := range payload.GameLines {
		g := usecase.ExternalGameLines{
			GameID:               item.Game.ID,
			Week:                 item.Game.Week,
			AwayTeamAbbreviation: item.Game.AwayTeamAbbreviation,
			HomeTeamAbbreviation: item.Game.HomeTeamAbbreviation,
			Lines:                make([]usecase.ExternalLine, 0, len(item.Lines)),
		}
		if start := parseProviderTime(item.Game.StartTime); start != nil {
			g.StartTime = *start
		}
		for _, line := range item.Lines {
			g.Lines = append(g.Lines, mapSourceLine(line))
		}
		out = append(out, g)
	}
	return out
}

// mapSourceLine keeps the first full-game entry of each market. The feed
// lists entries oldest first per market.
func mapSourceLine(line sourceLineItem) usecase.ExternalLine {
	out := usecase.ExternalLine{SourceName: strings.TrimSpace(line.Source.Name)}

	for _, entry := range line.MoneyLines {
		if !isFullGame(entry.MoneyLine.GameSegment) {
			continue
		}
		if entry.MoneyLine.AwayLine != nil {
			out.MoneyLineAway = entry.MoneyLine.AwayLine.American.intPtr()
		}
		if entry.MoneyLine.HomeLine != nil {
			out.MoneyLineHome = entry.MoneyLine.HomeLine.American.intPtr()
		}
		break
	}
	for _, entry := range line.PointSpreads {
		if !isFullGame(entry.PointSpread.GameSegment) {
			continue
		}
		out.PointSpreadAway = entry.PointSpread.AwaySpread.floatPtr()
		out.PointSpreadHome = entry.PointSpread.HomeSpread.floatPtr()
		break
	}
	for _, entry := range line.OverUnders {
		if !isFullGame(entry.OverUnder.GameSegment) {
			continue
		}
		out.OverUnder = entry.OverUnder.Total.floatPtr()
		if out.OverUnder == nil {
			out.OverUnder = entry.OverUnder.OverUnder.floatPtr()
		}
		break
	}

	return out
}

func mapStandings(payload standingsEnvelope) []usecase.ExternalStanding {
	out := make([]usecase.ExternalStanding, 0, len(payload.Teams))
	for _, item := range payload.Teams {
		stats := item.Stats.Standings
		s := usecase.ExternalStanding{
			TeamID:         item.Team.ID,
			Abbreviation:   item.Team.Abbreviation,
			Wins:           stats.Wins,
			Losses:         stats.Losses,
			Ties:           stats.Ties,
			OTWins:         stats.OTWins,
			OTLosses:       stats.OTLosses,
			WinPct:         stats.WinPct,
			PointsFor:      stats.PointsFor,
			PointsAgainst:  stats.PointsAgainst,
			HomeWins:       stats.HomeWins,
			AwayWins:       stats.AwayWins,
			LogoURL:        item.Team.OfficialLogoImageSrc,
			SocialAccounts: mapSocialAccounts(item.Team.SocialMediaAccounts),
		}
		if stats.Streak != nil {
			s.StreakType = stats.Streak.StreakType
		}
		if item.OverallRank != nil {
			s.OverallRank = item.OverallRank.Rank
		}
		if item.ConferenceRank != nil {
			s.Conference = item.ConferenceRank.ConferenceName
			s.ConferenceRank = item.ConferenceRank.Rank
			s.GamesBack = item.ConferenceRank.GamesBack
		}
		if item.DivisionRank != nil {
			s.Division = item.DivisionRank.DivisionName
			s.DivisionRank = item.DivisionRank.Rank
		}
		if item.PlayoffRank != nil {
			s.PlayoffRank = item.PlayoffRank.Rank
		}
		out = append(out, s)
	}
	return out
}

func mapTeamStats(payload teamStatsEnvelope) []usecase.ExternalTeamStats {
	out := make([]usecase.ExternalTeamStats, 0, len(payload.TeamStatsTotals))
	for _, item := range payload.TeamStatsTotals {
		ts := usecase.ExternalTeamStats{Team: mapTeam(item.Team)}
		if raw := item.Stats; raw != nil {
			ts.GamesPlayed = raw.GamesPlayed
			ts.Wins = raw.Standings.Wins
			ts.Losses = raw.Standings.Losses
			ts.PointsFor = raw.Scoring.PointsFor
			ts.PointsAgainst = raw.Scoring.PointsAgainst
			ts.PassingAttempts = raw.Passing.PassAttempts
			ts.PassingCompletions = raw.Passing.PassCompletions
			ts.PassingYards = raw.Passing.PassNetYards
			ts.RushingAttempts = raw.Rushing.RushAttempts
			ts.RushingYards = raw.Rushing.RushYards
			ts.ReceivingYards = raw.Receiving.RecYards
			ts.Tackles = raw.Defense.TackleSolo
			ts.Interceptions = raw.Defense.Interceptions
			ts.Fumbles = raw.Fumbles.FumLost
			ts.KickoffReturns = raw.KickoffReturns.KrRet
			ts.PuntReturns = raw.PuntReturns.PrRet
			ts.FieldGoalsMade = raw.FieldGoals.FgMade
			ts.FieldGoalsAttempted = raw.FieldGoals.FgAtt
			ts.ExtraPointsMade = raw.ExtraPoints.XpMade
			ts.ExtraPointsAttempted = raw.ExtraPoints.XpAtt
			ts.OffensePlays = raw.Offense.Plays
			ts.OffenseYards = raw.Offense.Yards
			ts.OffenseAvgYardsPerPlay = raw.Offense.AvgYards
			ts.TotalTD = raw.Scoring.TDs
		}
		out = append(out, ts)
	}
	return out
}

func mapTeam(source teamRef) usecase.ExternalTeam {
	t := usecase.ExternalTeam{
		ID:             source.ID,
		City:           source.City,
		Name:           source.Name,
		Abbreviation:   source.Abbreviation,
		Colors:         append([]string(nil), source.TeamColoursHex...),
		SocialAccounts: mapSocialAccounts(source.SocialMediaAccounts),
		LogoURL:        source.OfficialLogoImageSrc,
	}
	if source.HomeVenue != nil && source.HomeVenue.ID > 0 {
		venueID := source.HomeVenue.ID
		t.HomeVenueID = &venueID
	}
	return t
}

func mapSocialAccounts(items []socialMediaAccount) []usecase.ExternalSocialAccount {
	if len(items) == 0 {
		return nil
	}
	out := make([]usecase.ExternalSocialAccount, 0, len(items))
	for _, item := range items {
		out = append(out, usecase.ExternalSocialAccount{MediaType: item.MediaType, Value: item.Value})
	}
	return out
}

func isFullGame(segment string) bool {
	return strings.EqualFold(strings.TrimSpace(segment), fullGameSegment)
}

func parseProviderTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	out := parsed.UTC()
	return &out
}
