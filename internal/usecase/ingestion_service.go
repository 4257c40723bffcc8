package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/nfl-draft-league/internal/domain/game"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/odds"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/season"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/standing"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/team"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/logging"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/metrics"
)

type SportsDataProvider interface {
	FetchGamesByDate(ctx context.Context, date time.Time) ([]ExternalGame, error)
	FetchGameLinesByWeek(ctx context.Context, week int) ([]ExternalGameLines, error)
	FetchStandings(ctx context.Context) ([]ExternalStanding, error)
	FetchTeamStats(ctx context.Context) ([]ExternalTeamStats, error)
}

// Pinger checks that the primary database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type ExternalGame struct {
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

type ExternalGameLines struct {
	GameID               int64
	Week                 int
	StartTime            time.Time
	AwayTeamAbbreviation string
	HomeTeamAbbreviation string
	Lines                []ExternalLine
}

// ExternalLine holds the full-game prices of one sportsbook.
type ExternalLine struct {
	SourceName      string
	MoneyLineAway   *int
	MoneyLineHome   *int
	PointSpreadAway *float64
	PointSpreadHome *float64
	OverUnder       *float64
}

type ExternalSocialAccount struct {
	MediaType string
	Value     string
}

type ExternalTeam struct {
	ID             int64
	City           string
	Name           string
	Abbreviation   string
	HomeVenueID    *int64
	Colors         []string
	SocialAccounts []ExternalSocialAccount
	LogoURL        string
}

type ExternalStanding struct {
	TeamID         int64
	Abbreviation   string
	Wins           int
	Losses         int
	Ties           int
	OTWins         int
	OTLosses       int
	WinPct         float64
	PointsFor      int
	PointsAgainst  int
	HomeWins       int
	AwayWins       int
	StreakType     string
	OverallRank    *int
	Conference     string
	ConferenceRank *int
	GamesBack      float64
	Division       string
	DivisionRank   *int
	PlayoffRank    *int
	LogoURL        string
	SocialAccounts []ExternalSocialAccount
}

type ExternalTeamStats struct {
	Team                   ExternalTeam
	GamesPlayed            int
	Wins                   int
	Losses                 int
	PointsFor              int
	PointsAgainst          int
	PassingAttempts        int
	PassingCompletions     int
	PassingYards           int
	RushingAttempts        int
	RushingYards           int
	ReceivingYards         int
	Tackles                int
	Interceptions          int
	Fumbles                int
	KickoffReturns         int
	PuntReturns            int
	FieldGoalsMade         int
	FieldGoalsAttempted    int
	ExtraPointsMade        int
	ExtraPointsAttempted   int
	OffensePlays           int
	OffenseYards           int
	OffenseAvgYardsPerPlay float64
	TotalTD                int
}

// SyncSummary counts what one ingestion pass wrote and dropped.
type SyncSummary struct {
	Records int
	Skipped int
	Message string
}

type IngestionConfig struct {
	OddsSource string
}

type IngestionService struct {
	provider     SportsDataProvider
	gameRepo     game.Repository
	oddsRepo     odds.Repository
	standingRepo standing.Repository
	teamRepo     team.Repository
	pinger       Pinger
	calendar     *season.Calendar
	cfg          IngestionConfig
	logger       *logging.Logger
	now          func() time.Time
}

func NewIngestionService(
	provider SportsDataProvider,
	gameRepo game.Repository,
	oddsRepo odds.Repository,
	standingRepo standing.Repository,
	teamRepo team.Repository,
	pinger Pinger,
	calendar *season.Calendar,
	cfg IngestionConfig,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	cfg.OddsSource = strings.ToLower(strings.TrimSpace(cfg.OddsSource))
	if cfg.OddsSource == "" {
		cfg.OddsSource = "bovada"
	}

	return &IngestionService{
		provider:     provider,
		gameRepo:     gameRepo,
		oddsRepo:     oddsRepo,
		standingRepo: standingRepo,
		teamRepo:     teamRepo,
		pinger:       pinger,
		calendar:     calendar,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// SyncGames pulls the games scheduled on date, or today in the league time
// zone when date is nil.
func (s *IngestionService) SyncGames(ctx context.Context, date *time.Time) (SyncSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncGames")
	defer span.End()

	day := s.now().In(s.calendar.Location())
	if date != nil {
		day = date.In(s.calendar.Location())
	}

	items, err := s.provider.FetchGamesByDate(ctx, day)
	if err != nil {
		return SyncSummary{}, fmt.Errorf("%w: fetch games date=%s: %w", ErrDependencyUnavailable, day.Format("20060102"), err)
	}
	if len(items) == 0 {
		return SyncSummary{Message: "no games scheduled"}, nil
	}

	games, skipped := mapExternalGamesToDomain(items)
	for _, item := range skipped {
		s.logger.WarnContext(ctx, "skip game with missing fields", "game_id", item.ID, "week", item.Week)
	}
	if len(games) == 0 {
		return SyncSummary{Skipped: len(skipped)}, nil
	}

	if err := s.gameRepo.Upsert(ctx, games); err != nil {
		return SyncSummary{}, fmt.Errorf("upsert games: %w", err)
	}
	metrics.AddUpserted("games", len(games))

	return SyncSummary{Records: len(games), Skipped: len(skipped)}, nil
}

// SyncOdds stores the configured sportsbook's lines for week, or the current
// week when week is nil.
func (s *IngestionService) SyncOdds(ctx context.Context, week *int) (SyncSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncOdds")
	defer span.End()

	resolved := s.calendar.CurrentWeek(s.now())
	if week != nil {
		if !s.calendar.ValidWeek(*week) {
			return SyncSummary{}, fmt.Errorf("%w: week must be between 1 and %d", ErrInvalidInput, s.calendar.Weeks())
		}
		resolved = *week
	}

	items, err := s.provider.FetchGameLinesByWeek(ctx, resolved)
	if err != nil {
		return SyncSummary{}, fmt.Errorf("%w: fetch game lines week=%d: %w", ErrDependencyUnavailable, resolved, err)
	}
	if len(items) == 0 {
		return SyncSummary{Message: fmt.Sprintf("no game lines for week %d", resolved)}, nil
	}

	lines, skipped := selectSourceLines(items, s.cfg.OddsSource, s.now().UTC())
	if len(lines) == 0 {
		return SyncSummary{Skipped: skipped, Message: "no lines from source " + s.cfg.OddsSource}, nil
	}

	if err := s.oddsRepo.UpsertLines(ctx, lines); err != nil {
		return SyncSummary{}, fmt.Errorf("upsert game lines week=%d: %w", resolved, err)
	}
	metrics.AddUpserted("game_lines", len(lines))

	return SyncSummary{Records: len(lines), Skipped: skipped}, nil
}

func (s *IngestionService) SyncStandings(ctx context.Context) (SyncSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncStandings")
	defer span.End()

	items, err := s.provider.FetchStandings(ctx)
	if err != nil {
		return SyncSummary{}, fmt.Errorf("%w: fetch standings: %w", ErrDependencyUnavailable, err)
	}

	standings := mapExternalStandingsToDomain(items)
	skipped := len(items) - len(standings)
	if len(standings) == 0 {
		return SyncSummary{Skipped: skipped}, nil
	}

	if err := s.standingRepo.Upsert(ctx, standings); err != nil {
		return SyncSummary{}, fmt.Errorf("upsert standings: %w", err)
	}
	metrics.AddUpserted("standings", len(standings))

	return SyncSummary{Records: len(standings), Skipped: skipped}, nil
}

// SyncTeamStats refreshes team identities first so that stats rows always
// reference a stored team.
func (s *IngestionService) SyncTeamStats(ctx context.Context) (SyncSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncTeamStats")
	defer span.End()

	items, err := s.provider.FetchTeamStats(ctx)
	if err != nil {
		return SyncSummary{}, fmt.Errorf("%w: fetch team stats: %w", ErrDependencyUnavailable, err)
	}

	teams, stats := mapExternalTeamStatsToDomain(items)
	skipped := len(items) - len(teams)
	if len(teams) == 0 {
		return SyncSummary{Skipped: skipped}, nil
	}

	if err := s.teamRepo.Upsert(ctx, teams); err != nil {
		return SyncSummary{}, fmt.Errorf("upsert teams: %w", err)
	}
	metrics.AddUpserted("teams", len(teams))

	if err := s.teamRepo.UpsertStats(ctx, stats); err != nil {
		return SyncSummary{}, fmt.Errorf("upsert team stats: %w", err)
	}
	metrics.AddUpserted("team_stats", len(stats))

	return SyncSummary{Records: len(stats), Skipped: skipped}, nil
}

func (s *IngestionService) KeepAlive(ctx context.Context) (SyncSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.KeepAlive")
	defer span.End()

	if s.pinger == nil {
		return SyncSummary{Message: "no database configured"}, nil
	}
	if err := s.pinger.Ping(ctx); err != nil {
		s.logger.ErrorContext(ctx, "database keep-alive failed", "error", err)
		return SyncSummary{}, fmt.Errorf("%w: database ping: %w", ErrDependencyUnavailable, err)
	}

	return SyncSummary{Records: 1}, nil
}

func mapExternalGamesToDomain(items []ExternalGame) ([]game.Game, []ExternalGame) {
	out := make([]game.Game, 0, len(items))
	var skipped []ExternalGame
	for _, item := range items {
		if item.VenueID == nil {
			skipped = append(skipped, item)
			continue
		}
		value := game.Game{
			ID:                       item.ID,
			Week:                     item.Week,
			StartTime:                item.StartTime.UTC(),
			EndedTime:                cloneTimePtr(item.EndedTime),
			AwayTeamID:               item.AwayTeamID,
			HomeTeamID:               item.HomeTeamID,
			VenueID:                  cloneInt64Ptr(item.VenueID),
			VenueAllegiance:          strings.TrimSpace(item.VenueAllegiance),
			ScheduleStatus:           strings.TrimSpace(item.ScheduleStatus),
			OriginalStartTime:        cloneTimePtr(item.OriginalStartTime),
			DelayedOrPostponedReason: strings.TrimSpace(item.DelayedOrPostponedReason),
			PlayedStatus:             strings.TrimSpace(item.PlayedStatus),
			AwayScoreTotal:           cloneIntPtr(item.AwayScoreTotal),
			HomeScoreTotal:           cloneIntPtr(item.HomeScoreTotal),
		}
		if err := value.Validate(); err != nil {
			skipped = append(skipped, item)
			continue
		}
		out = append(out, value)
	}

	return out, skipped
}

// selectSourceLines keeps, per game, the first line published by source.
// Games without such a line, or missing the id, start time or either team
// abbreviation, are counted as skipped.
func selectSourceLines(items []ExternalGameLines, source string, fetchedAt time.Time) ([]odds.GameLine, int) {
	out := make([]odds.GameLine, 0, len(items))
	skipped := 0
	for _, item := range items {
		line, ok := findSourceLine(item.Lines, source)
		away := strings.TrimSpace(item.AwayTeamAbbreviation)
		home := strings.TrimSpace(item.HomeTeamAbbreviation)
		if !ok || item.GameID <= 0 || item.StartTime.IsZero() || away == "" || home == "" {
			skipped++
			continue
		}
		out = append(out, odds.GameLine{
			GameID:               item.GameID,
			Week:                 item.Week,
			StartTime:            item.StartTime.UTC(),
			AwayTeamAbbreviation: away,
			HomeTeamAbbreviation: home,
			SourceName:           displaySourceName(line.SourceName),
			MoneyLineAway:        cloneIntPtr(line.MoneyLineAway),
			MoneyLineHome:        cloneIntPtr(line.MoneyLineHome),
			PointSpreadAway:      cloneFloatPtr(line.PointSpreadAway),
			PointSpreadHome:      cloneFloatPtr(line.PointSpreadHome),
			OverUnder:            cloneFloatPtr(line.OverUnder),
			DateFetched:          fetchedAt,
		})
	}

	return out, skipped
}

func findSourceLine(lines []ExternalLine, source string) (ExternalLine, bool) {
	for _, line := range lines {
		if strings.EqualFold(strings.TrimSpace(line.SourceName), source) {
			return line, true
		}
	}
	return ExternalLine{}, false
}

// displaySourceName stores book names capitalized, e.g. "bovada" as "Bovada".
func displaySourceName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
}

func mapExternalStandingsToDomain(items []ExternalStanding) []standing.Standing {
	out := make([]standing.Standing, 0, len(items))
	for _, item := range items {
		if item.TeamID <= 0 {
			continue
		}
		social := ""
		if len(item.SocialAccounts) > 0 {
			social = strings.TrimSpace(item.SocialAccounts[0].Value)
		}
		out = append(out, standing.Standing{
			TeamID:            item.TeamID,
			Abbreviation:      strings.TrimSpace(item.Abbreviation),
			Wins:              item.Wins,
			Losses:            item.Losses,
			Ties:              item.Ties,
			OTWins:            item.OTWins,
			OTLosses:          item.OTLosses,
			WinPct:            item.WinPct,
			PointsFor:         item.PointsFor,
			PointsAgainst:     item.PointsAgainst,
			PointDifferential: item.PointsFor - item.PointsAgainst,
			Conference:        strings.TrimSpace(item.Conference),
			ConferenceRank:    cloneIntPtr(item.ConferenceRank),
			GamesBack:         item.GamesBack,
			Division:          strings.TrimSpace(item.Division),
			DivisionRank:      cloneIntPtr(item.DivisionRank),
			PlayoffRank:       cloneIntPtr(item.PlayoffRank),
			OverallRank:       cloneIntPtr(item.OverallRank),
			HomeWins:          item.HomeWins,
			AwayWins:          item.AwayWins,
			Streak:            strings.TrimSpace(item.StreakType),
			OfficialLogoURL:   strings.TrimSpace(item.LogoURL),
			SocialMedia:       social,
		})
	}

	return out
}

func mapExternalTeamStatsToDomain(items []ExternalTeamStats) ([]team.Team, []team.Stats) {
	teams := make([]team.Team, 0, len(items))
	stats := make([]team.Stats, 0, len(items))
	for _, item := range items {
		value := mapExternalTeamToDomain(item.Team)
		if err := value.Validate(); err != nil {
			continue
		}
		teams = append(teams, value)
		stats = append(stats, team.Stats{
			TeamID:                 value.ID,
			GamesPlayed:            item.GamesPlayed,
			Wins:                   item.Wins,
			Losses:                 item.Losses,
			PointsFor:              item.PointsFor,
			PointsAgainst:          item.PointsAgainst,
			PassingAttempts:        item.PassingAttempts,
			PassingCompletions:     item.PassingCompletions,
			PassingYards:           item.PassingYards,
			RushingAttempts:        item.RushingAttempts,
			RushingYards:           item.RushingYards,
			ReceivingYards:         item.ReceivingYards,
			Tackles:                item.Tackles,
			Interceptions:          item.Interceptions,
			Fumbles:                item.Fumbles,
			KickoffReturns:         item.KickoffReturns,
			PuntReturns:            item.PuntReturns,
			FieldGoalsMade:         item.FieldGoalsMade,
			FieldGoalsAttempted:    item.FieldGoalsAttempted,
			ExtraPointsMade:        item.ExtraPointsMade,
			ExtraPointsAttempted:   item.ExtraPointsAttempted,
			OffensePlays:           item.OffensePlays,
			OffenseYards:           item.OffenseYards,
			OffenseAvgYardsPerPlay: item.OffenseAvgYardsPerPlay,
			TotalTD:                item.TotalTD,
		})
	}

	return teams, stats
}

func mapExternalTeamToDomain(item ExternalTeam) team.Team {
	colors := make([]string, 0, len(item.Colors))
	for _, color := range item.Colors {
		if color = strings.TrimSpace(color); color != "" {
			colors = append(colors, color)
		}
	}
	accounts := make([]string, 0, len(item.SocialAccounts))
	for _, account := range item.SocialAccounts {
		if strings.TrimSpace(account.Value) == "" {
			continue
		}
		accounts = append(accounts, strings.TrimSpace(account.MediaType)+": "+strings.TrimSpace(account.Value))
	}

	return team.Team{
		ID:            item.ID,
		City:          strings.TrimSpace(item.City),
		Name:          strings.TrimSpace(item.Name),
		Abbreviation:  strings.TrimSpace(item.Abbreviation),
		HomeVenueID:   cloneInt64Ptr(item.HomeVenueID),
		TeamColorsHex: strings.Join(colors, ", "),
		SocialMedia:   strings.Join(accounts, ", "),
		LogoURL:       strings.TrimSpace(item.LogoURL),
	}
}

func cloneIntPtr(value *int) *int {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}

func cloneInt64Ptr(value *int64) *int64 {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}

func cloneFloatPtr(value *float64) *float64 {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}

func cloneTimePtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	out := value.UTC()
	return &out
}
