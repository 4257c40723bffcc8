package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/nfl-draft-league/internal/domain/team"
	qb "github.com/riskibarqy/nfl-draft-league/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(
		"id", "city", "name", "abbreviation", "home_venue_id",
		"team_colors_hex", "social_media", "logo_url",
	).From("teams").
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{
			ID:            row.ID,
			City:          row.City,
			Name:          row.Name,
			Abbreviation:  row.Abbreviation,
			HomeVenueID:   nullInt64Ptr(row.HomeVenueID),
			TeamColorsHex: row.TeamColorsHex,
			SocialMedia:   row.SocialMedia,
			LogoURL:       row.LogoURL,
		})
	}

	return out, nil
}

func (r *TeamRepository) ListStats(ctx context.Context) ([]team.StatsView, error) {
	query, args, err := qb.Select("ts.*", "t.name AS team_name", "t.abbreviation", "t.city").
		From("team_stats ts").
		Join("teams t ON t.id = ts.team_id").
		OrderBy("t.name", "ts.team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team stats query: %w", err)
	}

	var rows []teamStatsViewRow
	if err := r.db.Unsafe().SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team stats: %w", err)
	}

	out := make([]team.StatsView, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.StatsView{
			Stats:        teamStatsFromModel(row.teamStatsModel),
			TeamName:     row.TeamName,
			Abbreviation: row.Abbreviation,
			City:         row.City,
		})
	}

	return out, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, teams []team.Team) error {
	models := make([]teamUpsertModel, 0, len(teams))
	for _, item := range teams {
		models = append(models, teamUpsertModel{
			ID:            item.ID,
			City:          item.City,
			Name:          item.Name,
			Abbreviation:  item.Abbreviation,
			HomeVenueID:   item.HomeVenueID,
			TeamColorsHex: item.TeamColorsHex,
			SocialMedia:   item.SocialMedia,
			LogoURL:       item.LogoURL,
		})
	}
	return upsertAll(ctx, r.db, "teams", models, []string{"id"}, "updated_at = NOW()")
}

func (r *TeamRepository) UpsertStats(ctx context.Context, stats []team.Stats) error {
	models := make([]teamStatsModel, 0, len(stats))
	for _, item := range stats {
		models = append(models, teamStatsToModel(item))
	}
	return upsertAll(ctx, r.db, "team_stats", models, []string{"team_id"}, "updated_at = NOW()")
}

func teamStatsToModel(item team.Stats) teamStatsModel {
	return teamStatsModel{
		TeamID:                 item.TeamID,
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
	}
}

func teamStatsFromModel(row teamStatsModel) team.Stats {
	return team.Stats{
		TeamID:                 row.TeamID,
		GamesPlayed:            row.GamesPlayed,
		Wins:                   row.Wins,
		Losses:                 row.Losses,
		PointsFor:              row.PointsFor,
		PointsAgainst:          row.PointsAgainst,
		PassingAttempts:        row.PassingAttempts,
		PassingCompletions:     row.PassingCompletions,
		PassingYards:           row.PassingYards,
		RushingAttempts:        row.RushingAttempts,
		RushingYards:           row.RushingYards,
		ReceivingYards:         row.ReceivingYards,
		Tackles:                row.Tackles,
		Interceptions:          row.Interceptions,
		Fumbles:                row.Fumbles,
		KickoffReturns:         row.KickoffReturns,
		PuntReturns:            row.PuntReturns,
		FieldGoalsMade:         row.FieldGoalsMade,
		FieldGoalsAttempted:    row.FieldGoalsAttempted,
		ExtraPointsMade:        row.ExtraPointsMade,
		ExtraPointsAttempted:   row.ExtraPointsAttempted,
		OffensePlays:           row.OffensePlays,
		OffenseYards:           row.OffenseYards,
		OffenseAvgYardsPerPlay: row.OffenseAvgYardsPerPlay,
		TotalTD:                row.TotalTD,
	}
}
