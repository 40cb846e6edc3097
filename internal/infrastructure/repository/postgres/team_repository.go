package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hoopcast/nba-ingest/internal/domain/team"
	qb "github.com/hoopcast/nba-ingest/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListAll(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("team_id", "team_abbreviation", "team_name", "conference", "division").
		From("teams").
		OrderBy("team_id").
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
			ID:           row.ID,
			Abbreviation: team.NormalizeAbbreviation(row.Abbreviation),
			Name:         row.Name,
			Conference:   row.Conference.String,
			Division:     row.Division.String,
		})
	}
	return out, nil
}

func (r *TeamRepository) InsertMissing(ctx context.Context, teams []team.Team) (int, error) {
	if len(teams) == 0 {
		return 0, nil
	}

	rows := make([]teamTableModel, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, teamTableModel{
			Abbreviation: team.NormalizeAbbreviation(t.Abbreviation),
			Name:         t.Name,
			Conference:   nullString(t.Conference),
			Division:     nullString(t.Division),
		})
	}

	query, args, err := qb.InsertModels("teams", rows, "ON CONFLICT (team_abbreviation) DO NOTHING")
	if err != nil {
		return 0, fmt.Errorf("build insert teams query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin teams tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert teams: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read inserted teams count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit teams tx: %w", err)
	}
	return int(affected), nil
}
