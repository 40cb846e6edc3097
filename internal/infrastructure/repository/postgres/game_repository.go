package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hoopcast/nba-ingest/internal/domain/game"
	qb "github.com/hoopcast/nba-ingest/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) ExistsByID(ctx context.Context, gameID string) (bool, error) {
	query, args, err := qb.Select("1").From("games").
		Where(qb.Eq("game_id", gameID)).
		ExistsSQL()
	if err != nil {
		return false, fmt.Errorf("build game exists query: %w", err)
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("check game %s exists: %w", gameID, err)
	}
	return exists, nil
}

// InsertBatch writes the whole batch with one statement inside one
// transaction. Ids that already exist are skipped by ON CONFLICT and are not
// part of the returned count.
func (r *GameRepository) InsertBatch(ctx context.Context, games []game.Game) (int, error) {
	if len(games) == 0 {
		return 0, nil
	}

	rows := make([]gameTableModel, 0, len(games))
	for _, g := range games {
		rows = append(rows, gameTableModel{
			GameID:     g.ID,
			GameDate:   dateOnly(g.Date),
			Season:     g.Season,
			HomeTeamID: g.HomeTeamID,
			AwayTeamID: g.AwayTeamID,
			HomeScore:  nullIntFromPtr(g.HomeScore),
			AwayScore:  nullIntFromPtr(g.AwayScore),
			Status:     g.Status,
			IsPlayoffs: g.IsPlayoffs,
		})
	}

	query, args, err := qb.InsertModels("games", rows, "ON CONFLICT (game_id) DO NOTHING")
	if err != nil {
		return 0, fmt.Errorf("build insert games query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin games tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert games batch: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read inserted games count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit games tx: %w", err)
	}
	return int(affected), nil
}
