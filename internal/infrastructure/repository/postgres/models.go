package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID           int64          `db:"team_id,readonly"`
	Abbreviation string         `db:"team_abbreviation"`
	Name         string         `db:"team_name"`
	Conference   sql.NullString `db:"conference"`
	Division     sql.NullString `db:"division"`
}

type gameTableModel struct {
	GameID     string        `db:"game_id"`
	GameDate   time.Time     `db:"game_date"`
	Season     int           `db:"season"`
	HomeTeamID int64         `db:"home_team_id"`
	AwayTeamID int64         `db:"away_team_id"`
	HomeScore  sql.NullInt64 `db:"home_score"`
	AwayScore  sql.NullInt64 `db:"away_score"`
	Status     string        `db:"game_status"`
	IsPlayoffs bool          `db:"is_playoffs"`
	CreatedAt  time.Time     `db:"created_at,readonly"`
	UpdatedAt  time.Time     `db:"updated_at,readonly"`
}
