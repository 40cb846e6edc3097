package game

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	StatusScheduled = "scheduled"
	StatusFinal     = "final"
)

// DateLayout is the only accepted provider date format.
const DateLayout = "2006-01-02"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Game is the canonical record of one NBA game, keyed by the provider game id.
type Game struct {
	ID         string    `validate:"required,max=20"`
	Date       time.Time `validate:"required"`
	Season     int       `validate:"gte=1946"`
	HomeTeamID int64     `validate:"gt=0,nefield=AwayTeamID"`
	AwayTeamID int64     `validate:"gt=0"`
	HomeScore  *int      `validate:"omitempty,gte=0"`
	AwayScore  *int      `validate:"omitempty,gte=0"`
	Status     string    `validate:"oneof=scheduled final"`
	IsPlayoffs bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (g Game) Validate() error {
	return validate.Struct(g)
}

// IsComplete reports whether the game has been played to a final result.
func (g Game) IsComplete() bool {
	return g.Status == StatusFinal
}

// HomeWin reports the result from the home side. ok is false while the game
// is incomplete or a score is missing.
func (g Game) HomeWin() (win bool, ok bool) {
	if !g.IsComplete() || g.HomeScore == nil || g.AwayScore == nil {
		return false, false
	}
	return *g.HomeScore > *g.AwayScore, true
}

// PointDifferential returns home minus away points.
func (g Game) PointDifferential() (diff int, ok bool) {
	if !g.IsComplete() || g.HomeScore == nil || g.AwayScore == nil {
		return 0, false
	}
	return *g.HomeScore - *g.AwayScore, true
}
