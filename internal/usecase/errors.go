package usecase

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrSourceFetch        = errors.New("source fetch failed")
	ErrEmptyTeamDirectory = errors.New("no teams in database, run `teams seed` first")
	ErrMalformedGameDate  = errors.New("malformed game date")
	ErrBatchCommit        = errors.New("batch commit failed")
	ErrGameRejected       = errors.New("game rejected")
)

type RejectReason string

const (
	RejectReasonRowCount      RejectReason = "row_count"
	RejectReasonHomeAway      RejectReason = "home_away_unresolved"
	RejectReasonUnknownTeam   RejectReason = "unknown_team"
	RejectReasonMalformedDate RejectReason = "malformed_date"
	RejectReasonInvalidGame   RejectReason = "invalid_game"
)

// GameRejection describes a game group that cannot become a canonical game.
// It matches ErrGameRejected with errors.Is.
type GameRejection struct {
	GameID string
	Reason RejectReason
	Detail string
}

func (r *GameRejection) Error() string {
	return "game " + r.GameID + " rejected (" + string(r.Reason) + "): " + r.Detail
}

func (r *GameRejection) Is(target error) bool {
	return target == ErrGameRejected
}

func rejectGame(gameID string, reason RejectReason, format string, args ...any) *GameRejection {
	return &GameRejection{GameID: gameID, Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

func wrapMalformedDate(gameID, raw string, err error) error {
	return fmt.Errorf("%w: game %s date %q: %v", ErrMalformedGameDate, gameID, raw, err)
}
