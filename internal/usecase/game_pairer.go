package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/hoopcast/nba-ingest/internal/domain/game"
)

// GameSource returns the raw per-team rows of one regular season.
type GameSource interface {
	FetchSeasonGames(ctx context.Context, season int) ([]ExternalGameRow, error)
}

// ExternalGameRow is one team's view of one game as published by the provider.
type ExternalGameRow struct {
	GameID           string
	TeamAbbreviation string
	Matchup          string
	GameDate         string
	Points           *int
}

// GameRowGroup holds every raw row sharing one external game id.
type GameRowGroup struct {
	GameID string
	Rows   []ExternalGameRow
}

var (
	homeMatchupPattern = regexp.MustCompile(`^\s*\S+\s+vs\.\s+\S+\s*$`)
	awayMatchupPattern = regexp.MustCompile(`^\s*\S+\s+@\s+\S+\s*$`)
)

// GroupSeasonRows groups rows by game id, keeping the order in which ids first appear.
func GroupSeasonRows(rows []ExternalGameRow) []GameRowGroup {
	index := make(map[string]int, len(rows)/2+1)
	groups := make([]GameRowGroup, 0, len(rows)/2+1)
	for _, row := range rows {
		id := strings.TrimSpace(row.GameID)
		pos, ok := index[id]
		if !ok {
			pos = len(groups)
			index[id] = pos
			groups = append(groups, GameRowGroup{GameID: id})
		}
		groups[pos].Rows = append(groups[pos].Rows, row)
	}
	return groups
}

func isHomeMatchup(matchup string) bool {
	return homeMatchupPattern.MatchString(matchup)
}

func isAwayMatchup(matchup string) bool {
	return awayMatchupPattern.MatchString(matchup)
}

// ResolveOptions tunes how a group is turned into a game.
type ResolveOptions struct {
	// RejectMalformedDates demotes an unparseable date from a fatal error to
	// a per-game rejection.
	RejectMalformedDates bool
}

// ResolveGameGroup turns the two rows of a game into a canonical candidate.
// Data anomalies come back as *GameRejection; an unparseable date returns
// ErrMalformedGameDate unless opts demote it.
func ResolveGameGroup(season int, group GameRowGroup, directory *TeamDirectory, opts ResolveOptions) (game.Game, error) {
	if group.GameID == "" {
		return game.Game{}, rejectGame(group.GameID, RejectReasonInvalidGame, "%d rows without a game id", len(group.Rows))
	}
	if len(group.Rows) != 2 {
		return game.Game{}, rejectGame(group.GameID, RejectReasonRowCount, "expected 2 rows, got %d", len(group.Rows))
	}

	var home, away *ExternalGameRow
	for i := range group.Rows {
		row := &group.Rows[i]
		switch {
		case isHomeMatchup(row.Matchup):
			if home != nil {
				return game.Game{}, rejectGame(group.GameID, RejectReasonHomeAway, "two home rows (%q, %q)", home.Matchup, row.Matchup)
			}
			home = row
		case isAwayMatchup(row.Matchup):
			if away != nil {
				return game.Game{}, rejectGame(group.GameID, RejectReasonHomeAway, "two away rows (%q, %q)", away.Matchup, row.Matchup)
			}
			away = row
		}
	}
	if home == nil || away == nil {
		return game.Game{}, rejectGame(group.GameID, RejectReasonHomeAway, "matchups %q and %q do not name one home and one away side", group.Rows[0].Matchup, group.Rows[1].Matchup)
	}

	homeID, homeOK := directory.Resolve(home.TeamAbbreviation)
	awayID, awayOK := directory.Resolve(away.TeamAbbreviation)
	if !homeOK || !awayOK {
		return game.Game{}, rejectGame(group.GameID, RejectReasonUnknownTeam, "unknown team in %s @ %s", away.TeamAbbreviation, home.TeamAbbreviation)
	}
	if homeID == awayID {
		return game.Game{}, rejectGame(group.GameID, RejectReasonHomeAway, "team %s listed on both sides", home.TeamAbbreviation)
	}

	gameDate, err := time.Parse(game.DateLayout, strings.TrimSpace(home.GameDate))
	if err != nil {
		if opts.RejectMalformedDates {
			return game.Game{}, rejectGame(group.GameID, RejectReasonMalformedDate, "date %q is not YYYY-MM-DD", home.GameDate)
		}
		return game.Game{}, wrapMalformedDate(group.GameID, home.GameDate, err)
	}

	candidate := game.Game{
		ID:         group.GameID,
		Date:       gameDate,
		Season:     season,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		HomeScore:  normalizePoints(home.Points),
		AwayScore:  normalizePoints(away.Points),
		Status:     game.StatusFinal,
		IsPlayoffs: false,
	}
	if err := candidate.Validate(); err != nil {
		return game.Game{}, rejectGame(group.GameID, RejectReasonInvalidGame, "%v", err)
	}
	return candidate, nil
}

// normalizePoints maps a missing or zero points value to an unknown score.
func normalizePoints(points *int) *int {
	if points == nil || *points == 0 {
		return nil
	}
	v := *points
	return &v
}
