package nbastats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hoopcast/nba-ingest/internal/usecase"
)

const (
	columnGameID   = "GAME_ID"
	columnTeamAbbr = "TEAM_ABBREVIATION"
	columnMatchup  = "MATCHUP"
	columnGameDate = "GAME_DATE"
	columnPoints   = "PTS"
)

type resultSetEnvelope struct {
	Resource   string      `json:"resource"`
	ResultSets []resultSet `json:"resultSets"`
}

type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

// gameRows maps the first result set onto raw rows, locating columns by header name.
// Rows are passed through as published, including ones with a blank game id.
func (e resultSetEnvelope) gameRows() ([]usecase.ExternalGameRow, error) {
	if len(e.ResultSets) == 0 {
		return nil, fmt.Errorf("response has no result sets")
	}
	set := e.ResultSets[0]

	index := make(map[string]int, len(set.Headers))
	for i, header := range set.Headers {
		index[strings.ToUpper(strings.TrimSpace(header))] = i
	}
	for _, required := range []string{columnGameID, columnTeamAbbr, columnMatchup, columnGameDate} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("result set %q is missing column %s", set.Name, required)
		}
	}
	pointsIdx, hasPoints := index[columnPoints]

	out := make([]usecase.ExternalGameRow, 0, len(set.RowSet))
	for _, cells := range set.RowSet {
		row := usecase.ExternalGameRow{
			GameID:           cellString(cells, index[columnGameID]),
			TeamAbbreviation: cellString(cells, index[columnTeamAbbr]),
			Matchup:          cellString(cells, index[columnMatchup]),
			GameDate:         cellString(cells, index[columnGameDate]),
		}
		if hasPoints {
			row.Points = cellInt(cells, pointsIdx)
		}
		out = append(out, row)
	}
	return out, nil
}

func cellString(cells []any, idx int) string {
	if idx < 0 || idx >= len(cells) || cells[idx] == nil {
		return ""
	}
	switch v := cells[idx].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// cellInt returns nil for absent, null or non-numeric cells.
func cellInt(cells []any, idx int) *int {
	if idx < 0 || idx >= len(cells) || cells[idx] == nil {
		return nil
	}
	var out int
	switch v := cells[idx].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		out = int(v)
	case int64:
		out = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		out = parsed
	default:
		return nil
	}
	return &out
}
