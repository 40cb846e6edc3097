package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/hoopcast/nba-ingest/internal/domain/team"
)

// TeamDirectory resolves provider abbreviations to store ids. It is loaded
// once per run and never mutated afterwards.
type TeamDirectory struct {
	idByAbbreviation map[string]int64
	teamByID         map[int64]team.Team
}

func LoadTeamDirectory(ctx context.Context, repo team.Repository) (*TeamDirectory, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LoadTeamDirectory")
	defer span.End()

	teams, err := repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list teams: %w", ErrStoreUnavailable, err)
	}
	return NewTeamDirectory(teams), nil
}

func NewTeamDirectory(teams []team.Team) *TeamDirectory {
	d := &TeamDirectory{
		idByAbbreviation: make(map[string]int64, len(teams)),
		teamByID:         make(map[int64]team.Team, len(teams)),
	}
	for _, item := range teams {
		abbr := team.NormalizeAbbreviation(item.Abbreviation)
		if abbr == "" {
			continue
		}
		d.idByAbbreviation[abbr] = item.ID
		d.teamByID[item.ID] = item
	}
	return d
}

func (d *TeamDirectory) Resolve(abbreviation string) (int64, bool) {
	if d == nil {
		return 0, false
	}
	id, ok := d.idByAbbreviation[team.NormalizeAbbreviation(abbreviation)]
	return id, ok
}

// Team returns the directory entry for a store id.
func (d *TeamDirectory) Team(id int64) (team.Team, bool) {
	if d == nil {
		return team.Team{}, false
	}
	item, ok := d.teamByID[id]
	return item, ok
}

func (d *TeamDirectory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.idByAbbreviation)
}

// Teams lists every entry ordered by abbreviation.
func (d *TeamDirectory) Teams() []team.Team {
	if d == nil {
		return nil
	}
	out := make([]team.Team, 0, len(d.teamByID))
	for _, item := range d.teamByID {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Abbreviation < out[j].Abbreviation })
	return out
}
