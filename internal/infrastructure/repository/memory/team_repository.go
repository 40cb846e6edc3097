package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hoopcast/nba-ingest/internal/domain/team"
)

type TeamRepository struct {
	mu             sync.RWMutex
	nextID         int64
	byAbbreviation map[string]team.Team
}

// NewTeamRepository stores teams as given. Teams without an id get the next
// free one, mirroring a serial primary key.
func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{byAbbreviation: make(map[string]team.Team, len(teams))}
	for _, item := range teams {
		if item.ID > r.nextID {
			r.nextID = item.ID
		}
	}
	for _, item := range teams {
		r.insertLocked(item)
	}
	return r
}

func (r *TeamRepository) ListAll(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.byAbbreviation))
	for _, item := range r.byAbbreviation {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Abbreviation < out[j].Abbreviation })
	return out, nil
}

func (r *TeamRepository) InsertMissing(_ context.Context, teams []team.Team) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := 0
	for _, item := range teams {
		if r.insertLocked(item) {
			added++
		}
	}
	return added, nil
}

func (r *TeamRepository) insertLocked(item team.Team) bool {
	abbr := team.NormalizeAbbreviation(item.Abbreviation)
	if abbr == "" {
		return false
	}
	if _, ok := r.byAbbreviation[abbr]; ok {
		return false
	}
	if item.ID == 0 {
		r.nextID++
		item.ID = r.nextID
	}
	item.Abbreviation = abbr
	r.byAbbreviation[abbr] = item
	return true
}
