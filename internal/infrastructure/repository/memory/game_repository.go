package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hoopcast/nba-ingest/internal/domain/game"
)

type existenceChecker interface {
	ExistsByID(ctx context.Context, gameID string) (bool, error)
}

// GameRepository keeps games in memory. With a backing checker it acts as a
// dry-run store: existence is answered by the backing store and by what was
// recorded here, while inserts never leave the process.
type GameRepository struct {
	mu      sync.RWMutex
	games   map[string]game.Game
	batches []int
	backing existenceChecker
	now     func() time.Time
}

func NewGameRepository(seed ...game.Game) *GameRepository {
	r := &GameRepository{
		games: make(map[string]game.Game, len(seed)),
		now:   time.Now,
	}
	for _, item := range seed {
		r.games[item.ID] = item
	}
	return r
}

func NewDryRunGameRepository(backing existenceChecker) *GameRepository {
	r := NewGameRepository()
	r.backing = backing
	return r
}

func (r *GameRepository) ExistsByID(ctx context.Context, gameID string) (bool, error) {
	r.mu.RLock()
	_, ok := r.games[gameID]
	r.mu.RUnlock()
	if ok || r.backing == nil {
		return ok, nil
	}
	return r.backing.ExistsByID(ctx, gameID)
}

func (r *GameRepository) InsertBatch(_ context.Context, games []game.Game) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	inserted := 0
	for _, item := range games {
		if _, ok := r.games[item.ID]; ok {
			continue
		}
		item.CreatedAt = now
		item.UpdatedAt = now
		r.games[item.ID] = item
		inserted++
	}
	r.batches = append(r.batches, len(games))
	return inserted, nil
}

func (r *GameRepository) Get(gameID string) (game.Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.games[gameID]
	return item, ok
}

// Games returns every stored game ordered by date, then id.
func (r *GameRepository) Games() []game.Game {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(r.games))
	for _, item := range r.games {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// BatchSizes lists the size of every InsertBatch call in order.
func (r *GameRepository) BatchSizes() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]int(nil), r.batches...)
}
