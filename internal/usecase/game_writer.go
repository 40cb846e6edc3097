package usecase

import (
	"context"
	"fmt"

	"github.com/hoopcast/nba-ingest/internal/domain/game"
	"github.com/hoopcast/nba-ingest/internal/platform/logging"
)

const DefaultBatchSize = 100

type PersistOutcome string

const (
	PersistAdded   PersistOutcome = "added"
	PersistSkipped PersistOutcome = "skipped"
)

// FlushResult describes one committed batch. Conflicts are rows another
// writer inserted between the existence check and the commit.
type FlushResult struct {
	Size      int
	Inserted  int
	Conflicts int
}

// WriterStats accumulates flush results over the lifetime of a writer.
type WriterStats struct {
	Commits   int
	Inserted  int
	Conflicts int
}

// GameWriter queues new games and commits them in fixed-size batches, one
// transaction per batch. It is not safe for concurrent use.
type GameWriter struct {
	repo       game.Repository
	batchSize  int
	logger     *logging.Logger
	pending    []game.Game
	pendingIDs map[string]struct{}
	stats      WriterStats
}

func NewGameWriter(repo game.Repository, batchSize int, logger *logging.Logger) *GameWriter {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &GameWriter{
		repo:       repo,
		batchSize:  batchSize,
		logger:     logger,
		pending:    make([]game.Game, 0, batchSize),
		pendingIDs: make(map[string]struct{}, batchSize),
	}
}

// Persist re-checks the store for candidate.ID and queues the game when it
// is new. A full batch is flushed before Persist returns.
func (w *GameWriter) Persist(ctx context.Context, candidate game.Game) (PersistOutcome, error) {
	if err := candidate.Validate(); err != nil {
		return "", fmt.Errorf("%w: game %s: %v", ErrInvalidInput, candidate.ID, err)
	}
	if _, ok := w.pendingIDs[candidate.ID]; ok {
		return PersistSkipped, nil
	}

	exists, err := w.repo.ExistsByID(ctx, candidate.ID)
	if err != nil {
		return "", fmt.Errorf("%w: check game %s: %w", ErrStoreUnavailable, candidate.ID, err)
	}
	if exists {
		return PersistSkipped, nil
	}

	w.pending = append(w.pending, candidate)
	w.pendingIDs[candidate.ID] = struct{}{}
	if len(w.pending) >= w.batchSize {
		if _, err := w.Flush(ctx); err != nil {
			return "", err
		}
	}
	return PersistAdded, nil
}

// Flush commits whatever is pending. It is a no-op on an empty queue.
func (w *GameWriter) Flush(ctx context.Context) (FlushResult, error) {
	if len(w.pending) == 0 {
		return FlushResult{}, nil
	}

	batch := w.pending
	w.pending = make([]game.Game, 0, w.batchSize)
	w.pendingIDs = make(map[string]struct{}, w.batchSize)

	inserted, err := w.repo.InsertBatch(ctx, batch)
	if err != nil {
		return FlushResult{}, fmt.Errorf("%w: %d games starting at %s: %w", ErrBatchCommit, len(batch), batch[0].ID, err)
	}

	result := FlushResult{Size: len(batch), Inserted: inserted}
	if conflicts := len(batch) - inserted; conflicts > 0 {
		result.Conflicts = conflicts
		w.logger.WarnContext(ctx, "games inserted concurrently, counted as skipped", "conflicts", conflicts)
	}
	w.stats.Commits++
	w.stats.Inserted += result.Inserted
	w.stats.Conflicts += result.Conflicts

	w.logger.InfoContext(ctx, "committed game batch",
		"batch", w.stats.Commits,
		"size", result.Size,
		"inserted_total", w.stats.Inserted,
	)
	return result, nil
}

func (w *GameWriter) Pending() int {
	return len(w.pending)
}

func (w *GameWriter) Stats() WriterStats {
	return w.stats
}
