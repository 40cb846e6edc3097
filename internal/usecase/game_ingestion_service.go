package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/panics"

	"github.com/hoopcast/nba-ingest/internal/domain/game"
	"github.com/hoopcast/nba-ingest/internal/domain/team"
	"github.com/hoopcast/nba-ingest/internal/platform/logging"
)

const DefaultSeasonDelay = 2 * time.Second

type GameIngestionConfig struct {
	SeasonDelay          time.Duration
	BatchSize            int
	RejectMalformedDates bool
}

// SeasonReport counts the outcome of one season. Added only includes games
// that were actually committed.
type SeasonReport struct {
	Season           int
	FetchedRows      int
	Games            int
	Added            int
	Skipped          int
	Rejected         int
	RejectedByReason map[RejectReason]int
	Commits          int
	Duration         time.Duration
	Failed           bool
}

type IngestionReport struct {
	Seasons []SeasonReport
}

func (r IngestionReport) AddedBySeason() map[int]int {
	out := make(map[int]int, len(r.Seasons))
	for _, item := range r.Seasons {
		out[item.Season] = item.Added
	}
	return out
}

// Totals sums every season. Season is left at zero.
func (r IngestionReport) Totals() SeasonReport {
	total := SeasonReport{RejectedByReason: map[RejectReason]int{}}
	for _, item := range r.Seasons {
		total.FetchedRows += item.FetchedRows
		total.Games += item.Games
		total.Added += item.Added
		total.Skipped += item.Skipped
		total.Rejected += item.Rejected
		total.Commits += item.Commits
		total.Duration += item.Duration
		total.Failed = total.Failed || item.Failed
		for reason, count := range item.RejectedByReason {
			total.RejectedByReason[reason] += count
		}
	}
	return total
}

// GameIngestionService drives seasons through fetch, pairing and persistence.
// Seasons run one after another on the calling goroutine.
type GameIngestionService struct {
	source   GameSource
	teamRepo team.Repository
	gameRepo game.Repository
	cfg      GameIngestionConfig
	logger   *logging.Logger
	sleep    func(ctx context.Context, d time.Duration) error
	now      func() time.Time
}

func NewGameIngestionService(
	source GameSource,
	teamRepo team.Repository,
	gameRepo game.Repository,
	cfg GameIngestionConfig,
	logger *logging.Logger,
) *GameIngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.SeasonDelay < 0 {
		cfg.SeasonDelay = 0
	}

	return &GameIngestionService{
		source:   source,
		teamRepo: teamRepo,
		gameRepo: gameRepo,
		cfg:      cfg,
		logger:   logger,
		sleep:    sleepContext,
		now:      time.Now,
	}
}

// Run ingests seasons in the given order. The team directory is loaded once
// and must not be empty. The first fatal error stops the run; seasons and
// batches committed before it stay committed and are part of the report.
func (s *GameIngestionService) Run(ctx context.Context, seasons []int) (IngestionReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameIngestionService.Run")
	defer span.End()

	var report IngestionReport
	if len(seasons) == 0 {
		return report, fmt.Errorf("%w: at least one season is required", ErrInvalidInput)
	}

	directory, err := LoadTeamDirectory(ctx, s.teamRepo)
	if err != nil {
		return report, err
	}
	if directory.Len() == 0 {
		return report, ErrEmptyTeamDirectory
	}
	s.logger.InfoContext(ctx, "team directory loaded", "teams", directory.Len(), "seasons", seasons)

	for i, season := range seasons {
		seasonReport, err := s.runSeasonGuarded(ctx, season, directory)
		report.Seasons = append(report.Seasons, seasonReport)
		if err != nil {
			s.logger.ErrorContext(ctx, "season ingestion failed",
				"season", season,
				"added", seasonReport.Added,
				"commits", seasonReport.Commits,
				"error", err,
			)
			return report, fmt.Errorf("season %d: %w", season, err)
		}

		if i < len(seasons)-1 && s.cfg.SeasonDelay > 0 {
			if err := s.sleep(ctx, s.cfg.SeasonDelay); err != nil {
				return report, fmt.Errorf("wait before season %d: %w", seasons[i+1], err)
			}
		}
	}

	total := report.Totals()
	s.logger.InfoContext(ctx, "ingestion finished",
		"seasons", len(report.Seasons),
		"added", total.Added,
		"skipped", total.Skipped,
		"rejected", total.Rejected,
	)
	return report, nil
}

// seasonRun is the state of one season shared with the panic guard.
type seasonRun struct {
	report    SeasonReport
	writer    *GameWriter
	startedAt time.Time
}

// finish folds the writer counters into the report. It must run exactly once.
func (r *seasonRun) finish(now time.Time, failed bool) SeasonReport {
	applyWriterStats(&r.report, r.writer.Stats())
	r.report.Duration = now.Sub(r.startedAt)
	r.report.Failed = failed
	return r.report
}

func (s *GameIngestionService) runSeasonGuarded(ctx context.Context, season int, directory *TeamDirectory) (SeasonReport, error) {
	logger := s.logger.With("season", season)
	run := &seasonRun{
		report:    SeasonReport{Season: season, RejectedByReason: map[RejectReason]int{}},
		writer:    NewGameWriter(s.gameRepo, s.cfg.BatchSize, logger),
		startedAt: s.now(),
	}

	var err error
	var catcher panics.Catcher
	catcher.Try(func() {
		err = s.ingestSeason(ctx, run, directory, logger)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		return run.finish(s.now(), true), errors.Wrap(recovered.AsError(), "panic during season ingestion")
	}
	if err != nil {
		return run.finish(s.now(), true), err
	}

	report := run.finish(s.now(), false)
	logger.InfoContext(ctx, "season ingested",
		"added", report.Added,
		"skipped", report.Skipped,
		"rejected", report.Rejected,
		"commits", report.Commits,
		"duration", report.Duration,
	)
	return report, nil
}

func (s *GameIngestionService) ingestSeason(ctx context.Context, run *seasonRun, directory *TeamDirectory, logger *logging.Logger) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameIngestionService.ingestSeason")
	defer span.End()

	report := &run.report
	logger.InfoContext(ctx, "fetching season games")
	rows, err := s.source.FetchSeasonGames(ctx, report.Season)
	if err != nil {
		if !errors.Is(err, ErrSourceFetch) {
			err = fmt.Errorf("%w: %w", ErrSourceFetch, err)
		}
		return err
	}
	report.FetchedRows = len(rows)

	groups := GroupSeasonRows(rows)
	report.Games = len(groups)
	logger.InfoContext(ctx, "season rows fetched", "rows", len(rows), "games", len(groups))

	opts := ResolveOptions{RejectMalformedDates: s.cfg.RejectMalformedDates}
	for _, group := range groups {
		exists, err := s.gameRepo.ExistsByID(ctx, group.GameID)
		if err != nil {
			return fmt.Errorf("%w: check game %s: %w", ErrStoreUnavailable, group.GameID, err)
		}
		if exists {
			report.Skipped++
			continue
		}

		candidate, err := ResolveGameGroup(report.Season, group, directory, opts)
		if err != nil {
			var rejection *GameRejection
			if errors.As(err, &rejection) {
				report.Rejected++
				report.RejectedByReason[rejection.Reason]++
				logger.WarnContext(ctx, "game rejected",
					"game_id", rejection.GameID,
					"reason", string(rejection.Reason),
					"detail", rejection.Detail,
				)
				continue
			}
			return err
		}

		outcome, err := run.writer.Persist(ctx, candidate)
		if err != nil {
			return err
		}
		if outcome == PersistSkipped {
			report.Skipped++
			continue
		}
		logger.DebugContext(ctx, "game queued",
			"game_id", candidate.ID,
			"date", candidate.Date.Format(game.DateLayout),
			"home", teamName(directory, candidate.HomeTeamID),
			"away", teamName(directory, candidate.AwayTeamID),
		)
	}

	_, err = run.writer.Flush(ctx)
	return err
}

// applyWriterStats counts only committed rows as added. Rows lost to a
// concurrent writer are skipped.
func applyWriterStats(report *SeasonReport, stats WriterStats) {
	report.Commits = stats.Commits
	report.Added = stats.Inserted
	report.Skipped += stats.Conflicts
}

func teamName(directory *TeamDirectory, id int64) string {
	if t, ok := directory.Team(id); ok {
		return t.Name
	}
	return fmt.Sprintf("team %d", id)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
