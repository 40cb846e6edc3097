package usecase

import (
	"context"
	"fmt"

	"github.com/hoopcast/nba-ingest/internal/domain/team"
	"github.com/hoopcast/nba-ingest/internal/platform/logging"
)

type TeamSeedResult struct {
	Added   int
	Skipped int
}

// TeamSeedService loads the static franchise roster into the store.
type TeamSeedService struct {
	repo   team.Repository
	logger *logging.Logger
}

func NewTeamSeedService(repo team.Repository, logger *logging.Logger) *TeamSeedService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamSeedService{repo: repo, logger: logger}
}

// Seed inserts every roster team missing from the store. Running it again is a no-op.
func (s *TeamSeedService) Seed(ctx context.Context) (TeamSeedResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamSeedService.Seed")
	defer span.End()

	roster := team.Roster()
	for _, item := range roster {
		if err := item.Validate(); err != nil {
			return TeamSeedResult{}, fmt.Errorf("%w: team %s: %v", ErrInvalidInput, item.Abbreviation, err)
		}
	}

	added, err := s.repo.InsertMissing(ctx, roster)
	if err != nil {
		return TeamSeedResult{}, fmt.Errorf("%w: seed teams: %w", ErrStoreUnavailable, err)
	}

	result := TeamSeedResult{Added: added, Skipped: len(roster) - added}
	s.logger.InfoContext(ctx, "team roster seeded", "added", result.Added, "skipped", result.Skipped)
	return result, nil
}

// Directory loads the current team directory for display.
func (s *TeamSeedService) Directory(ctx context.Context) (*TeamDirectory, error) {
	return LoadTeamDirectory(ctx, s.repo)
}
