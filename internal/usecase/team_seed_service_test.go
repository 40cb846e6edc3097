package usecase

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/mock"

	"github.com/hoopcast/nba-ingest/internal/infrastructure/repository/memory"
	teammock "github.com/hoopcast/nba-ingest/internal/mocks/domain/team"
)

func TestTeamSeedService_SeedIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := memory.NewTeamRepository(nil)
	svc := NewTeamSeedService(repo, nil)

	first, err := svc.Seed(context.Background())
	if err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if first.Added != 30 || first.Skipped != 0 {
		t.Fatalf("unexpected first seed: %+v", first)
	}

	second, err := svc.Seed(context.Background())
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if second.Added != 0 || second.Skipped != 30 {
		t.Fatalf("unexpected second seed: %+v", second)
	}

	directory, err := svc.Directory(context.Background())
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	if directory.Len() != 30 {
		t.Fatalf("unexpected directory size: %d", directory.Len())
	}
	if _, ok := directory.Resolve("OKC"); !ok {
		t.Fatalf("expected OKC in directory")
	}
}

func TestTeamSeedService_StoreFailure(t *testing.T) {
	t.Parallel()

	repo := teammock.NewRepository(t)
	repo.On("InsertMissing", mock.Anything, mock.Anything).Return(0, errors.New("relation \"teams\" does not exist")).Once()

	_, err := NewTeamSeedService(repo, nil).Seed(context.Background())
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
