package memory

import (
	"context"
	"testing"

	"github.com/hoopcast/nba-ingest/internal/domain/team"
)

func TestTeamRepository_InsertMissingAssignsIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewTeamRepository([]team.Team{{ID: 7, Abbreviation: "BOS", Name: "Boston Celtics"}})

	added, err := repo.InsertMissing(ctx, []team.Team{
		{Abbreviation: "bos", Name: "Boston Celtics"},
		{Abbreviation: "LAL", Name: "Los Angeles Lakers"},
	})
	if err != nil {
		t.Fatalf("insert missing: %v", err)
	}
	if added != 1 {
		t.Fatalf("expected 1 added, got %d", added)
	}

	teams, _ := repo.ListAll(ctx)
	if len(teams) != 2 || teams[0].Abbreviation != "BOS" || teams[1].Abbreviation != "LAL" {
		t.Fatalf("unexpected teams: %+v", teams)
	}
	if teams[1].ID != 8 {
		t.Fatalf("expected next serial id 8, got %d", teams[1].ID)
	}
}
