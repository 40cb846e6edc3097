package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoopcast/nba-ingest/internal/domain/team"
	"github.com/hoopcast/nba-ingest/internal/usecase"
)

// isolateEnv points every side-effecting setting at paths the test owns so
// it can prove they were never touched.
func isolateEnv(t *testing.T) (lockPath, envPath string) {
	t.Helper()
	dir := t.TempDir()
	lockPath = filepath.Join(dir, "ingest.lock")
	envPath = filepath.Join(dir, "missing.env")
	t.Setenv("INGEST_LOCK_PATH", lockPath)
	t.Setenv("DB_URL", "postgres://nobody@127.0.0.1:1/none?sslmode=disable")
	t.Setenv("NBA_API_BASE_URL", "http://127.0.0.1:1")
	return lockPath, envPath
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestGamesCommand_UsageErrorsHaveNoSideEffects(t *testing.T) {
	cases := map[string][]string{
		"no selection":   {"games"},
		"both selectors": {"games", "--season", "2024", "--all"},
		"invalid season": {"games", "--season", "1800"},
		"unknown flag":   {"games", "--seasons", "2024"},
		"stray argument": {"games", "2024"},
	}

	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			lockPath, envPath := isolateEnv(t)
			args = append(args, "--env-file", envPath)

			code, stdout, stderr := runCLI(t, args...)

			assert.Equal(t, exitUsage, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Usage:")
			assert.Contains(t, stderr, "--season")
			_, statErr := os.Stat(lockPath)
			assert.True(t, os.IsNotExist(statErr), "lock file must not be created")
		})
	}
}

func TestGamesCommand_MissingSelectionMessage(t *testing.T) {
	_, envPath := isolateEnv(t)

	code, _, stderr := runCLI(t, "games", "--env-file", envPath)

	require.Equal(t, exitUsage, code)
	assert.True(t, strings.HasPrefix(stderr, "error: one of --season or --all is required"), stderr)
}

func TestGamesCommand_InvalidConfigIsFailure(t *testing.T) {
	_, envPath := isolateEnv(t)
	t.Setenv("APP_ENV", "nowhere")

	code, _, stderr := runCLI(t, "games", "--season", "2024", "--env-file", envPath)

	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "load config")
}

func TestRootCommand_HelpExitsCleanly(t *testing.T) {
	code, stdout, _ := runCLI(t, "--help")

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "games")
	assert.Contains(t, stdout, "teams")
}

func TestRenderIngestionReport(t *testing.T) {
	report := usecase.IngestionReport{Seasons: []usecase.SeasonReport{
		{
			Season: 2023, FetchedRows: 2460, Games: 1230, Added: 1228, Skipped: 0, Rejected: 2,
			RejectedByReason: map[usecase.RejectReason]int{usecase.RejectReasonUnknownTeam: 2},
			Commits:          13, Duration: 1500 * time.Millisecond,
		},
		{Season: 2024, FetchedRows: 4, Games: 2, Skipped: 2, Failed: true},
	}}

	out := renderIngestionReport(report, true)

	assert.Contains(t, out, "dry run")
	assert.Contains(t, out, "2023-24")
	assert.Contains(t, out, "2024-25")
	assert.Contains(t, out, "1228")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "unknown_team=2")
}

func TestRenderIngestionReport_Empty(t *testing.T) {
	assert.Equal(t, "no seasons ingested", renderIngestionReport(usecase.IngestionReport{}, false))
}

func TestRenderTeamDirectory(t *testing.T) {
	out := renderTeamDirectory([]team.Team{
		{ID: 1, Abbreviation: "ATL", Name: "Atlanta Hawks", Conference: team.ConferenceEast, Division: "Southeast"},
		{ID: 2, Abbreviation: "BOS", Name: "Boston Celtics", Conference: team.ConferenceEast, Division: "Atlantic"},
	})

	assert.Contains(t, out, "Atlanta Hawks")
	assert.Contains(t, out, "BOS")
	assert.Contains(t, out, "2 teams")
	assert.Contains(t, renderTeamDirectory(nil), "teams seed")
}
