package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/hoopcast/nba-ingest/external/nbastats"
	"github.com/hoopcast/nba-ingest/internal/app"
	"github.com/hoopcast/nba-ingest/internal/platform/runlock"
)

type seasonSelection struct {
	season int
	all    bool
}

func newGamesCommand(cc *commandContext) *cobra.Command {
	var (
		season int
		all    bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "games (--season YEAR | --all)",
		Short: "Ingest regular-season games for one season or the configured range",
		Example: "  nba-ingest games --season 2024\n" +
			"  nba-ingest games --all\n" +
			"  nba-ingest games --season 2023 --dry-run",
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			selection, err := parseSeasonSelection(cmd, season, all)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := cc.ensureRuntime(ctx); err != nil {
				return err
			}

			seasons := []int{selection.season}
			if selection.all {
				seasons = cc.cfg.AllSeasons()
			}

			ctx, span := otel.Tracer("nba-ingest/cmd").Start(ctx, "cli.games")
			defer span.End()
			span.SetAttributes(
				attribute.String("run_id", cc.runID),
				attribute.IntSlice("seasons", seasons),
				attribute.Bool("dry_run", dryRun),
			)

			release, err := runlock.Acquire(cc.cfg.IngestLockPath)
			if err != nil {
				return err
			}
			defer func() {
				if err := release(); err != nil {
					cc.logger.Warn("release ingestion lock", "error", err)
				}
			}()

			db, err := cc.database(ctx)
			if err != nil {
				return err
			}

			source := app.NewNBAStatsClient(cc.cfg, cc.logger)
			svc := app.NewGameIngestionService(cc.cfg, db, source, cc.logger, app.IngestionOptions{DryRun: dryRun})

			cc.logger.InfoContext(ctx, "game ingestion started", "seasons", seasons, "dry_run", dryRun)
			report, runErr := svc.Run(ctx, seasons)

			fmt.Fprintln(cmd.OutOrStdout(), renderIngestionReport(report, dryRun))
			if runErr != nil {
				cc.logger.ErrorContext(ctx, "game ingestion failed", "error", runErr)
				return runErr
			}
			totals := report.Totals()
			cc.logger.InfoContext(ctx, "game ingestion finished",
				"added", totals.Added,
				"skipped", totals.Skipped,
				"rejected", totals.Rejected,
			)
			return nil
		},
	}

	cmd.Flags().IntVar(&season, "season", 0, "Season start year, e.g. 2024 for 2024-25")
	cmd.Flags().BoolVar(&all, "all", false, "Ingest every season in INGEST_FIRST_SEASON..INGEST_LAST_SEASON")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Fetch and resolve games without committing them")

	return cmd
}

// parseSeasonSelection requires exactly one of --season and --all.
func parseSeasonSelection(cmd *cobra.Command, season int, all bool) (seasonSelection, error) {
	hasSeason := cmd.Flags().Changed("season")
	switch {
	case hasSeason && all:
		return seasonSelection{}, newUsageError(cmd, "--season and --all cannot be combined")
	case !hasSeason && !all:
		return seasonSelection{}, newUsageError(cmd, "one of --season or --all is required")
	case all:
		return seasonSelection{all: true}, nil
	}

	if _, err := nbastats.SeasonLabel(season); err != nil {
		return seasonSelection{}, newUsageError(cmd, "invalid --season: %v", err)
	}
	return seasonSelection{season: season}, nil
}
