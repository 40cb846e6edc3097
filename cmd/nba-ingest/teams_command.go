package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoopcast/nba-ingest/internal/app"
)

func newTeamsCommand(cc *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Manage the team directory",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Insert the 30 NBA franchises that are missing from the store",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := cc.ensureRuntime(ctx); err != nil {
				return err
			}
			db, err := cc.database(ctx)
			if err != nil {
				return err
			}

			result, err := app.NewTeamSeedService(db, cc.logger).Seed(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "teams added: %d, already present: %d\n", result.Added, result.Skipped)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the team directory used to resolve abbreviations",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := cc.ensureRuntime(ctx); err != nil {
				return err
			}
			db, err := cc.database(ctx)
			if err != nil {
				return err
			}

			directory, err := app.NewTeamSeedService(db, cc.logger).Directory(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTeamDirectory(directory.Teams()))
			return nil
		},
	})

	return cmd
}
