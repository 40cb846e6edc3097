package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// usageError is an invocation mistake. It is reported with the command usage
// and exit code 2, and is always returned before any config, store or network
// access.
type usageError struct {
	cmd *cobra.Command
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func newUsageError(cmd *cobra.Command, format string, args ...any) error {
	return &usageError{cmd: cmd, msg: fmt.Sprintf(format, args...)}
}

func newRootCommand(cc *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nba-ingest",
		Short:         "Load NBA regular-season games into the predictions store",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return newUsageError(cmd, "%v", err)
	})
	rootCmd.PersistentFlags().StringVar(&cc.envFile, "env-file", ".env", "Optional dotenv file loaded before reading the environment")

	rootCmd.AddCommand(newGamesCommand(cc))
	rootCmd.AddCommand(newTeamsCommand(cc))

	return rootCmd
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return newUsageError(cmd, "unexpected argument %q", args[0])
	}
	return nil
}
