package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "snaprel",
		Short:   "Snapshot release publisher for pnpm workspaces",
		Version: version,
	}

	cmd.PersistentFlags().String("root", ".", "Workspace root directory")
	cmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	cmd.AddCommand(
		newInitCmd(),
		newReleaseCmd(),
		newStatusCmd(),
		newDoctorCmd(),
	)

	return cmd
}

// newLogger builds the diagnostic logger for a command invocation.
// Diagnostics go to stderr so stdout stays parseable.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:  level,
		Prefix: "snaprel",
	})
}
