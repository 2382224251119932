package main

import (
	"fmt"

	"github.com/YggTools/snaprel/internal/release"
	"github.com/YggTools/snaprel/internal/workspace"
	"github.com/spf13/cobra"
)

func newReleaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Publish snapshot prereleases for every workspace package",
		RunE:  runRelease,
	}
	cmd.Flags().String("mode", "", "Release mode (required; only \"ci\" is supported)")
	cmd.Flags().Int("jobs", 4, "Number of parallel workers")
	cmd.Flags().String("report", "", "Write a JSON run report to this path")
	return cmd
}

func runRelease(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	modeStr, _ := cmd.Flags().GetString("mode")
	jobs, _ := cmd.Flags().GetInt("jobs")
	report, _ := cmd.Flags().GetString("report")

	// Configuration problems are fatal before any side effects.
	if _, err := release.ParseMode(modeStr); err != nil {
		return err
	}
	if jobs < 1 {
		return fmt.Errorf("--jobs must be >= 1 (got %d)", jobs)
	}

	ctx, err := workspace.Load(root)
	if err != nil {
		return err
	}

	coord := release.New(release.Config{
		Root:        ctx.Root,
		Scope:       ctx.Config.Scope,
		PublishTag:  ctx.Config.PublishTag,
		PromoteTag:  ctx.Config.PromoteTag,
		Hooks:       ctx.Config.Hooks,
		Jobs:        jobs,
		ReportPath:  report,
		ToolVersion: version,
		Out:         cmd.OutOrStdout(),
		Log:         newLogger(cmd),
	})
	if err := coord.Run(); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Release complete.")
	return nil
}
