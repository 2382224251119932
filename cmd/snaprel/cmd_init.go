package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/YggTools/snaprel/internal/config"
	"github.com/YggTools/snaprel/internal/workspace"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create snaprel.yaml for the workspace",
		RunE:  runInit,
	}
	cmd.Flags().String("scope", "", "Restrict releases to one npm scope (e.g. @acme)")
	cmd.Flags().String("publish-tag", "", "Dist-tag for snapshot publishes")
	cmd.Flags().String("promote-tag", "", "Rolling dist-tag for promoted snapshots")
	cmd.Flags().String("prepublish", "", "Workspace script to run before publishing")
	cmd.Flags().String("postpublish", "", "Workspace script to run after publishing")
	cmd.Flags().Bool("force", false, "Overwrite an existing snaprel.yaml")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	force, _ := cmd.Flags().GetBool("force")

	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving workspace root: %w", err)
	}
	if config.Exists(root) && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.Path(root))
	}

	f := config.Default()
	flagsUsed := applyInitFlags(cmd, f)

	// Prompt only when nothing was configured explicitly and a human is
	// attached; CI invocations just get the defaults.
	if !flagsUsed && term.IsTerminal(int(os.Stdin.Fd())) {
		if err := promptConfig(f); err != nil {
			return err
		}
	}

	if err := config.Save(root, f); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", config.Path(root))

	if !workspace.IsWorkspace(root) {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Warning: pnpm-workspace.yaml not found; is this the workspace root?")
	}
	return nil
}

// applyInitFlags copies explicitly set flags into f and reports whether
// any were given.
func applyInitFlags(cmd *cobra.Command, f *config.File) bool {
	used := false
	set := func(name string, dst *string) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
			used = true
		}
	}
	set("scope", &f.Scope)
	set("publish-tag", &f.PublishTag)
	set("promote-tag", &f.PromoteTag)
	set("prepublish", &f.Hooks.Prepublish)
	set("postpublish", &f.Hooks.Postpublish)
	return used
}
