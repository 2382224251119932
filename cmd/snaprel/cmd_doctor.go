package main

import (
	"fmt"
	"io"

	"github.com/YggTools/snaprel/internal/config"
	"github.com/YggTools/snaprel/internal/git"
	"github.com/YggTools/snaprel/internal/npm"
	"github.com/YggTools/snaprel/internal/ui"
	"github.com/YggTools/snaprel/internal/workspace"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment for common release blockers",
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	out := cmd.OutOrStdout()
	ok := true

	ok = checkTool(out, "git", git.IsInstalled, git.Version) && ok
	ok = checkTool(out, "pnpm", npm.PnpmInstalled, npm.PnpmVersion) && ok
	npmFound := checkTool(out, "npm", npm.NpmInstalled, npm.NpmVersion)
	ok = npmFound && ok

	ctx, err := workspace.Load(root)
	if err != nil {
		fmt.Fprintf(out, "Checking config... %s (%v)\n", ui.ErrStyle.Render("INVALID"), err)
		ok = false
	} else {
		root = ctx.Root
		if config.Exists(root) {
			fmt.Fprintf(out, "Config: %s (publish %q, promote %q)\n",
				ctx.ConfigPath, ctx.Config.PublishTag, ctx.Config.PromoteTag)
		} else {
			fmt.Fprintln(out, "Config: built-in defaults (run `snaprel init` to customize)")
		}
	}

	fmt.Fprint(out, "Checking workspace... ")
	if workspace.IsWorkspace(root) {
		fmt.Fprintln(out, ui.OKStyle.Render("OK"))
	} else {
		fmt.Fprintln(out, ui.ErrStyle.Render("NOT FOUND"))
		fmt.Fprintln(out, "  pnpm-workspace.yaml is missing; run from the workspace root")
		ok = false
	}

	fmt.Fprint(out, "Checking git repository... ")
	if git.IsRepo(root) {
		fmt.Fprintln(out, ui.OKStyle.Render("OK"))
	} else {
		fmt.Fprintln(out, ui.WarnStyle.Render("MISSING"))
		fmt.Fprintln(out, "  snapshot versions need `git describe`; initialize a repository first")
		ok = false
	}

	if npmFound {
		fmt.Fprint(out, "Checking registry... ")
		if err := npm.Ping(root); err != nil {
			fmt.Fprintf(out, "%s (%v)\n", ui.ErrStyle.Render("UNREACHABLE"), err)
			ok = false
		} else {
			fmt.Fprintln(out, ui.OKStyle.Render("OK"))
		}
	}

	if ok {
		fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

// checkTool prints one "Checking <name>..." line and reports presence.
func checkTool(out io.Writer, name string, installed func() bool, versionOf func() (string, error)) bool {
	fmt.Fprintf(out, "Checking %s... ", name)
	if !installed() {
		fmt.Fprintln(out, ui.ErrStyle.Render("NOT FOUND"))
		return false
	}
	v, err := versionOf()
	if err != nil {
		fmt.Fprintf(out, "%s (%v)\n", ui.ErrStyle.Render("ERROR"), err)
		return false
	}
	fmt.Fprintln(out, v)
	return true
}
