package main

import (
	"encoding/json"
	"path/filepath"

	"github.com/YggTools/snaprel/internal/git"
	"github.com/YggTools/snaprel/internal/release"
	"github.com/YggTools/snaprel/internal/ui"
	"github.com/YggTools/snaprel/internal/workspace"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show every workspace package and what a release would do",
		RunE:  runStatus,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type pkgStatus struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Snapshot string `json:"snapshot,omitempty"`
	State    string `json:"state"`
	Path     string `json:"path"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	asJSON, _ := cmd.Flags().GetBool("json")
	logger := newLogger(cmd)

	ctx, err := workspace.Load(root)
	if err != nil {
		return err
	}
	pkgs, err := workspace.List(ctx.Root)
	if err != nil {
		return err
	}

	describe := ""
	if git.IsRepo(ctx.Root) {
		if describe, err = git.Describe(ctx.Root); err != nil {
			logger.Warn("git describe failed", "err", err)
			describe = ""
		}
	}

	statuses := make([]pkgStatus, 0, len(pkgs))
	for _, p := range pkgs {
		statuses = append(statuses, collectStatus(ctx, p, describe))
	}

	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	tbl := ui.NewTable(out, "NAME", "VERSION", "SNAPSHOT", "STATE", "PATH")
	for _, s := range statuses {
		tbl.Row(s.Name, s.Version, s.Snapshot, s.State, s.Path)
	}
	return tbl.Flush()
}

func collectStatus(ctx *workspace.Context, p workspace.Package, describe string) pkgStatus {
	s := pkgStatus{
		Name:    p.Name,
		Version: p.Version,
		State:   string(workspace.Classify(p, ctx.Root, ctx.Config.Scope)),
		Path:    relPath(ctx.Root, p.Dir),
	}
	if s.State == string(workspace.StateReleasable) && describe != "" {
		if snap, err := release.SnapshotVersion(p.Version, describe); err == nil {
			s.Snapshot = snap
		}
	}
	return s
}

func relPath(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return dir
	}
	return rel
}
