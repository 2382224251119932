package release

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/YggTools/snaprel/internal/config"
	"github.com/YggTools/snaprel/internal/git"
	"github.com/YggTools/snaprel/internal/manifest"
	"github.com/YggTools/snaprel/internal/npm"
	"github.com/YggTools/snaprel/internal/ui"
	"github.com/YggTools/snaprel/internal/workspace"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Config carries everything a release run needs. Ambient state like the
// working directory is resolved by the caller, never read mid-flow.
type Config struct {
	Root        string
	Scope       string
	PublishTag  string
	PromoteTag  string
	Hooks       config.Hooks
	Jobs        int
	ReportPath  string
	ToolVersion string
	Out         io.Writer
	Log         *log.Logger
}

// Candidate is a package scheduled for promotion because its snapshot
// version was absent from the registry.
type Candidate struct {
	Name    string
	Version string
}

// Spec returns the registry spec name@version.
func (c Candidate) Spec() string {
	return c.Name + "@" + c.Version
}

// snapshot remembers one manifest's pre-run fields for restoration.
type snapshot struct {
	pkg   workspace.Package
	prev  manifest.Fields
	taken bool
}

// Coordinator runs the snapshot release flow against one workspace.
type Coordinator struct {
	cfg  Config
	prog *ui.Progress
}

// New creates a coordinator, filling in defaults for unset fields.
func New(cfg Config) *Coordinator {
	if cfg.Jobs < 1 {
		cfg.Jobs = 1
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if cfg.Log == nil {
		cfg.Log = log.New(io.Discard)
	}
	return &Coordinator{cfg: cfg, prog: ui.NewProgress(cfg.Out)}
}

// Run executes the full flow: discover, bump, publish, promote, and
// finally restore. Restore runs even when an earlier phase failed; a
// restore failure is joined with the phase error rather than masking it.
func (c *Coordinator) Run() (err error) {
	start := time.Now()

	pkgs, err := c.discover()
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		_, _ = fmt.Fprintln(c.cfg.Out, "No releasable packages found.")
		return nil
	}

	describe, err := git.Describe(c.cfg.Root)
	if err != nil {
		return err
	}
	head, err := git.Head(c.cfg.Root)
	if err != nil {
		return err
	}
	c.cfg.Log.Debug("revision resolved", "describe", describe, "head", head)

	// Manifests may be half mutated from here on.
	snaps := make([]snapshot, len(pkgs))
	defer func() {
		err = errors.Join(err, c.restore(snaps))
	}()

	candidates, err := c.bump(pkgs, snaps, describe, head)
	if err != nil {
		return err
	}

	if err := c.publish(); err != nil {
		return err
	}

	if err := c.promote(candidates); err != nil {
		return err
	}

	if c.cfg.ReportPath != "" {
		if err := c.report(describe, head, candidates, start); err != nil {
			return err
		}
	}
	return nil
}

func (c *Coordinator) discover() ([]workspace.Package, error) {
	all, err := workspace.List(c.cfg.Root)
	if err != nil {
		return nil, err
	}
	pkgs := workspace.Filter(all, c.cfg.Root, c.cfg.Scope)
	c.cfg.Log.Debug("discovered packages", "total", len(all), "releasable", len(pkgs))
	return pkgs, nil
}

// bump rewrites each manifest to its snapshot version and checks which
// of those versions the registry does not know yet. The per-package
// progress line is printed before the registry call, so an aborted run
// still shows which package it was acting on.
func (c *Coordinator) bump(pkgs []workspace.Package, snaps []snapshot, describe, head string) ([]Candidate, error) {
	c.prog.Phase(fmt.Sprintf("Bumping %d packages against %s", len(pkgs), describe), len(pkgs))

	scheduled := make([]*Candidate, len(pkgs))
	var g errgroup.Group
	g.SetLimit(c.cfg.Jobs)
	for i, p := range pkgs {
		i, p := i, p
		g.Go(func() error {
			next, err := SnapshotVersion(p.Version, describe)
			if err != nil {
				return fmt.Errorf("%s: %w", p.Name, err)
			}

			if next == p.Version {
				prev, err := manifest.Read(p.ManifestPath())
				if err != nil {
					return fmt.Errorf("%s: %w", p.Name, err)
				}
				snaps[i] = snapshot{pkg: p, prev: prev, taken: true}
				c.prog.Done(fmt.Sprintf("%s %s (no change)", p.Name, p.Version))
				return nil
			}

			prev, _, err := manifest.Apply(p.ManifestPath(), manifest.Fields{Version: next, GitHead: head})
			if err != nil {
				return fmt.Errorf("%s: %w", p.Name, err)
			}
			snaps[i] = snapshot{pkg: p, prev: prev, taken: true}
			c.prog.Done(fmt.Sprintf("%s %s -> %s", p.Name, p.Version, next))

			spec := p.Spec(next)
			switch err := npm.ViewVersion(c.cfg.Root, spec); {
			case err == nil:
				c.prog.Log("%s already published, skipping", spec)
			case errors.Is(err, npm.ErrNotFound):
				scheduled[i] = &Candidate{Name: p.Name, Version: next}
			default:
				return fmt.Errorf("registry check %s: %w", spec, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var candidates []Candidate
	for _, cand := range scheduled {
		if cand != nil {
			candidates = append(candidates, *cand)
		}
	}
	c.cfg.Log.Debug("bump finished", "candidates", len(candidates))
	return candidates, nil
}

// publish runs the prepublish hook, one batched publish for the whole
// workspace, and the postpublish hook. The postpublish hook runs even
// when publishing failed; the publish error is re-raised afterwards.
func (c *Coordinator) publish() error {
	c.prog.Phase(fmt.Sprintf("Publishing workspace under tag %q", c.cfg.PublishTag), 1)

	if s := c.cfg.Hooks.Prepublish; s != "" {
		if err := npm.RunScript(c.cfg.Root, s, c.cfg.Out); err != nil {
			return err
		}
	}

	pubErr := npm.PublishRecursive(c.cfg.Root, c.cfg.PublishTag, c.cfg.Out)

	if s := c.cfg.Hooks.Postpublish; s != "" {
		if err := npm.RunScript(c.cfg.Root, s, c.cfg.Out); err != nil {
			pubErr = errors.Join(pubErr, err)
		}
	}
	return pubErr
}

// promote adds the rolling dist-tag to every candidate. Candidates are
// processed in lexicographic spec order so repeated runs log identically.
func (c *Coordinator) promote(candidates []Candidate) error {
	if len(candidates) == 0 {
		c.prog.Phase(fmt.Sprintf("No new versions to promote to %q", c.cfg.PromoteTag), 0)
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Spec() < candidates[j].Spec()
	})

	c.prog.Phase(fmt.Sprintf("Promoting %d versions to %q", len(candidates), c.cfg.PromoteTag), len(candidates))
	var g errgroup.Group
	g.SetLimit(c.cfg.Jobs)
	for _, cand := range candidates {
		cand := cand
		c.prog.Log("%s -> %s", cand.Spec(), c.cfg.PromoteTag)
		g.Go(func() error {
			return npm.DistTagAdd(c.cfg.Root, cand.Spec(), c.cfg.PromoteTag)
		})
	}
	return g.Wait()
}

// restore writes every snapshot's fields back. Writes only happen for
// manifests that actually differ, so untouched packages stay untouched.
func (c *Coordinator) restore(snaps []snapshot) error {
	taken := 0
	for _, s := range snaps {
		if s.taken {
			taken++
		}
	}
	c.prog.Phase("Restoring manifests", taken)

	var g errgroup.Group
	g.SetLimit(c.cfg.Jobs)
	for _, s := range snaps {
		s := s
		if !s.taken {
			continue
		}
		g.Go(func() error {
			if _, _, err := manifest.Apply(s.pkg.ManifestPath(), s.prev); err != nil {
				return fmt.Errorf("restoring %s: %w", s.pkg.Name, err)
			}
			c.prog.Done(fmt.Sprintf("%s %s", s.pkg.Name, s.prev.Version))
			return nil
		})
	}
	return g.Wait()
}

func (c *Coordinator) report(describe, head string, candidates []Candidate, start time.Time) error {
	specs := make([]string, 0, len(candidates))
	for _, cand := range candidates {
		specs = append(specs, cand.Spec())
	}
	sort.Strings(specs)

	return WriteReport(c.cfg.ReportPath, &Report{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		ToolVersion: c.cfg.ToolVersion,
		Describe:    describe,
		Head:        head,
		PublishTag:  c.cfg.PublishTag,
		PromoteTag:  c.cfg.PromoteTag,
		Duration:    time.Since(start).Round(time.Millisecond).String(),
		Candidates:  specs,
	})
}
