package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/YggTools/snaprel/internal/config"
	"github.com/YggTools/snaprel/internal/npm"
)

// Package is a single package discovered in the workspace.
type Package struct {
	Name    string
	Version string
	Dir     string
	Private bool
}

// ManifestPath returns the package.json location for the package.
func (p Package) ManifestPath() string {
	return filepath.Join(p.Dir, "package.json")
}

// Spec returns the registry spec name@version for the package.
func (p Package) Spec(version string) string {
	return p.Name + "@" + version
}

// Context holds the resolved root and loaded config for a workspace.
type Context struct {
	Root       string
	ConfigPath string
	Config     *config.File
}

// Load resolves the workspace root and loads snaprel.yaml if present.
func Load(root string) (*Context, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	return &Context{
		Root:       root,
		ConfigPath: config.Path(root),
		Config:     cfg,
	}, nil
}

// IsWorkspace reports whether dir looks like a pnpm workspace root.
func IsWorkspace(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "pnpm-workspace.yaml"))
	return err == nil
}

// List returns every package pnpm reports for the workspace rooted at
// root, including the root project and private packages.
func List(root string) ([]Package, error) {
	projects, err := npm.ListWorkspace(root)
	if err != nil {
		return nil, err
	}
	pkgs := make([]Package, 0, len(projects))
	for _, p := range projects {
		pkgs = append(pkgs, Package{
			Name:    p.Name,
			Version: p.Version,
			Dir:     p.Path,
			Private: p.Private,
		})
	}
	return pkgs, nil
}

// State classifies a package with respect to releasing.
type State string

const (
	StateReleasable State = "ok"
	StatePrivate    State = "private"
	StateRoot       State = "root"
	StateOutOfScope State = "out-of-scope"
)

// Classify reports why a package would be excluded from a release, or
// StateReleasable if it would not.
func Classify(p Package, root, scope string) State {
	if p.Private {
		return StatePrivate
	}
	if filepath.Clean(p.Dir) == filepath.Clean(root) {
		return StateRoot
	}
	if scope != "" && !strings.HasPrefix(p.Name, scope+"/") {
		return StateOutOfScope
	}
	return StateReleasable
}

// Filter returns the releasable subset of pkgs, sorted by name.
func Filter(pkgs []Package, root, scope string) []Package {
	var out []Package
	for _, p := range pkgs {
		if Classify(p, root, scope) == StateReleasable {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
