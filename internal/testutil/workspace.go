package testutil

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"
)

// Pkg describes one workspace package fixture.
type Pkg struct {
	Name    string
	Version string
	Private bool

	// Dir is filled in by WriteWorkspace with the package directory.
	Dir string
}

// WriteWorkspace creates a pnpm-style workspace in a temp directory: a private
// root package.json, a pnpm-workspace.yaml, and one directory per package
// under packages/. Manifests are written with 2-space indentation and a
// trailing newline, matching what package managers emit. Returns the
// workspace root.
func WriteWorkspace(t *testing.T, pkgs []*Pkg) string {
	t.Helper()
	root := t.TempDir()

	rootManifest := "{\n  \"name\": \"workspace-root\",\n  \"version\": \"0.0.0\",\n  \"private\": true\n}\n"
	if err := os.WriteFile(filepath.Join(root, "package.json"), []byte(rootManifest), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "pnpm-workspace.yaml"), []byte("packages:\n  - \"packages/*\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, p := range pkgs {
		dir := filepath.Join(root, "packages", path.Base(p.Name))
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(ManifestJSON(p.Name, p.Version, p.Private)), 0644); err != nil {
			t.Fatal(err)
		}
		p.Dir = dir
	}
	return root
}

// ManifestJSON renders a minimal package.json body with stable formatting.
// The extra "main" and "license" keys exist so tests can verify that field
// surgery leaves unrelated keys and their order alone.
func ManifestJSON(name, version string, private bool) string {
	var b strings.Builder
	b.WriteString("{\n")
	fmt.Fprintf(&b, "  %q: %q,\n", "name", name)
	fmt.Fprintf(&b, "  %q: %q,\n", "version", version)
	if private {
		b.WriteString("  \"private\": true,\n")
	}
	b.WriteString("  \"main\": \"dist/index.js\",\n")
	b.WriteString("  \"license\": \"MPL-2.0\"\n")
	b.WriteString("}\n")
	return b.String()
}

// WorkspaceListJSON builds the JSON document the stubbed `pnpm ls` emits for
// the given root and packages, in the {name, path, version, private} record
// shape. The root project itself is included, as the real tool does.
func WorkspaceListJSON(root string, pkgs []*Pkg) string {
	var b strings.Builder
	b.WriteString("[\n")
	fmt.Fprintf(&b, "  {\"name\": %q, \"path\": %q, \"version\": %q, \"private\": true}", "workspace-root", root, "0.0.0")
	for _, p := range pkgs {
		b.WriteString(",\n")
		fmt.Fprintf(&b, "  {\"name\": %q, \"path\": %q, \"version\": %q, \"private\": %v}", p.Name, p.Dir, p.Version, p.Private)
	}
	b.WriteString("\n]\n")
	return b.String()
}
