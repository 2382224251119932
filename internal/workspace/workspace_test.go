package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YggTools/snaprel/internal/testutil"
)

func TestClassify(t *testing.T) {
	root := "/ws"
	tests := []struct {
		name string
		pkg  Package
		want State
	}{
		{"releasable", Package{Name: "@acme/core", Dir: "/ws/packages/core"}, StateReleasable},
		{"private", Package{Name: "@acme/dev", Dir: "/ws/packages/dev", Private: true}, StatePrivate},
		{"root", Package{Name: "workspace-root", Dir: "/ws"}, StateRoot},
		{"private root", Package{Name: "workspace-root", Dir: "/ws", Private: true}, StatePrivate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.pkg, root, ""); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify_scope(t *testing.T) {
	p := Package{Name: "@other/thing", Dir: "/ws/packages/thing"}
	if got := Classify(p, "/ws", "@acme"); got != StateOutOfScope {
		t.Errorf("Classify() = %q, want %q", got, StateOutOfScope)
	}
	// No scope configured: everything public qualifies.
	if got := Classify(p, "/ws", ""); got != StateReleasable {
		t.Errorf("Classify() = %q, want %q", got, StateReleasable)
	}
}

func TestFilter(t *testing.T) {
	pkgs := []Package{
		{Name: "@acme/zed", Dir: "/ws/packages/zed"},
		{Name: "workspace-root", Dir: "/ws", Private: true},
		{Name: "@acme/alpha", Dir: "/ws/packages/alpha"},
		{Name: "@acme/internal", Dir: "/ws/packages/internal", Private: true},
		{Name: "@other/tool", Dir: "/ws/packages/tool"},
	}
	got := Filter(pkgs, "/ws", "@acme")
	if len(got) != 2 {
		t.Fatalf("got %d packages, want 2", len(got))
	}
	// Sorted by name.
	if got[0].Name != "@acme/alpha" || got[1].Name != "@acme/zed" {
		t.Errorf("filtered = [%s, %s], want sorted [@acme/alpha, @acme/zed]", got[0].Name, got[1].Name)
	}
}

func TestFilter_rootByPathNotName(t *testing.T) {
	// A root project without the private flag is still excluded.
	pkgs := []Package{
		{Name: "not-obviously-root", Dir: "/ws"},
		{Name: "@acme/core", Dir: "/ws/packages/core"},
	}
	got := Filter(pkgs, "/ws/", "")
	if len(got) != 1 || got[0].Name != "@acme/core" {
		t.Fatalf("filtered = %+v, want only @acme/core", got)
	}
}

func TestList(t *testing.T) {
	stub := testutil.StubCommands(t)
	pkgs := []*testutil.Pkg{
		{Name: "@acme/core", Version: "1.0.0"},
		{Name: "@acme/dev", Version: "0.1.0", Private: true},
	}
	root := testutil.WriteWorkspace(t, pkgs)
	stub.SetWorkspaceList(t, testutil.WorkspaceListJSON(root, pkgs))

	got, err := List(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d packages, want 3 (root included)", len(got))
	}
	byName := map[string]Package{}
	for _, p := range got {
		byName[p.Name] = p
	}
	core, ok := byName["@acme/core"]
	if !ok {
		t.Fatal("missing @acme/core")
	}
	if core.Version != "1.0.0" || core.Private {
		t.Errorf("core = %+v", core)
	}
	if core.ManifestPath() != filepath.Join(core.Dir, "package.json") {
		t.Errorf("ManifestPath() = %q", core.ManifestPath())
	}
	if !byName["@acme/dev"].Private {
		t.Error("@acme/dev should be private")
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	data := []byte("version: 1\nscope: \"@acme\"\npromote_tag: next\n")
	if err := os.WriteFile(filepath.Join(root, "snaprel.yaml"), data, 0644); err != nil {
		t.Fatal(err)
	}

	ctx, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !filepath.IsAbs(ctx.Root) {
		t.Errorf("Root = %q, want absolute", ctx.Root)
	}
	if ctx.Config.Scope != "@acme" {
		t.Errorf("Config.Scope = %q, want %q", ctx.Config.Scope, "@acme")
	}
	if ctx.Config.PromoteTag != "next" {
		t.Errorf("Config.PromoteTag = %q, want %q", ctx.Config.PromoteTag, "next")
	}
	if ctx.ConfigPath != filepath.Join(ctx.Root, "snaprel.yaml") {
		t.Errorf("ConfigPath = %q, unexpected", ctx.ConfigPath)
	}
}

func TestLoad_noConfigFile(t *testing.T) {
	ctx, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if ctx.Config.PublishTag != "ci" {
		t.Errorf("Config.PublishTag = %q, want default %q", ctx.Config.PublishTag, "ci")
	}
}

func TestIsWorkspace(t *testing.T) {
	root := testutil.WriteWorkspace(t, nil)
	if !IsWorkspace(root) {
		t.Error("expected workspace marker to be detected")
	}
	if IsWorkspace(t.TempDir()) {
		t.Error("bare directory should not count as a workspace")
	}
}

func TestSpec(t *testing.T) {
	p := Package{Name: "@acme/core"}
	if got := p.Spec("1.2.3"); got != "@acme/core@1.2.3" {
		t.Errorf("Spec() = %q, want %q", got, "@acme/core@1.2.3")
	}
}
