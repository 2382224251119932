package npm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/YggTools/snaprel/internal/testutil"
)

func TestParseProjects(t *testing.T) {
	data := []byte(`[
  {"name": "workspace-root", "path": "/ws", "version": "0.0.0", "private": true},
  {"name": "@acme/core", "path": "/ws/packages/core", "version": "1.0.0", "private": false}
]`)
	projects, err := ParseProjects(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("project count = %d, want 2", len(projects))
	}
	if projects[1].Name != "@acme/core" {
		t.Errorf("name = %q, want %q", projects[1].Name, "@acme/core")
	}
	if !projects[0].Private || projects[1].Private {
		t.Error("private flags decoded incorrectly")
	}
}

func TestParseProjects_malformed(t *testing.T) {
	if _, err := ParseProjects([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed listing")
	}
}

func TestListWorkspace(t *testing.T) {
	stub := testutil.StubCommands(t)
	stub.SetWorkspaceList(t, `[{"name": "@acme/core", "path": "/ws/packages/core", "version": "1.0.0", "private": false}]`)

	projects, err := ListWorkspace(t.TempDir())
	if err != nil {
		t.Fatalf("list workspace: %v", err)
	}
	if len(projects) != 1 || projects[0].Version != "1.0.0" {
		t.Errorf("unexpected projects: %+v", projects)
	}
}

func TestViewVersion_published(t *testing.T) {
	stub := testutil.StubCommands(t)
	stub.MarkPublished(t, "@acme/core@1.0.0")

	if err := ViewVersion(t.TempDir(), "@acme/core@1.0.0"); err != nil {
		t.Fatalf("expected nil for published version, got %v", err)
	}
}

func TestViewVersion_notFound(t *testing.T) {
	testutil.StubCommands(t)

	err := ViewVersion(t.TempDir(), "@acme/core@9.9.9")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestViewVersion_registryAnomaly(t *testing.T) {
	stub := testutil.StubCommands(t)
	stub.FailView(t, "@acme/core@1.0.1")

	err := ViewVersion(t.TempDir(), "@acme/core@1.0.1")
	if err == nil {
		t.Fatal("expected error for registry anomaly")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("anomaly must not be classified as not-found")
	}
	if !strings.Contains(err.Error(), "registry unavailable") {
		t.Errorf("error should carry the registry summary: %v", err)
	}
}

func TestPublishRecursive_passesTagAndBypassesGitChecks(t *testing.T) {
	stub := testutil.StubCommands(t)

	var out bytes.Buffer
	if err := PublishRecursive(t.TempDir(), "ci", &out); err != nil {
		t.Fatalf("publish: %v", err)
	}

	calls := stub.Invocations(t)
	if len(calls) != 1 {
		t.Fatalf("call count = %d, want 1", len(calls))
	}
	if want := "pnpm publish -r --tag ci --no-git-checks"; calls[0] != want {
		t.Errorf("call = %q, want %q", calls[0], want)
	}
}

func TestDistTagAdd(t *testing.T) {
	stub := testutil.StubCommands(t)

	if err := DistTagAdd(t.TempDir(), "@acme/core@1.0.1-0.git.v1", "edge"); err != nil {
		t.Fatalf("dist-tag add: %v", err)
	}

	calls := stub.Invocations(t)
	if len(calls) != 1 || calls[0] != "npm dist-tag add @acme/core@1.0.1-0.git.v1 edge" {
		t.Errorf("unexpected calls: %v", calls)
	}
}

func TestDistTagAdd_failure(t *testing.T) {
	stub := testutil.StubCommands(t)
	stub.FailDistTag(t)

	if err := DistTagAdd(t.TempDir(), "@acme/core@1.0.1", "edge"); err == nil {
		t.Fatal("expected error when dist-tag fails")
	}
}

func TestRunScript_failureCarriesScriptName(t *testing.T) {
	stub := testutil.StubCommands(t)
	stub.FailScript(t, "prepublish")

	var out bytes.Buffer
	err := RunScript(t.TempDir(), "prepublish", &out)
	if err == nil {
		t.Fatal("expected error for failing script")
	}
	if !strings.Contains(err.Error(), "prepublish") {
		t.Errorf("error should name the script: %v", err)
	}
}
