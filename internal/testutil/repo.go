package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// GitInit turns dir into a git repository with one commit tagged tag, so that
// `git describe --tags` produces deterministic output. The tag may be empty,
// in which case describe falls back to the short commit hash.
func GitInit(t *testing.T, dir, tag string) {
	t.Helper()
	run(t, dir, "git", "init", "-b", "main")
	run(t, dir, "git", "config", "user.email", "test@example.com")
	run(t, dir, "git", "config", "user.name", "Test")
	run(t, dir, "git", "add", ".")
	run(t, dir, "git", "commit", "-m", "initial commit")
	if tag != "" {
		run(t, dir, "git", "tag", tag)
	}
}

// CreateTaggedRepo creates a git repository in a temp directory with an
// initial commit and the given tag. Returns the repository path.
func CreateTaggedRepo(t *testing.T, tag string) string {
	t.Helper()
	dir := t.TempDir()
	readme := filepath.Join(dir, "README.md")
	if err := os.WriteFile(readme, []byte("# test\n"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	GitInit(t, dir, tag)
	return dir
}

func run(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("command %s %v failed: %v", name, args, err)
	}
}
