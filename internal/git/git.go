package git

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Describe returns the output of git describe for the repository at dir.
// --tags considers lightweight tags, --always falls back to the short commit
// hash in repositories that have no tags yet.
func Describe(dir string) (string, error) {
	out, err := output(dir, "describe", "--tags", "--always")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Head returns the full commit hash of HEAD.
func Head(dir string) (string, error) {
	out, err := output(dir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsRepo returns true if the directory is inside a git repository.
// A .git entry may be a directory (normal checkout) or a file (worktree).
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// IsInstalled returns true if git is available on the system PATH.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Version returns the installed git version string.
func Version() (string, error) {
	out, err := output(".", "version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// output executes a git command and returns its stdout. Stderr is captured
// and included in the error message on failure.
func output(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
