package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Stub intercepts pnpm and npm invocations with generated shell scripts so
// release flows can run hermetically. Every invocation is appended to a log
// file; behavior is steered through small control files in Dir, which keeps
// the scripts themselves static.
type Stub struct {
	// Dir holds the control files (ls.json, published, ...) and the log.
	Dir string
}

const pnpmScript = `#!/bin/sh
dir="__DIR__"
printf 'pnpm %s\n' "$*" >> "$dir/invocations.log"
case "$1" in
ls)
	cat "$dir/ls.json"
	;;
publish)
	if [ -f "$dir/publish-fail" ]; then
		echo "ERR_PNPM_PUBLISH forced failure" >&2
		exit 1
	fi
	;;
run)
	if [ -f "$dir/run-fail-$2" ]; then
		echo "script $2 failed" >&2
		exit 1
	fi
	;;
--version)
	echo "9.4.0"
	;;
esac
exit 0
`

const npmScript = `#!/bin/sh
dir="__DIR__"
printf 'npm %s\n' "$*" >> "$dir/invocations.log"
case "$1" in
view)
	spec="$2"
	if grep -Fxq "$spec" "$dir/view-error"; then
		printf '{"error":{"code":"E503","summary":"registry unavailable"}}\n'
		exit 1
	fi
	if grep -Fxq "$spec" "$dir/published"; then
		printf '"0.0.0"\n'
		exit 0
	fi
	printf '{"error":{"code":"E404","summary":"Not Found - 404"}}\n'
	exit 1
	;;
dist-tag)
	if [ -f "$dir/dist-tag-fail" ]; then
		echo "npm dist-tag: forced failure" >&2
		exit 1
	fi
	;;
ping)
	if [ -f "$dir/ping-fail" ]; then
		echo "npm ERR! ping failed" >&2
		exit 1
	fi
	echo "npm notice PING https://registry.example"
	;;
--version)
	echo "10.8.1"
	;;
esac
exit 0
`

// StubCommands installs pnpm and npm stubs on PATH for the duration of the
// test and returns the control handle. The stub directory also shadows real
// package managers if any are installed.
func StubCommands(t *testing.T) *Stub {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "bin")
	if err := os.Mkdir(bin, 0755); err != nil {
		t.Fatal(err)
	}

	for name, script := range map[string]string{"pnpm": pnpmScript, "npm": npmScript} {
		body := strings.ReplaceAll(script, "__DIR__", dir)
		if err := os.WriteFile(filepath.Join(bin, name), []byte(body), 0755); err != nil { //nolint:gosec // test executable
			t.Fatal(err)
		}
	}

	// Control files exist up front so the scripts never branch on existence.
	for _, name := range []string{"invocations.log", "published", "view-error", "ls.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
	return &Stub{Dir: dir}
}

// SetWorkspaceList sets the JSON document `pnpm ls` prints.
func (s *Stub) SetWorkspaceList(t *testing.T, doc string) {
	t.Helper()
	s.write(t, "ls.json", doc)
}

// MarkPublished registers name@version specs the registry reports as existing.
func (s *Stub) MarkPublished(t *testing.T, specs ...string) {
	t.Helper()
	s.appendLines(t, "published", specs)
}

// FailView registers specs for which `npm view` fails with a non-404 error.
func (s *Stub) FailView(t *testing.T, specs ...string) {
	t.Helper()
	s.appendLines(t, "view-error", specs)
}

// FailPublish makes the next `pnpm publish` exit non-zero.
func (s *Stub) FailPublish(t *testing.T) {
	t.Helper()
	s.write(t, "publish-fail", "")
}

// FailScript makes `pnpm run <name>` exit non-zero.
func (s *Stub) FailScript(t *testing.T, name string) {
	t.Helper()
	s.write(t, "run-fail-"+name, "")
}

// FailDistTag makes `npm dist-tag` exit non-zero.
func (s *Stub) FailDistTag(t *testing.T) {
	t.Helper()
	s.write(t, "dist-tag-fail", "")
}

// FailPing makes `npm ping` exit non-zero.
func (s *Stub) FailPing(t *testing.T) {
	t.Helper()
	s.write(t, "ping-fail", "")
}

// Invocations returns each recorded command line, one per element.
// Lines from parallel phases may appear in any order.
func (s *Stub) Invocations(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(s.Dir, "invocations.log"))
	if err != nil {
		t.Fatal(err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func (s *Stub) write(t *testing.T, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(s.Dir, name), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func (s *Stub) appendLines(t *testing.T, name string, lines []string) {
	t.Helper()
	f, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	for _, line := range lines {
		if _, err := f.WriteString(line + "\n"); err != nil {
			t.Fatal(err)
		}
	}
}
