package npm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/tidwall/gjson"
)

// Project is one record from the workspace listing: a publishable unit with
// its manifest directory and current version.
type Project struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Version string `json:"version"`
	Private bool   `json:"private"`
}

// ErrNotFound reports that a package@version pair does not exist in the
// registry. For the release flow this is the expected, non-fatal outcome of a
// registry check.
var ErrNotFound = errors.New("not found in registry")

// ListWorkspace returns every project in the workspace rooted at root,
// including the root project itself. Callers are responsible for filtering.
func ListWorkspace(root string) ([]Project, error) {
	out, err := outputQuiet(root, "pnpm", "ls", "-r", "--depth", "-1", "--json")
	if err != nil {
		return nil, err
	}
	return ParseProjects([]byte(out))
}

// ParseProjects decodes a workspace listing document.
func ParseProjects(data []byte) ([]Project, error) {
	var projects []Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("parsing workspace list: %w", err)
	}
	return projects, nil
}

// ViewVersion asks the registry whether spec ("name@version") exists.
// nil means the exact version is already published. ErrNotFound (wrapped)
// means the version is free to publish. Any other error is an anomaly the
// caller must treat as fatal.
func ViewVersion(root, spec string) error {
	cmd := exec.Command("npm", "view", spec, "version", "--json")
	cmd.Dir = root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		code, summary := registryError(stdout.Bytes(), stderr.Bytes())
		if isNotFoundCode(code) {
			return fmt.Errorf("%s: %w", spec, ErrNotFound)
		}
		if summary == "" {
			summary = strings.TrimSpace(stderr.String())
		}
		return fmt.Errorf("npm view %s: %w: %s", spec, err, summary)
	}
	return nil
}

// PublishRecursive publishes every workspace package under the given
// dist-tag in one batched invocation. Versions that already exist are skipped
// by the tool itself. --no-git-checks bypasses the working-tree cleanliness
// check, which would otherwise reject the temporarily rewritten manifests.
func PublishRecursive(root, tag string, out io.Writer) error {
	if err := stream(root, out, "pnpm", "publish", "-r", "--tag", tag, "--no-git-checks"); err != nil {
		return fmt.Errorf("pnpm publish --tag %s: %w", tag, err)
	}
	return nil
}

// RunScript runs a workspace-wide pnpm script by name, streaming its output.
func RunScript(root, script string, out io.Writer) error {
	if err := stream(root, out, "pnpm", "run", script); err != nil {
		return fmt.Errorf("pnpm run %s: %w", script, err)
	}
	return nil
}

// DistTagAdd points tag at spec ("name@version") in the registry.
func DistTagAdd(root, spec, tag string) error {
	if _, err := outputQuiet(root, "npm", "dist-tag", "add", spec, tag); err != nil {
		return err
	}
	return nil
}

// Ping checks registry connectivity.
func Ping(root string) error {
	_, err := outputQuiet(root, "npm", "ping")
	return err
}

// PnpmInstalled returns true if pnpm is available on the system PATH.
func PnpmInstalled() bool {
	_, err := exec.LookPath("pnpm")
	return err == nil
}

// NpmInstalled returns true if npm is available on the system PATH.
func NpmInstalled() bool {
	_, err := exec.LookPath("npm")
	return err == nil
}

// PnpmVersion returns the installed pnpm version string.
func PnpmVersion() (string, error) {
	out, err := outputQuiet(".", "pnpm", "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// NpmVersion returns the installed npm version string.
func NpmVersion() (string, error) {
	out, err := outputQuiet(".", "npm", "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// registryError extracts the structured {error: {code, summary}} payload npm
// prints on stdout in --json mode. Some failure paths put it on stderr
// instead, so both streams are consulted.
func registryError(stdout, stderr []byte) (code, summary string) {
	for _, payload := range [][]byte{stdout, stderr} {
		res := gjson.GetBytes(payload, "error")
		if !res.Exists() {
			continue
		}
		return res.Get("code").String(), res.Get("summary").String()
	}
	return "", ""
}

func isNotFoundCode(code string) bool {
	return code == "E404" || strings.Contains(code, "404")
}

func stream(dir string, out io.Writer, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}

// outputQuiet executes a command and returns its stdout without printing to
// the console. Stderr is captured and included in the error on failure.
func outputQuiet(dir string, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
