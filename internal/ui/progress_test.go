package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgress_phases(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)

	p.Phase("Bumping versions", 2)
	p.Done("@acme/core")
	p.Done("@acme/utils")
	p.Phase("Promoting", 1)
	p.Done("@acme/core@1.0.1")

	out := buf.String()
	if !strings.Contains(out, "Bumping versions") {
		t.Errorf("missing phase heading: %s", out)
	}
	if !strings.Contains(out, "[1/2] @acme/core") {
		t.Errorf("missing first progress line: %s", out)
	}
	if !strings.Contains(out, "[2/2] @acme/utils") {
		t.Errorf("missing second progress line: %s", out)
	}
	// Counter restarts per phase.
	if !strings.Contains(out, "[1/1] @acme/core@1.0.1") {
		t.Errorf("counter not reset for new phase: %s", out)
	}
}

func TestProgress_Log(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)

	p.Phase("Checking", 1)
	p.Log("registry says %s", "no")

	if !strings.Contains(buf.String(), "registry says no") {
		t.Errorf("missing log message: %s", buf.String())
	}
}
