package release

import "testing"

func TestSnapshotVersion(t *testing.T) {
	tests := []struct {
		base     string
		describe string
		want     string
	}{
		{"1.0.0", "v3-5-gabc123", "1.0.1-0.git.v3-5-gabc123"},
		{"2.0.0", "v1.2.0", "2.0.1-0.git.v1.2.0"},
		{"0.9.13", "abc123f", "0.9.14-0.git.abc123f"},
		// A prerelease base collapses to its release version first, so the
		// snapshot of 1.0.1-alpha is still 1.0.1-0.git....
		{"1.0.1-alpha", "v1.2.0", "1.0.1-0.git.v1.2.0"},
		// Characters semver forbids in prerelease identifiers are mapped to -.
		{"1.0.0", "v1.2.0~rc+3", "1.0.1-0.git.v1.2.0-rc-3"},
	}
	for _, tt := range tests {
		t.Run(tt.base+"_"+tt.describe, func(t *testing.T) {
			got, err := SnapshotVersion(tt.base, tt.describe)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SnapshotVersion(%q, %q) = %q, want %q", tt.base, tt.describe, got, tt.want)
			}
		})
	}
}

func TestSnapshotVersion_stable(t *testing.T) {
	// A version that already carries the current snapshot label maps to
	// itself, which the coordinator treats as "no change".
	got, err := SnapshotVersion("1.0.1-0.git.v1.2.0", "v1.2.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1.0.1-0.git.v1.2.0" {
		t.Errorf("got %q, want fixed point", got)
	}
}

func TestSnapshotVersion_invalidBase(t *testing.T) {
	if _, err := SnapshotVersion("not-a-version", "v1.2.0"); err == nil {
		t.Fatal("expected error for unparseable version")
	}
}
