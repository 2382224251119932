package release

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SnapshotVersion computes the prerelease version for a snapshot publish:
// the next patch of base carrying a prerelease label derived from the git
// describe string. Snapshots therefore sort after base and before the
// next real release.
func SnapshotVersion(base, describe string) (string, error) {
	v, err := semver.NewVersion(base)
	if err != nil {
		return "", fmt.Errorf("parsing version %q: %w", base, err)
	}
	pre := "0.git." + sanitizeLabel(describe)
	next, err := v.IncPatch().SetPrerelease(pre)
	if err != nil {
		return "", fmt.Errorf("building prerelease %q: %w", pre, err)
	}
	return next.String(), nil
}

// sanitizeLabel maps describe output onto the characters semver allows
// inside prerelease identifiers.
func sanitizeLabel(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
