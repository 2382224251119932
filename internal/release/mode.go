package release

import "fmt"

// Mode selects which release flow to run.
type Mode string

const (
	// ModeCI publishes snapshot prereleases under a non-default dist-tag.
	ModeCI Mode = "ci"
)

// ParseMode parses a mode string. There is no default: an empty or
// unknown value is a configuration error.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCI:
		return ModeCI, nil
	case "":
		return "", fmt.Errorf("release mode is required (must be ci)")
	default:
		return "", fmt.Errorf("unknown release mode: %q (must be ci)", s)
	}
}
