// Package git provides a wrapper around the Git CLI commands used by snaprel.
// It exposes only what the release flow needs: the human-readable tag
// description and the current revision hash.
package git
