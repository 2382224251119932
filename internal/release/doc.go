// Package release implements the snapshot release flow: bump every
// releasable package to a prerelease version derived from git describe,
// publish the workspace under a non-default dist-tag, promote new
// versions to the rolling tag, and restore all manifests afterwards.
package release
