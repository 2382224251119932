// Package npm wraps the pnpm and npm CLI commands snaprel drives. Workspace
// operations (list, publish, run) go through pnpm; registry metadata
// operations (view, dist-tag, ping) go through npm. Both binaries are
// external collaborators: this package owns their argv contracts and error
// classification, nothing else.
package npm
