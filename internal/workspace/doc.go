// Package workspace discovers and classifies the packages of a pnpm
// workspace. It provides the Context type that holds the resolved root and
// loaded configuration, and the State type describing why a package is
// excluded from releasing.
package workspace
