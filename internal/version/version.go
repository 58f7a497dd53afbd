// Package version holds the build version.
package version

// Version is the current release, overridable at build time via
// -ldflags "-X codehealth/internal/version.Version=...".
var Version = "0.4.0"
