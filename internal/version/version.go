// Package version provides version information for the bulone CLI.
//
// Overview:
//   - Responsibility: CLI version metadata (version, commit, build time)
//   - Key Types: Version variables and formatting functions
//   - Concurrency Model: Read-only after link time, safe for concurrent use
//   - Error Semantics: No errors
//   - Performance Notes: String formatting only
//
// The variables are overridden at build time with
// -ldflags "-X go.eggybyte.com/bulone/internal/version.Version=...".
package version

import (
	"fmt"
	"runtime"
)

// Version is the CLI version.
var Version = "v0.1.0-dev"

// Commit is the git commit hash.
var Commit = "unknown"

// BuildTime is the build timestamp in RFC3339 format.
var BuildTime = "unknown"

// GetVersionString returns the version line, e.g.
// bulone version v0.1.0 (commit 4a9b2c1, built 2026-01-02T12:10:00Z)
func GetVersionString() string {
	return fmt.Sprintf("bulone version %s (commit %s, built %s)", Version, Commit, BuildTime)
}

// GetFullVersionInfo returns the version line followed by the Go toolchain and
// platform.
func GetFullVersionInfo() string {
	return fmt.Sprintf("%s\ngo version %s (%s/%s)",
		GetVersionString(),
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Info is the structured form used for JSON output.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the structured version information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}
