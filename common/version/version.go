// Package version exposes build metadata injected at link time.
package version

import "fmt"

// Set via -ldflags "-X github.com/Kiwi570/bulle/common/version.Version=..."
var (
	Version   = "v0.0.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Info renders the build metadata as a single human-readable line.
func Info() string {
	return fmt.Sprintf("%s (%s, %s)", Version, GitCommit, BuildTime)
}
