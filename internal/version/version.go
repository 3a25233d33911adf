package version

import "fmt"

// Build-time variables set by ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns version information
func Info() (string, string, string) {
	return Version, GitCommit, BuildDate
}

// String returns a single-line version summary for CLI output.
func String() string {
	return fmt.Sprintf("langtab %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
