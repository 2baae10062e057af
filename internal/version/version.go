// Package version holds stylematch build metadata injected via ldflags:
//
//	go build -ldflags "-X github.com/kailas-cloud/stylematch/internal/version.Version=v1.2.0"
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for logs and the health endpoint.
func String() string {
	return fmt.Sprintf("stylematch %s (commit %s, built %s)", Version, Commit, Date)
}
