// Package buildinfo carries the version stamped in at build time via
// -ldflags.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("tracedent %s (commit=%s, date=%s)", Version, Commit, Date)
}
