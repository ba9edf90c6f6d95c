// Package buildinfo carries version metadata stamped in at link time, e.g.
// -ldflags "-X github.com/cleared-dev/linecost/internal/buildinfo.Version=v0.3.0".
package buildinfo

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
