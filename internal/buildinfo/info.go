// Package buildinfo carries release metadata stamped in at link time:
//
//	go build -ldflags "-X github.com/Gui-ZeN/AgiliDash-sub000/internal/buildinfo.Version=v1.0.0" ./cmd/agilidash
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the metadata for --version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
