// Package version holds build information for the sitetools binary.
package version

// Set with -ldflags "-X github.com/maxpilot/sitetools/internal/version.Version=...".
var (
	Version  = "0.1.0"
	Revision = "dev"
)

// String returns the version and revision, e.g. "0.1.0+dev".
func String() string {
	return Version + "+" + Revision
}
