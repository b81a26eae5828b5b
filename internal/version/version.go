// Package version holds build identification, overridable at link time:
//
//	go build -ldflags "-X github.com/pitwall-data/pitwall.report/internal/version.Version=1.2.3"
package version

var (
	// Version is the current application version
	Version = "0.3.0"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)
