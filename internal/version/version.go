// Package version holds build metadata, overridden at build time via
//
//	go build -ldflags "-X blackflag.dev/pitwall/internal/version.GitSHA=$(git rev-parse HEAD)"
package version

var (
	// Version is the current application version
	Version = "0.1.0"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)
