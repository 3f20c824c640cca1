// Package version provides build-time version information.
package version

// Name is the tool name reported in manifests and version output.
const Name = "sprite-splitter"

// These variables are set at build time using -ldflags
var (
	// Version is the semantic version
	Version = "0.1.0"

	// BuildTime is the UTC time when the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)
