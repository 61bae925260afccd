// Package build holds build-time information.
package build

// These values are set with -ldflags "-X go.trai.ch/buildsrc/internal/build.Version=...".
var (
	// Version is the release version, "dev" for local builds.
	Version = "dev"
	// Commit is the source revision the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
