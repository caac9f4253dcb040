package registry

//nolint:gochecknoglobals // set via ldflags at build time.
var (
	// Version is the registry version, set via ldflags.
	Version = "dev"
	// Commit is the source revision, set via ldflags.
	Commit = "none"
	// CompiledAt is the build timestamp, set via ldflags.
	CompiledAt = "unknown"
)

// VersionString describes the build in one line.
func VersionString() string {
	return Version + " (commit " + Commit + ", built " + CompiledAt + ")"
}
