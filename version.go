package field

//nolint:gochecknoglobals // set via ldflags at build time.
var (
	// Version is the application version, set via ldflags.
	Version = "dev"
	// Commit is the VCS revision the binary was built from, set via ldflags.
	Commit = "none"
	// CompiledAt is the build timestamp, set via ldflags.
	CompiledAt = "unknown"
)

// VersionString renders the build variables on one line.
func VersionString() string {
	return "hjarta-field " + Version + " (commit " + Commit + ", built " + CompiledAt + ")"
}
