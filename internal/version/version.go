// Package version carries the build metadata stamped into release
// binaries with -ldflags "-X".
package version

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info renders the stamped metadata as a single line for the version
// command.
func Info() string {
	return Version + " (commit " + Commit + ", built " + BuildDate + ")"
}

// UserAgent identifies this client on the wire.
func UserAgent() string {
	return "cvs-operator/" + Version
}
