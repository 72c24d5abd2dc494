// Package settings provides build metadata, runtime configuration, and
// context helpers used across the qcompose CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "qcompose"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds configuration settings for a single composer session: where the
// catalog comes from, how the terminal is driven, and where logs go.
type Run struct {
	MinLogLevel int8
	LogOutput   string // "stderr", "discard", or a file path
	CatalogPath string
	ThemeName   string
	NoColor     bool
	Watch       bool
	Interactive bool
}

// NewCliParams returns the defaults used by the CLI before flags are applied.
// Interactive runs discard logs unless a log file is requested, since log lines
// written to the terminal would tear the composer's screen.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		LogOutput:   "discard",
		Interactive: true,
	}
}

// IsInteractive reports whether the run drives a live terminal program rather
// than a one-shot snapshot or a print-only subcommand.
func (r *Run) IsInteractive() bool {
	return r != nil && r.Interactive
}
