// Package buildinfo carries the version stamp set with -ldflags -X.
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the release version, else the commit, else "dev".
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		return Commit
	default:
		return "dev"
	}
}

// LogAttrs returns the stamp as slog key/value pairs.
func LogAttrs() []any {
	return []any{"version", Version, "commit", Commit, "built", Date}
}
