package version

// Set via -ldflags "-X debuglocale/internal/version.Version=... -X debuglocale/internal/version.Variant=release".
var (
	Version = "0.3.0"
	Variant = "debug"
)
