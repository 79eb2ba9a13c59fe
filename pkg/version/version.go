package version

// Version holds the released version of the harness loader.
// It is set at build time with `-ldflags "-X .../pkg/version.Version=..."`.
var Version = "0.0.1"
