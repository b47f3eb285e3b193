// Package build holds build-time information for the mosaic binary.
package build

// Version is the application version.
// It defaults to "dev" and can be overwritten by linker flags.
var Version = "dev"

// Commit is the VCS revision the binary was built from, when known.
var Commit = ""
