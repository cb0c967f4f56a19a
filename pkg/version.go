// Package virotaxa holds build information shared by all commands.
package virotaxa

var (
	// Version of virotaxa, set by ldflags at build time.
	Version = "v0.1.0"
	// Build timestamp, set by ldflags at build time.
	Build = "n/a"
)
