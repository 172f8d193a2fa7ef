// Package marketplace holds build metadata shared by the CLI and library.
package marketplace

// Version is the marketplace release version.
const Version = "0.1.0"
