// Package vars holds build metadata injected at link time via -ldflags.
package vars

import "fmt"

// Set via: -ldflags "-X github.com/larkspur/atlaspacker/internal/vars.Version=... -X .../Commit=... -X .../Date=..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Print writes build metadata to stdout for the version command.
func Print() {
	fmt.Printf("atlaspacker %s (commit %s, built %s)\n", Version, Commit, Date)
}
