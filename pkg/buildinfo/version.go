// Package buildinfo exposes the version stamped into placeviz binaries.
//
// Release builds inject the values with ldflags:
//
//	go build -ldflags "-X github.com/placeviz/placeviz/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/placeviz/placeviz/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/placeviz/placeviz/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/placeviz
package buildinfo

import "fmt"

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// Short returns "placeviz <version>", used in window and TUI titles.
func Short() string {
	return "placeviz " + Version
}

// Template returns the cobra --version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt:  %s\n", Version, Commit, Date)
}
