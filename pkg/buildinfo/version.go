// Package buildinfo exposes version information injected at build time.
//
// Release builds set the variables through ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/opencga/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/opencga/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/opencga/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/opencga
package buildinfo

import "fmt"

var (
	// Version is the semantic version of the client, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// UserAgent returns the User-Agent sent with every API request.
func UserAgent() string {
	return "opencga-go/" + Version
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template used by the root cobra command.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
