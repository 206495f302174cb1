// Package buildinfo exposes the version stamped into the binary.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/waterants/sketchcoach/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/waterants/sketchcoach/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/waterants/sketchcoach/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/sketchcoach
package buildinfo

import "fmt"

// Set via ldflags; the defaults identify a local development build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build stamp in a form that can be reported over the API.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"built"`
}

// Get returns the current build stamp.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String returns the build stamp as three labelled lines.
func (i Info) String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", i.Version, i.Commit, i.Date)
}

// Template returns the cobra --version template.
func Template() string {
	return "{{.Name}} " + Get().String() + "\n"
}
