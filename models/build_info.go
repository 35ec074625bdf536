package models

import "fmt"

const notAvailable = "N/A"

// BuildInfo is the version metadata injected with -ldflags at build time.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// Resolved returns a copy with blank fields set to "N/A".
func (b BuildInfo) Resolved() BuildInfo {
	for _, f := range []*string{&b.Version, &b.Date, &b.Commit} {
		if *f == "" {
			*f = notAvailable
		}
	}
	return b
}

func (b BuildInfo) String() string {
	r := b.Resolved()
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s", r.Version, r.Date, r.Commit)
}
