// Package version reports which staticsnap build is running.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/NERVsystems/staticsnap/pkg/version.Version=...".
// Commit and Date fall back to the VCS stamp embedded by the go tool.
var (
	Version = "0.1.0"
	Commit  = ""
	Date    = ""
)

// Build describes the running binary.
type Build struct {
	Version string
	Commit  string
	Date    string
	Dirty   bool
	Go      string
}

// Current returns the build description, filling Commit and Date from the
// embedded VCS settings when they were not set at link time.
func Current() Build {
	b := Build{Version: Version, Commit: Commit, Date: Date, Go: runtime.Version()}
	if info, ok := debug.ReadBuildInfo(); ok {
		b = b.withSettings(info.Settings)
	}
	if b.Commit == "" {
		b.Commit = "unknown"
	}
	if b.Date == "" {
		b.Date = "unknown"
	}
	return b
}

func (b Build) withSettings(settings []debug.BuildSetting) Build {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = s.Value
				if len(b.Commit) > 12 {
					b.Commit = b.Commit[:12]
				}
			}
		case "vcs.time":
			if b.Date == "" {
				b.Date = s.Value
			}
		case "vcs.modified":
			b.Dirty = s.Value == "true"
		}
	}
	return b
}

// String returns the line printed by -version.
func (b Build) String() string {
	commit := b.Commit
	if b.Dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("staticsnap %s (commit %s, built %s, %s)", b.Version, commit, b.Date, b.Go)
}

// String describes the current build.
func String() string {
	return Current().String()
}
