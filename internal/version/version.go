// Package version exposes build metadata for the stinger binary.
//
// Release builds inject values with
// -ldflags "-X github.com/HerbHall/stinger/internal/version.Version=...".
// Plain `go build` binaries fall back to the VCS stamp the toolchain embeds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Build is the resolved build metadata.
type Build struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
}

var (
	resolveOnce sync.Once
	resolved    Build
)

// Get returns the build metadata, filling unset ldflags values from
// debug.ReadBuildInfo when available.
func Get() Build {
	resolveOnce.Do(func() {
		resolved = Build{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		applyBuildSettings(&resolved, info.Settings)
	})
	return resolved
}

func applyBuildSettings(b *Build, settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if b.GitCommit == "unknown" && s.Value != "" {
				b.GitCommit = shortRevision(s.Value)
			}
		case "vcs.time":
			if b.BuildDate == "unknown" && s.Value != "" {
				b.BuildDate = s.Value
			}
		case "vcs.modified":
			b.Modified = s.Value == "true"
		}
	}
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// Info returns the line printed by `stinger version`.
func Info() string {
	b := Get()
	commit := b.GitCommit
	if b.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("Stinger %s (commit %s, built %s, %s %s/%s)",
		b.Version, commit, b.BuildDate, b.GoVersion, runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version string.
func Short() string {
	return Version
}

// Map flattens Get for the health endpoint.
func Map() map[string]string {
	b := Get()
	m := map[string]string{
		"version":    b.Version,
		"git_commit": b.GitCommit,
		"build_date": b.BuildDate,
		"go_version": b.GoVersion,
	}
	if b.Modified {
		m["modified"] = "true"
	}
	return m
}
