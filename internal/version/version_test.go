package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()
	for _, want := range []string{"Stinger", Version, runtime.Version(), runtime.GOOS} {
		if !strings.Contains(info, want) {
			t.Errorf("Info() = %q, missing %q", info, want)
		}
	}
}

func TestShort_Default(t *testing.T) {
	if got := Short(); got != "dev" {
		t.Errorf("Short() = %q, want %q", got, "dev")
	}
}

func TestMap(t *testing.T) {
	m := Map()
	for _, key := range []string{"version", "git_commit", "build_date", "go_version"} {
		if m[key] == "" {
			t.Errorf("Map()[%q] is empty", key)
		}
	}
}

func TestApplyBuildSettings(t *testing.T) {
	b := Build{GitCommit: "unknown", BuildDate: "unknown"}
	applyBuildSettings(&b, []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.time", Value: "2026-01-01T00:00:00Z"},
		{Key: "vcs.modified", Value: "true"},
	})
	if b.GitCommit != "0123456789ab" {
		t.Errorf("GitCommit = %q", b.GitCommit)
	}
	if b.BuildDate != "2026-01-01T00:00:00Z" {
		t.Errorf("BuildDate = %q", b.BuildDate)
	}
	if !b.Modified {
		t.Error("Modified = false, want true")
	}
}

func TestApplyBuildSettings_LdflagsWin(t *testing.T) {
	b := Build{GitCommit: "abc1234", BuildDate: "2025-06-01"}
	applyBuildSettings(&b, []debug.BuildSetting{
		{Key: "vcs.revision", Value: "ffffffffffffffff"},
		{Key: "vcs.time", Value: "2026-01-01T00:00:00Z"},
	})
	if b.GitCommit != "abc1234" || b.BuildDate != "2025-06-01" {
		t.Errorf("ldflags values overwritten: %+v", b)
	}
}
