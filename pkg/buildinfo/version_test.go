package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stamp(t *testing.T, version, commit, date string) {
	t.Helper()
	oldV, oldC, oldD := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })
}

func TestFillKeepsLdflags(t *testing.T) {
	stamp(t, "v1.0.0", "abc", "2026-01-01")
	fill(&debug.BuildInfo{
		Main:     debug.Module{Version: "v0.9.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "zzz"}},
	})
	if Version != "v1.0.0" || Commit != "abc" || Date != "2026-01-01" {
		t.Errorf("fill overwrote stamped values: %s %s %s", Version, Commit, Date)
	}
}

func TestFillFromBuildInfo(t *testing.T) {
	stamp(t, "dev", "none", "unknown")
	fill(&debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-10-01T10:00:00Z"},
		},
	})
	if Version != "v0.4.1" || Commit != "0123456789abcdef" || Date != "2026-10-01T10:00:00Z" {
		t.Errorf("fill = %s %s %s", Version, Commit, Date)
	}
	if got := Short(); got != "v0.4.1 (0123456)" {
		t.Errorf("Short() = %q", got)
	}
}

func TestFillIgnoresDevel(t *testing.T) {
	stamp(t, "dev", "none", "unknown")
	fill(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if Version != "dev" {
		t.Errorf("Version = %q, want dev", Version)
	}
}

func TestTemplate(t *testing.T) {
	stamp(t, "v1.2.3", "c0ffee", "today")
	got := Template()
	for _, want := range []string{"{{.Name}} version v1.2.3", "commit: c0ffee", "built: today"} {
		if !strings.Contains(got, want) {
			t.Errorf("Template() = %q, missing %q", got, want)
		}
	}
	if !strings.Contains(String(), "version: v1.2.3") {
		t.Errorf("String() = %q", String())
	}
}
