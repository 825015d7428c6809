package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestCollect_Overrides(t *testing.T) {
	orig := [4]string{Version, GitCommit, GitMessage, BuildDate}
	t.Cleanup(func() {
		Version, GitCommit, GitMessage, BuildDate = orig[0], orig[1], orig[2], orig[3]
	})

	Version = " 1.2.3 "
	GitCommit = "abc123"
	GitMessage = "fix brace depth"
	BuildDate = "2024-01-15T10:30:00Z"

	info := Collect()
	if info.Version != "1.2.3" || info.GitCommit != "abc123" || info.GitMessage != "fix brace depth" || info.BuildDate != "2024-01-15T10:30:00Z" {
		t.Fatalf("info = %+v", info)
	}
}

func TestCollect_EmptyVersion(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })
	Version = ""
	if got := Collect().Version; got != "dev" {
		t.Fatalf("version = %q, want dev", got)
	}
}

func TestColored(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	tests := map[string]string{
		"0.1.0-dev": "0.1.0-dev",
		"1.2.3":     "1.2.3",
		"weird":     "weird",
	}
	for in, want := range tests {
		if got := Colored(in); got != want {
			t.Errorf("Colored(%q) = %q, want %q", in, got, want)
		}
	}
}
