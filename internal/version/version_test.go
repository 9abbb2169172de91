package version

import (
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origV, origC, origD, origNoColor := Version, GitCommit, BuildDate, color.NoColor
	Version, GitCommit, BuildDate = v, commit, date
	color.NoColor = true
	t.Cleanup(func() {
		Version, GitCommit, BuildDate, color.NoColor = origV, origC, origD, origNoColor
	})
}

func TestLine(t *testing.T) {
	tests := []struct {
		name, version, commit, date string
		want                        string
	}{
		{"bare", "0.1.0-dev", "", "", "rill 0.1.0-dev"},
		{"commit", "1.2.3", "abc123", "", "rill 1.2.3 (commit abc123)"},
		{"full", "1.2.3-rc.1+build.5", "abc123", "2026-01-15", "rill 1.2.3-rc.1+build.5 (commit abc123, built 2026-01-15)"},
		{"not semver", "nightly", "", "2026-01-15", "rill nightly (built 2026-01-15)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVersion(t, tt.version, tt.commit, tt.date)
			if got := Line(); got != tt.want {
				t.Fatalf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColoredKeepsText(t *testing.T) {
	withVersion(t, "2.0.1-alpha", "", "")
	if got := Colored(); got != "2.0.1-alpha" {
		t.Fatalf("Colored() = %q", got)
	}
}
