package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func override(t *testing.T, v, commit, msg, date string) {
	t.Helper()
	orig := [4]string{Version, GitCommit, GitMessage, BuildDate}
	t.Cleanup(func() {
		Version, GitCommit, GitMessage, BuildDate = orig[0], orig[1], orig[2], orig[3]
	})
	Version, GitCommit, GitMessage, BuildDate = v, commit, msg, date
}

func TestLine(t *testing.T) {
	tests := []struct {
		name                 string
		version, commit, msg string
		date                 string
		want                 string
	}{
		{"bare", "1.2.3", "", "", "", "deob 1.2.3"},
		{"commit_trimmed", "1.2.3", "abc123def4567890", "", "2026-01-15", "deob 1.2.3 (abc123def456, 2026-01-15)"},
		{"date_only", "1.2.3", "", "", "2026-01-15", "deob 1.2.3 (2026-01-15)"},
		{"message", "1.2.3", "abc", "fix things", "", "deob 1.2.3 (abc)\n  fix things"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			override(t, tt.version, tt.commit, tt.msg, tt.date)
			if got := Line(false); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColored(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	override(t, "0.1.0-dev", "", "", "")
	color.NoColor = true
	if got := Colored(); got != "0.1.0-dev" {
		t.Fatalf("Colored() without color = %q", got)
	}
	color.NoColor = false
	got := Colored()
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-dev") {
		t.Fatalf("Colored() = %q, want escapes and the -dev suffix", got)
	}

	override(t, "weird", "", "", "")
	if Colored() != "weird" {
		t.Fatal("non-semver versions are returned as is")
	}
}
