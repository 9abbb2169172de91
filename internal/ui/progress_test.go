package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"rill/internal/driver"
)

func TestApplyEvent(t *testing.T) {
	m := newProgressModel("diag", []string{"a.rl", "b.rl"}, nil)

	m.applyEvent(driver.Event{File: "a.rl", Stage: driver.StageSema, Status: driver.StatusWorking})
	if got := m.percent(); got != 0.25 {
		t.Fatalf("percent = %v, want 0.25", got)
	}
	m.applyEvent(driver.Event{File: "a.rl", Stage: driver.StageSema, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.rl", Stage: driver.StageSema, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "b.rl", Stage: driver.StageSema, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "unknown.rl", Status: driver.StatusDone})
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v, want 1", got)
	}
	if m.failed != 1 {
		t.Fatalf("failed = %d, want 1", m.failed)
	}

	m.done = true
	view := m.View()
	if !strings.Contains(view, "done: diag (1 of 2 failed)") {
		t.Fatalf("view header missing:\n%s", view)
	}
	if !strings.Contains(view, "a.rl") || !strings.Contains(view, "error") {
		t.Fatalf("view rows missing:\n%s", view)
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		stage  driver.Stage
		status driver.Status
		want   string
	}{
		{driver.StageParse, driver.StatusWorking, "parsing"},
		{driver.StageLower, driver.StatusWorking, "lowering"},
		{driver.StageSema, driver.StatusCached, "cached"},
		{driver.StageSema, driver.StatusQueued, "queued"},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.stage, tt.status); got != tt.want {
			t.Fatalf("statusLabel(%s, %s) = %q, want %q", tt.stage, tt.status, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		exact string
	}{
		{"short.rl", 20, "short.rl"},
		{"a/very/long/path.rl", 10, ""},
		{"abcdef", 3, "abc"},
		{"日本語語語.rl", 6, ""},
		{"keep", 0, "keep"},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.width)
		if tt.exact != "" {
			if got != tt.exact {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.exact)
			}
			continue
		}
		if runewidth.StringWidth(got) > tt.width || !strings.HasSuffix(got, "...") {
			t.Fatalf("truncate(%q, %d) = %q", tt.in, tt.width, got)
		}
	}
}
