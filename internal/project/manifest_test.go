package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifest(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Manifest
		wantErr error
		anyErr  bool
	}{
		{
			name: "full",
			content: `[diagnostics]
max = 20
warnings_as_errors = true
color = "off"

[trace]
level = "phase"
format = "ndjson"

[format]
indent_width = 2
use_tabs = true
`,
			want: Manifest{
				Diagnostics: DiagnosticsConfig{Max: 20, WarningsAsErrors: true, Color: "off"},
				Trace:       TraceConfig{Level: "phase", Format: "ndjson"},
				Format:      FormatConfig{IndentWidth: 2, UseTabs: true},
			},
		},
		{
			name:    "partial keeps defaults",
			content: "[trace]\nlevel = \"debug\"\n",
			want: Manifest{
				Diagnostics: DiagnosticsConfig{Max: 100, Color: "auto"},
				Trace:       TraceConfig{Level: "debug"},
				Format:      FormatConfig{IndentWidth: 4},
			},
		},
		{
			name:    "unknown key",
			content: "[diagnostics]\nmaxx = 3\n",
			wantErr: ErrUnknownKey,
		},
		{
			name:    "bad color",
			content: "[diagnostics]\ncolor = \"rainbow\"\n",
			anyErr:  true,
		},
		{
			name:    "bad indent",
			content: "[format]\nindent_width = 40\n",
			anyErr:  true,
		},
		{
			name:    "bad toml",
			content: "[diagnostics\n",
			anyErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			got, err := Load(path)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				return
			case tt.anyErr:
				if err == nil {
					t.Fatalf("want an error")
				}
				return
			case err != nil:
				t.Fatal(err)
			}
			tt.want.Path = path
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[diagnostics]\nmax = 7\n")
	src := filepath.Join(root, "a", "b", "main.rl")
	writeFile(t, src, "fn main() {}")

	m, err := Discover(src)
	if err != nil {
		t.Fatal(err)
	}
	if m.Diagnostics.Max != 7 {
		t.Fatalf("max %d", m.Diagnostics.Max)
	}
	if m.Root() != root {
		t.Fatalf("root %q, want %q", m.Root(), root)
	}
}

func TestDiscoverDefaults(t *testing.T) {
	m, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if m != Default() {
		t.Fatalf("want defaults, got %+v", m)
	}
}
