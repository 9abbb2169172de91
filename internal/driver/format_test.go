package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const (
	messySource = "fn add(a:i32,b:i32)->i32{ret a+b;}\n"
	tidySource  = "fn add(a: i32, b: i32) -> i32 {\n    ret a + b;\n}\n"
)

func writeFormatProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{
		"messy.rl":  messySource,
		"tidy.rl":   tidySource,
		"broken.rl": "fn f( {\n",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func byName(results []FormatResult) map[string]FormatResult {
	out := make(map[string]FormatResult, len(results))
	for _, r := range results {
		out[filepath.Base(r.Path)] = r
	}
	return out
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestFormatPathsModes(t *testing.T) {
	tests := []struct {
		name      string
		opts      FormatOptions
		wantMessy string
	}{
		{name: "check", opts: FormatOptions{Check: true}, wantMessy: messySource},
		{name: "stdout", opts: FormatOptions{Stdout: true}, wantMessy: messySource},
		{name: "write", opts: FormatOptions{}, wantMessy: tidySource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFormatProject(t)
			results, err := FormatPaths(context.Background(), []string{dir}, tt.opts)
			if err != nil {
				t.Fatalf("FormatPaths: %v", err)
			}
			if len(results) != 3 {
				t.Fatalf("got %d results", len(results))
			}
			got := byName(results)
			if !got["messy.rl"].Changed || got["tidy.rl"].Changed {
				t.Fatalf("changed flags: messy=%v tidy=%v", got["messy.rl"].Changed, got["tidy.rl"].Changed)
			}
			if !errors.Is(got["broken.rl"].Err, ErrParseErrors) {
				t.Fatalf("broken: %v", got["broken.rl"].Err)
			}
			if tt.opts.Stdout && string(got["messy.rl"].Formatted) != tidySource {
				t.Fatalf("stdout output %q", got["messy.rl"].Formatted)
			}
			if body := readString(t, filepath.Join(dir, "messy.rl")); body != tt.wantMessy {
				t.Fatalf("messy.rl on disk: %q", body)
			}
		})
	}
}

func TestFormatPathsDeduplicates(t *testing.T) {
	dir := writeFormatProject(t)
	file := filepath.Join(dir, "tidy.rl")
	results, err := FormatPaths(context.Background(), []string{file, dir + "/./tidy.rl"}, FormatOptions{Check: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results", len(results))
	}
}

func TestFormatPathsErrors(t *testing.T) {
	if _, err := FormatPaths(context.Background(), []string{t.TempDir()}, FormatOptions{}); err == nil {
		t.Fatal("want error for a directory without sources")
	}
	if _, err := FormatPaths(context.Background(), []string{filepath.Join(t.TempDir(), "nope.rl")}, FormatOptions{}); err == nil {
		t.Fatal("want error for a missing path")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FormatPaths(ctx, []string{"."}, FormatOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("canceled: %v", err)
	}
}
