package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"rill/internal/format"
	"rill/internal/source"
)

// ErrParseErrors is returned for files that cannot be formatted because they
// do not parse.
var ErrParseErrors = errors.New("format: parse errors present")

// FormatOptions configures code formatting.
type FormatOptions struct {
	Check   bool
	Stdout  bool
	Options format.Options
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
}

// FormatPaths formats files and directories (recursively collecting .rl
// files). With Check nothing is written and Changed says whether the file
// would be rewritten; with Stdout the output is returned in Formatted.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := collectSourceFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := FormatResult{Path: path}
		formatted, changed, err := formatSingleFile(ctx, path, opts.Options)
		switch {
		case err != nil:
			result.Err = err
		case opts.Check:
			result.Changed = changed
		case opts.Stdout:
			result.Formatted = formatted
			result.Changed = changed
		case changed:
			mode := os.FileMode(0o644)
			if info, statErr := os.Stat(path); statErr == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
				result.Err = err
			} else {
				result.Changed = true
			}
		}
		results = append(results, result)
	}
	return results, nil
}

func formatSingleFile(ctx context.Context, path string, opt format.Options) (formatted []byte, changed bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}

	fs := source.NewFileSet()
	id := fs.Add(path, data, 0)
	res, err := Run(ctx, fs, id, Options{Stage: StageParse})
	if err != nil {
		return nil, false, err
	}
	if res.Bag.HasErrors() {
		return nil, false, ErrParseErrors
	}

	formatted, err = format.FormatFile(fs.Get(id), res.Builder, res.AST, opt)
	if err != nil {
		return nil, false, err
	}
	return formatted, !bytes.Equal(data, formatted), nil
}

func collectSourceFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("format: %w", err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		found, err := ListSources(p)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}
