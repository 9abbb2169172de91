package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"rill/internal/diag"
	"rill/internal/diagfmt"
	"rill/internal/driver"
	"rill/internal/source"
)

type diagOutput struct {
	format    string // pretty | short | json
	pathMode  diagfmt.PathMode
	withNotes bool
	withFixes bool
}

func (o diagOutput) write(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	switch o.format {
	case "pretty":
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     current.color,
			PathMode:  o.pathMode,
			ShowNotes: o.withNotes,
			ShowFixes: o.withFixes,
		})
		return nil
	case "short":
		return diagfmt.FormatShort(w, bag, fs, o.pathMode)
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         o.pathMode,
			Max:              current.maxDiagnostics,
			IncludeNotes:     o.withNotes,
			IncludeFixes:     o.withFixes,
		})
	default:
		return fmt.Errorf("unknown format: %s", o.format)
	}
}

// reportStderr prints diagnostics the way tokenize, parse and ir do: pretty,
// to stderr, only when there are any.
func reportStderr(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{Color: current.color, ShowNotes: true})
}

func pipelineOptions(stage driver.Stage) driver.Options {
	return driver.Options{
		Stage:            stage,
		MaxDiagnostics:   current.maxDiagnostics,
		WarningsAsErrors: current.warningsAsErrors,
		Timer:            current.timer,
	}
}

// loadInput runs the pipeline on a file path, or on stdin for "-".
func loadInput(ctx context.Context, path string, opts driver.Options) (*source.FileSet, *driver.FileResult, error) {
	if path == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("read stdin: %w", err)
		}
		return driver.RunSource(ctx, "<stdin>", content, opts)
	}
	return driver.RunFile(ctx, path, opts)
}

func exitFor(bag *diag.Bag) error {
	if bag != nil && bag.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}
