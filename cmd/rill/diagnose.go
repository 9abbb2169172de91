package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"rill/internal/diag"
	"rill/internal/diagfmt"
	"rill/internal/driver"
	"rill/internal/fix"
	"rill/internal/source"
	"rill/internal/ui"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.rl|directory|->",
	Short: "Run diagnostics on a rill source file or directory",
	Long:  `Run diagnostics to find syntax and semantic issues in a rill source file or in every *.rl file within a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	diagCmd.Flags().String("stages", "all", "diagnostic stages to run (tokenize|syntax|sema|all)")
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	diagCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().String("ui", "off", "progress view for directory runs (auto|on|off)")
	diagCmd.Flags().Bool("cache", false, "reuse diagnostics of unchanged files from the disk cache")
	diagCmd.Flags().Bool("clear-cache", false, "drop the disk cache before running")
	diagCmd.Flags().Bool("fix", false, "apply the fixes offered by diagnostics")
	diagCmd.Flags().Bool("preview", false, "with --fix, print the fixed sources instead of writing them")
}

type diagFlags struct {
	out        diagOutput
	stage      driver.Stage
	noWarnings bool
	jobs       int
	ui         uiMode
	cache      bool
	clearCache bool
	fix        bool
	preview    bool
}

func readDiagFlags(cmd *cobra.Command) (diagFlags, error) {
	var f diagFlags
	fl := cmd.Flags()
	var err error
	if f.out.format, err = fl.GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch f.out.format {
	case "pretty", "short", "json":
	default:
		return f, fmt.Errorf("unknown format: %s", f.out.format)
	}
	stages, err := fl.GetString("stages")
	if err != nil {
		return f, fmt.Errorf("failed to get stages flag: %w", err)
	}
	var ok bool
	if f.stage, ok = driver.ParseStage(stages); !ok {
		return f, fmt.Errorf("unknown stages value: %s", stages)
	}
	if f.noWarnings, err = fl.GetBool("no-warnings"); err != nil {
		return f, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	wae, err := fl.GetBool("warnings-as-errors")
	if err != nil {
		return f, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if fl.Changed("warnings-as-errors") {
		current.warningsAsErrors = wae
	}
	if f.noWarnings && current.warningsAsErrors {
		return f, fmt.Errorf("no-warnings and warnings-as-errors cannot be used together")
	}
	if f.out.withNotes, err = fl.GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.out.withFixes, err = fl.GetBool("suggest"); err != nil {
		return f, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	pathMode, err := fl.GetString("path-mode")
	if err != nil {
		return f, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	if f.out.pathMode, ok = diagfmt.ParsePathMode(pathMode); !ok {
		return f, fmt.Errorf("unknown path-mode value: %s", pathMode)
	}
	if f.jobs, err = fl.GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := fl.GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}
	if f.cache, err = fl.GetBool("cache"); err != nil {
		return f, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if f.clearCache, err = fl.GetBool("clear-cache"); err != nil {
		return f, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if f.fix, err = fl.GetBool("fix"); err != nil {
		return f, fmt.Errorf("failed to get fix flag: %w", err)
	}
	if f.preview, err = fl.GetBool("preview"); err != nil {
		return f, fmt.Errorf("failed to get preview flag: %w", err)
	}
	if f.preview && !f.fix {
		return f, fmt.Errorf("--preview requires --fix")
	}
	return f, nil
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	flags, err := readDiagFlags(cmd)
	if err != nil {
		return err
	}
	path := args[0]

	var (
		fs  *source.FileSet
		bag *diag.Bag
	)
	if st, statErr := os.Stat(path); path != "-" && statErr == nil && st.IsDir() {
		fs, bag, err = diagnoseDir(cmd.Context(), path, flags)
	} else {
		var res *driver.FileResult
		fs, res, err = loadInput(cmd.Context(), path, pipelineOptions(flags.stage))
		if res != nil {
			bag = res.Bag
		}
	}
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}

	if flags.noWarnings {
		bag.Filter(func(d diag.Diagnostic) bool { return d.Severity != diag.SevWarning })
	}
	if flags.fix {
		return applyFixes(cmd, fs, bag, flags.preview)
	}
	if err := flags.out.write(cmd.OutOrStdout(), bag, fs); err != nil {
		return err
	}
	return exitFor(bag)
}

func applyFixes(cmd *cobra.Command, fs *source.FileSet, bag *diag.Bag, preview bool) error {
	res, err := fix.Apply(fs, bag.Items(), fix.ApplyOptions{Mode: fix.ApplyModeAll, DryRun: preview})
	if errors.Is(err, fix.ErrNoFixes) {
		fmt.Fprintln(cmd.ErrOrStderr(), "no applicable fixes")
		return exitFor(bag)
	}
	if err != nil {
		return fmt.Errorf("apply fixes: %w", err)
	}
	for _, skipped := range res.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %q in %s: %s\n", skipped.Title, skipped.Path, skipped.Reason)
	}
	for _, change := range res.Changes {
		if preview {
			fmt.Fprintf(cmd.OutOrStdout(), "== %s ==\n", change.Path)
			if _, err := cmd.OutOrStdout().Write(change.Content); err != nil {
				return err
			}
			continue
		}
		if !current.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "fixed %s: %d edit(s)\n", change.Path, change.EditCount)
		}
	}
	return nil
}

func diagnoseDir(ctx context.Context, dir string, flags diagFlags) (*source.FileSet, *diag.Bag, error) {
	opts := driver.DirOptions{
		Options: pipelineOptions(flags.stage),
		Jobs:    flags.jobs,
	}
	if flags.cache || flags.clearCache {
		cache, err := driver.OpenDiskCache("rill")
		if err != nil {
			return nil, nil, fmt.Errorf("open cache: %w", err)
		}
		if flags.clearCache {
			if err := cache.DropAll(); err != nil {
				return nil, nil, fmt.Errorf("clear cache: %w", err)
			}
		}
		if flags.cache {
			opts.Cache = cache
		}
	}

	var (
		fs      *source.FileSet
		results []*driver.FileResult
		err     error
	)
	if shouldUseTUI(flags.ui) {
		files, listErr := driver.ListSources(dir)
		if listErr != nil {
			return nil, nil, listErr
		}
		events := make(chan driver.Event, 4*len(files)+1)
		opts.Sink = driver.ChannelSink{Ch: events}
		done := make(chan struct{})
		go func() {
			defer close(done)
			defer close(events)
			fs, results, err = driver.DiagnoseDir(ctx, dir, opts)
		}()
		if uiErr := ui.RunProgress(ctx, os.Stderr, "diag "+dir, files, events); uiErr != nil {
			// без TUI просто дожидаемся воркеров
			for range events {
			}
		}
		<-done
	} else {
		fs, results, err = driver.DiagnoseDir(ctx, dir, opts)
	}
	if err != nil {
		return fs, nil, err
	}

	maxItems := current.maxDiagnostics
	if maxItems == 0 {
		maxItems = math.MaxUint16
	}
	bag := diag.NewBag(maxItems)
	for _, res := range results {
		bag.Merge(res.Bag)
	}
	bag.Sort()
	return fs, bag, nil
}
