package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rill/internal/diagfmt"
	"rill/internal/driver"
	"rill/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.rl|directory|->",
	Short: "Parse rill source and print the syntax tree",
	Long:  `Parse builds the syntax tree of a file, or of every *.rl file in a directory, and prints it`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|tree|json)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	render, err := astRenderer(format)
	if err != nil {
		return err
	}

	path := args[0]
	if path != "-" {
		if st, err := os.Stat(path); err == nil && st.IsDir() {
			fs, results, err := driver.ParseDir(cmd.Context(), path, driver.DirOptions{
				Options: pipelineOptions(driver.StageParse),
				Jobs:    jobs,
			})
			if err != nil {
				return fmt.Errorf("parse failed: %w", err)
			}
			failed := false
			for _, res := range results {
				reportStderr(cmd.ErrOrStderr(), res.Bag, fs)
				failed = failed || res.Bag.HasErrors()
				if res.Builder == nil {
					continue
				}
				if !current.quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "== %s ==\n", res.Path)
				}
				if err := render(cmd.OutOrStdout(), res, fs); err != nil {
					return err
				}
			}
			if failed {
				return exitError{code: 1}
			}
			return nil
		}
	}

	fs, res, err := loadInput(cmd.Context(), path, pipelineOptions(driver.StageParse))
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	reportStderr(cmd.ErrOrStderr(), res.Bag, fs)
	if err := render(cmd.OutOrStdout(), res, fs); err != nil {
		return err
	}
	return exitFor(res.Bag)
}

type astRender func(w io.Writer, res *driver.FileResult, fs *source.FileSet) error

func astRenderer(format string) (astRender, error) {
	switch format {
	case "pretty":
		return func(w io.Writer, res *driver.FileResult, fs *source.FileSet) error {
			return diagfmt.FormatASTPretty(w, res.Builder, res.AST, fs)
		}, nil
	case "tree":
		return func(w io.Writer, res *driver.FileResult, fs *source.FileSet) error {
			return diagfmt.FormatASTTree(w, res.Builder, res.AST, fs)
		}, nil
	case "json":
		return func(w io.Writer, res *driver.FileResult, _ *source.FileSet) error {
			return diagfmt.FormatASTJSON(w, res.Builder, res.AST)
		}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
