package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"rill/internal/diagfmt"
	"rill/internal/driver"
)

var irCmd = &cobra.Command{
	Use:   "ir [flags] <file.rl|->",
	Short: "Lower a rill source file and print its IR",
	Long:  `IR checks a file and prints the stack IR of every function that passed analysis`,
	Args:  cobra.ExactArgs(1),
	RunE:  runIR,
}

func runIR(cmd *cobra.Command, args []string) error {
	fs, res, err := loadInput(cmd.Context(), args[0], pipelineOptions(driver.StageLower))
	if err != nil {
		return fmt.Errorf("lowering failed: %w", err)
	}
	reportStderr(cmd.ErrOrStderr(), res.Bag, fs)
	if err := diagfmt.FormatIR(cmd.OutOrStdout(), slices.Values(res.IR)); err != nil {
		return err
	}
	return exitFor(res.Bag)
}
