package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rill/internal/project"
	"rill/internal/trace"
)

// setupTracing builds the tracer from flags, falling back to the manifest's
// [trace] table for anything not given on the command line.
func setupTracing(cmd *cobra.Command, cfg project.TraceConfig) (func(), error) {
	pf := cmd.Root().PersistentFlags()
	pick := func(flag, fromManifest string) (string, error) {
		if !pf.Changed(flag) && fromManifest != "" {
			return fromManifest, nil
		}
		v, err := pf.GetString(flag)
		if err != nil {
			return "", fmt.Errorf("failed to get %s flag: %w", flag, err)
		}
		return v, nil
	}

	output, err := pick("trace", cfg.Output)
	if err != nil {
		return nil, err
	}
	levelStr, err := pick("trace-level", cfg.Level)
	if err != nil {
		return nil, err
	}
	modeStr, err := pick("trace-mode", cfg.Mode)
	if err != nil {
		return nil, err
	}
	formatStr, err := pick("trace-format", cfg.Format)
	if err != nil {
		return nil, err
	}
	ringSize, err := pf.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace format: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: output,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	activeTracer = tracer

	root := trace.Begin(tracer, trace.ScopeDriver, cmd.Name(), 0)
	ctx := trace.WithSpan(trace.WithTracer(cmd.Context(), tracer), root)
	cmd.SetContext(ctx)

	return func() {
		root.End("")
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
		activeTracer = nil
	}, nil
}

var activeTracer trace.Tracer

// dumpTraceOnPanic writes the ring buffer to stderr before re-panicking.
func dumpTraceOnPanic() {
	r := recover()
	if r == nil {
		return
	}
	if ring, ok := trace.Ring(activeTracer); ok {
		fmt.Fprintln(os.Stderr, "rill: panic, last trace events:")
		_ = ring.Dump(os.Stderr, trace.FormatText)
	}
	panic(r)
}
