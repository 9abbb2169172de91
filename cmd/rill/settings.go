package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rill/internal/observ"
	"rill/internal/project"
)

// settings merge rill.toml with the command line; flags win when set.
type settings struct {
	manifest         project.Manifest
	color            bool
	quiet            bool
	timings          bool
	maxDiagnostics   int
	warningsAsErrors bool
	timer            *observ.Timer
}

var current settings

// cleanups run in reverse order from teardown.
var cleanups []func()

func setup(cmd *cobra.Command, args []string) error {
	start := "."
	if len(args) > 0 && args[0] != "-" {
		start = args[0]
	}
	m, err := project.Discover(start)
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	s, err := resolveSettings(cmd, m)
	if err != nil {
		return err
	}
	current = s
	color.NoColor = !s.color

	stopTrace, err := setupTracing(cmd, m.Trace)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopTrace)

	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopProf)
	return nil
}

func teardown(cmd *cobra.Command) {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
	if current.timings && current.timer != nil && !current.quiet {
		fmt.Fprint(cmd.ErrOrStderr(), current.timer.Summary())
		current.timer = nil
	}
}

func resolveSettings(cmd *cobra.Command, m project.Manifest) (settings, error) {
	pf := cmd.Root().PersistentFlags()
	s := settings{
		manifest:         m,
		maxDiagnostics:   m.Diagnostics.Max,
		warningsAsErrors: m.Diagnostics.WarningsAsErrors,
	}

	colorMode := m.Diagnostics.Color
	if pf.Changed("color") || colorMode == "" {
		v, err := pf.GetString("color")
		if err != nil {
			return s, fmt.Errorf("failed to get color flag: %w", err)
		}
		colorMode = v
	}
	switch colorMode {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto":
		s.color = isTerminal(os.Stderr) && os.Getenv("NO_COLOR") == ""
	default:
		return s, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorMode)
	}

	if pf.Changed("max-diagnostics") {
		v, err := pf.GetInt("max-diagnostics")
		if err != nil {
			return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		if v < 0 {
			return s, fmt.Errorf("--max-diagnostics must be >= 0")
		}
		s.maxDiagnostics = v
	}

	var err error
	if s.quiet, err = pf.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = pf.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.timings {
		s.timer = observ.NewTimer()
	}
	return s, nil
}
