package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file looked up by FindManifest.
const ManifestName = "rill.toml"

// Manifest is the decoded rill.toml.
type Manifest struct {
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Trace       TraceConfig       `toml:"trace"`
	Format      FormatConfig      `toml:"format"`

	// Path is where the manifest was read from, "" for defaults.
	Path string `toml:"-"`
}

type DiagnosticsConfig struct {
	Max              int    `toml:"max"`
	WarningsAsErrors bool   `toml:"warnings_as_errors"`
	Color            string `toml:"color"` // auto | on | off
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// FormatConfig drives `rill fmt`.
type FormatConfig struct {
	IndentWidth int  `toml:"indent_width"`
	UseTabs     bool `toml:"use_tabs"`
}

// ErrUnknownKey is wrapped when the manifest has keys rill does not know.
var ErrUnknownKey = errors.New("unknown manifest key")

// Default returns the configuration used when no manifest exists.
func Default() Manifest {
	return Manifest{
		Diagnostics: DiagnosticsConfig{Max: 100, Color: "auto"},
		Trace:       TraceConfig{Level: "off"},
		Format:      FormatConfig{IndentWidth: 4},
	}
}

// FindManifest walks up from startDir to locate rill.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes the manifest at path over the defaults.
func Load(path string) (Manifest, error) {
	m := Default()
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Manifest{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	m.Path = path
	if err := m.Validate(); err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Discover finds and loads the manifest governing startPath, or returns the defaults.
func Discover(startPath string) (Manifest, error) {
	path, ok, err := FindManifest(startPath)
	if err != nil {
		return Manifest{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (m *Manifest) Validate() error {
	if m.Diagnostics.Max < 0 {
		return fmt.Errorf("diagnostics.max must be >= 0, got %d", m.Diagnostics.Max)
	}
	if m.Format.IndentWidth < 0 || m.Format.IndentWidth > 16 {
		return fmt.Errorf("format.indent_width must be in 0..16, got %d", m.Format.IndentWidth)
	}
	switch m.Diagnostics.Color {
	case "", "auto", "on", "off":
	default:
		return fmt.Errorf("diagnostics.color must be auto, on or off, got %q", m.Diagnostics.Color)
	}
	return nil
}

// Root is the directory containing the manifest, "" for defaults.
func (m *Manifest) Root() string {
	if m.Path == "" {
		return ""
	}
	return filepath.Dir(m.Path)
}
