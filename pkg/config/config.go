// Package config loads solidkit settings from a TOML file layered over
// built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

// Config holds every tunable setting.
type Config struct {
	Bench  Bench  `toml:"bench"`
	Eval   Eval   `toml:"eval"`
	Mesh   Mesh   `toml:"mesh"`
	Log    Log    `toml:"log"`
	Report Report `toml:"report"`
}

// Bench controls the measurement timing harness.
type Bench struct {
	Iterations int `toml:"iterations"`
	Warmup     int `toml:"warmup"`
}

// Eval controls script evaluation.
type Eval struct {
	Timeout string `toml:"timeout"` // a time.ParseDuration string, e.g. "5s"
}

// Mesh controls tessellation.
type Mesh struct {
	Kernel   string  `toml:"kernel"`   // "sdfx" or "manifold"
	Cells    int     `toml:"cells"`    // marching cubes resolution
	Segments int     `toml:"segments"` // circle segments for the manifold kernel
	Gap      float64 `toml:"gap"`      // spacing between solids in a scene
}

// Kernel names accepted by Mesh.Kernel.
const (
	KernelSdfx     = "sdfx"
	KernelManifold = "manifold"
)

// Log controls logging.
type Log struct {
	Level string `toml:"level"`
}

// Report controls report rendering.
type Report struct {
	NameWidth int `toml:"name_width"` // names longer than this are truncated
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Bench:  Bench{Iterations: 100000, Warmup: 1000},
		Eval:   Eval{Timeout: "5s"},
		Mesh:   Mesh{Kernel: KernelSdfx, Cells: 200, Segments: 128, Gap: 1},
		Log:    Log{Level: "info"},
		Report: Report{NameWidth: 19},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/solidkit/config.toml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "solidkit", "config.toml"), nil
}

// Parse overlays the TOML document in data onto the defaults. Keys that are
// absent keep their default; unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("config: %s", strict.String())
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the file at path. A missing file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault reads the file at path, returning the defaults when it does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	if c.Bench.Iterations < 1 {
		return fmt.Errorf("config: bench.iterations must be at least 1, got %d", c.Bench.Iterations)
	}
	if c.Bench.Warmup < 0 {
		return fmt.Errorf("config: bench.warmup must not be negative, got %d", c.Bench.Warmup)
	}
	if c.Mesh.Cells < 8 {
		return fmt.Errorf("config: mesh.cells must be at least 8, got %d", c.Mesh.Cells)
	}
	if c.Mesh.Kernel != KernelSdfx && c.Mesh.Kernel != KernelManifold {
		return fmt.Errorf("config: mesh.kernel must be %q or %q, got %q", KernelSdfx, KernelManifold, c.Mesh.Kernel)
	}
	if c.Mesh.Segments < 3 {
		return fmt.Errorf("config: mesh.segments must be at least 3, got %d", c.Mesh.Segments)
	}
	if c.Mesh.Gap < 0 {
		return fmt.Errorf("config: mesh.gap must not be negative, got %g", c.Mesh.Gap)
	}
	if c.Report.NameWidth < 4 {
		return fmt.Errorf("config: report.name_width must be at least 4, got %d", c.Report.NameWidth)
	}
	if _, err := c.EvalTimeout(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// EvalTimeout parses Eval.Timeout, which must be positive.
func (c *Config) EvalTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Eval.Timeout)
	if err != nil {
		return 0, fmt.Errorf("config: eval.timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: eval.timeout must be positive, got %s", d)
	}
	return d, nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("config: log.level: %w", err)
	}
	return lvl, nil
}
