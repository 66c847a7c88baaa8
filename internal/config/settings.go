package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Color modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Settings represents the cadenza.yaml configuration.
type Settings struct {
	// LogLevel is a zap level name: debug, info, warn, error.
	// Defaults to "warn".
	LogLevel string `yaml:"log_level,omitempty"`

	// LogFormat selects the encoder: "console" or "json".
	// Defaults to "console".
	LogFormat string `yaml:"log_format,omitempty"`

	// AccumulateErrors keeps checking after a failing top-level statement
	// and reports every failure. The pass verdict is the same either way.
	AccumulateErrors bool `yaml:"accumulate_errors,omitempty"`

	// Color is one of auto, always, never. Defaults to auto, which colors
	// output only when stdout is a terminal.
	Color string `yaml:"color,omitempty"`

	// IndexPath, when set, is the SQLite file that receives the bindings
	// made during resolution.
	IndexPath string `yaml:"index_path,omitempty"`
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() *Settings {
	s := &Settings{}
	s.setDefaults()
	return s
}

// LoadSettings reads and parses a settings file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}
	return ParseSettings(data, path)
}

// ParseSettings parses settings content from bytes.
// The path argument is used for error messages and to resolve a relative
// index_path.
func ParseSettings(data []byte, path string) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := s.validate(path); err != nil {
		return nil, err
	}
	s.setDefaults()
	if s.IndexPath != "" && !filepath.IsAbs(s.IndexPath) && path != "" {
		s.IndexPath = filepath.Join(filepath.Dir(path), s.IndexPath)
	}
	return &s, nil
}

// FindSettings searches for a settings file starting from dir and walking
// up to parent directories. It returns an empty path and nil error when
// none exists.
func FindSettings(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range SettingsFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (s *Settings) validate(path string) error {
	switch s.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%s: log_level %q must be one of debug, info, warn, error", path, s.LogLevel)
	}
	switch s.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("%s: log_format %q must be console or json", path, s.LogFormat)
	}
	switch s.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color %q must be one of auto, always, never", path, s.Color)
	}
	return nil
}

func (s *Settings) setDefaults() {
	if s.LogLevel == "" {
		s.LogLevel = "warn"
	}
	if s.LogFormat == "" {
		s.LogFormat = "console"
	}
	if s.Color == "" {
		s.Color = ColorAuto
	}
}
