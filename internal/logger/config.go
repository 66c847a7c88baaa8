package logger

import (
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Format string
	Level  zapcore.Level
}

// NewConfig returns a new instance of Config with defaults.
func NewConfig() Config {
	return Config{
		Format: "console",
		Level:  zapcore.WarnLevel,
	}
}

// ParseConfig builds a Config from the textual level and format used in
// settings files and flags.
func ParseConfig(level, format string) (Config, error) {
	c := NewConfig()
	if format != "" {
		c.Format = format
	}
	if level != "" {
		if err := c.Level.UnmarshalText([]byte(level)); err != nil {
			return Config{}, err
		}
	}
	return c, nil
}
