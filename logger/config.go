package logger

import (
	"fmt"
	"slices"
)

// Config is the logging section of a service config.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"caller"`
}

var (
	levels  = []string{"trace", "debug", "info", "warn", "error", "fatal", "disabled"}
	formats = []string{"json", "console", "pretty"}
	outputs = []string{"stdout", "stderr"}
)

// ApplyDefaults selects info level console output on stderr. Timestamps are
// always on.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
	c.Timestamp = true
}

func (c *Config) Validate() error {
	for _, check := range []struct {
		key, value string
		allowed    []string
	}{
		{"logging.level", c.Level, levels},
		{"logging.format", c.Format, formats},
		{"logging.output", c.Output, outputs},
	} {
		if !slices.Contains(check.allowed, check.value) {
			return fmt.Errorf("%s must be one of %v (got: %s)", check.key, check.allowed, check.value)
		}
	}
	return nil
}
