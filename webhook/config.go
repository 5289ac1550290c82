package webhook

import (
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/elevenlabs-stt/server"
)

const (
	// DefaultPath is the route the receiver listens on.
	DefaultPath = "/webhooks/elevenlabs"
	// DefaultTolerance is the maximum accepted age of a signature timestamp.
	DefaultTolerance = 30 * time.Minute
)

// Config configures the receiver, loaded under the "webhook" key.
//
//	webhook:
//	  port: 8085
//	  path: /webhooks/elevenlabs
//	  secret: ${WEBHOOK_SECRET}
//	  tolerance: 30m
type Config struct {
	Server    server.Config `yaml:",inline" mapstructure:",squash"`
	Path      string        `yaml:"path" mapstructure:"path"`
	Secret    string        `yaml:"secret" mapstructure:"secret"`
	Tolerance time.Duration `yaml:"tolerance" mapstructure:"tolerance"`
}

// ApplyDefaults fills the route, tolerance and server settings.
func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}
}

// Validate checks the configuration. A secret is mandatory: unsigned
// deliveries are never accepted.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("webhook.secret is required")
	}
	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("webhook.path must start with / (got: %q)", c.Path)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("webhook.tolerance must not be negative (got: %s)", c.Tolerance)
	}
	return c.Server.Validate()
}
