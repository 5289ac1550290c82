package auth

import (
	"errors"
	"fmt"
	"time"
)

// Supported HMAC signing methods.
const (
	HS256 = "HS256"
	HS384 = "HS384"
	HS512 = "HS512"
)

// Config protects the read API with HMAC-signed bearer tokens, loaded under
// the "auth" key.
type Config struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Secret  string `yaml:"secret" mapstructure:"secret"`
	// Method is the signing algorithm (default: HS256).
	Method   string   `yaml:"method" mapstructure:"method"`
	Issuer   string   `yaml:"issuer" mapstructure:"issuer"`
	Audience []string `yaml:"audience" mapstructure:"audience"`
	// TokenTTL is the lifetime of issued tokens (default: 1h).
	TokenTTL time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
	// Leeway tolerates clock skew when checking time claims.
	Leeway time.Duration `yaml:"leeway" mapstructure:"leeway"`
}

func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = time.Hour
	}
}

// Validate checks the configuration. A disabled config is always valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch c.Method {
	case HS256, HS384, HS512:
	default:
		return fmt.Errorf("auth.method %q is not one of HS256, HS384, HS512", c.Method)
	}
	if len(c.Secret) < 32 {
		return errors.New("auth.secret must be at least 32 bytes")
	}
	if c.TokenTTL < 0 || c.Leeway < 0 {
		return errors.New("auth durations must not be negative")
	}
	return nil
}
