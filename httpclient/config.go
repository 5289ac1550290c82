package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/elevenlabs-stt/resilience"
	"github.com/kbukum/elevenlabs-stt/security"
)

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds a whole call including reading the body.
	// Zero leaves calls unbounded; the request context still applies.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Auth configures default authentication applied to all requests.
	// Individual requests can override this.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// TLS is for private CAs or mTLS gateways in front of the API.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// MaxResponseBytes caps the body read from a response. Defaults to
	// DefaultMaxResponseBytes.
	MaxResponseBytes int64 `yaml:"max_response_bytes" mapstructure:"max_response_bytes"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`

	// RateLimiter configures client-side rate limiting. Nil disables it.
	RateLimiter *resilience.RateLimiterConfig `yaml:"-" mapstructure:"-"`
}

// DefaultMaxResponseBytes is far above the size of a transcript with
// character timestamps for several hours of audio.
const DefaultMaxResponseBytes int64 = 64 << 20

// ApplyDefaults fills in the response limit and the defaults of enabled
// resilience settings.
func (c *Config) ApplyDefaults() {
	if c.MaxResponseBytes <= 0 {
		c.MaxResponseBytes = DefaultMaxResponseBytes
	}
	if c.Retry != nil && c.Retry.RetryIf == nil {
		c.Retry.RetryIf = IsRetryable
	}
	if c.Retry != nil && c.Retry.DelayHint == nil {
		c.Retry.DelayHint = RetryAfterHint
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("httpclient: timeout must not be negative")
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	if c.RateLimiter != nil && c.RateLimiter.Rate < 0 {
		return fmt.Errorf("httpclient: rate limit must not be negative")
	}
	return nil
}

// DefaultRetryConfig returns a retry config that retries transient HTTP
// failures and honours Retry-After.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	cfg.DelayHint = RetryAfterHint
	return &cfg
}

// DefaultRateLimiterConfig returns a default rate limiter config.
func DefaultRateLimiterConfig(name string) *resilience.RateLimiterConfig {
	cfg := resilience.DefaultRateLimiterConfig(name)
	return &cfg
}
