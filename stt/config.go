package stt

import (
	"fmt"
	"time"

	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/observability"
	"github.com/kbukum/elevenlabs-stt/resilience"
	"github.com/kbukum/elevenlabs-stt/security"
)

// Config is the file/env form of the client options, loaded under the
// "elevenlabs" key.
//
//	elevenlabs:
//	  api_key: ${ELEVENLABS_API_KEY}
//	  timeout: 2m
//	  validate_requests: true
//	  retry:
//	    enabled: true
//	    max_attempts: 4
type Config struct {
	APIKey           string                `yaml:"api_key" mapstructure:"api_key"`
	BaseURL          string                `yaml:"base_url" mapstructure:"base_url"`
	Timeout          time.Duration         `yaml:"timeout" mapstructure:"timeout"`
	ValidateRequests bool                  `yaml:"validate_requests" mapstructure:"validate_requests"`
	Headers          map[string]string     `yaml:"headers" mapstructure:"headers"`
	TLS              *security.TLSConfig   `yaml:"tls" mapstructure:"tls"`
	Retry            RetrySettings         `yaml:"retry" mapstructure:"retry"`
	RateLimit        RateLimitSettings     `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// RetrySettings enables WithRetry from configuration.
type RetrySettings struct {
	Enabled        bool          `yaml:"enabled" mapstructure:"enabled"`
	MaxAttempts    int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff" mapstructure:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff" mapstructure:"max_backoff"`
}

// RateLimitSettings enables WithRateLimit from configuration.
type RateLimitSettings struct {
	Enabled bool    `yaml:"enabled" mapstructure:"enabled"`
	Rate    float64 `yaml:"rate" mapstructure:"rate"`
	Burst   int     `yaml:"burst" mapstructure:"burst"`
}

// ApplyDefaults fills the base URL and the settings of enabled sections.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Retry.Enabled {
		def := resilience.DefaultRetryConfig()
		if c.Retry.MaxAttempts == 0 {
			c.Retry.MaxAttempts = def.MaxAttempts
		}
		if c.Retry.InitialBackoff == 0 {
			c.Retry.InitialBackoff = def.InitialBackoff
		}
		if c.Retry.MaxBackoff == 0 {
			c.Retry.MaxBackoff = def.MaxBackoff
		}
	}
	if c.RateLimit.Enabled {
		def := resilience.DefaultRateLimiterConfig(componentName)
		if c.RateLimit.Rate == 0 {
			c.RateLimit.Rate = def.Rate
		}
		if c.RateLimit.Burst == 0 {
			c.RateLimit.Burst = def.Burst
		}
	}
}

// Validate checks the configuration. An empty API key is allowed: the
// service answers with an authentication error.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("elevenlabs.timeout must not be negative (got: %s)", c.Timeout)
	}
	if c.Retry.Enabled {
		if c.Retry.MaxAttempts < 1 {
			return fmt.Errorf("elevenlabs.retry.max_attempts must be at least 1 (got: %d)", c.Retry.MaxAttempts)
		}
		if c.Retry.MaxBackoff < c.Retry.InitialBackoff {
			return fmt.Errorf("elevenlabs.retry.max_backoff must not be below initial_backoff")
		}
	}
	if c.RateLimit.Enabled && (c.RateLimit.Rate <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("elevenlabs.rate_limit needs a positive rate and burst")
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Options converts the configuration into client options.
func (c *Config) Options() []Option {
	opts := []Option{
		WithTimeout(c.Timeout),
		WithValidation(c.ValidateRequests),
	}
	for k, v := range c.Headers {
		opts = append(opts, WithHeader(k, v))
	}
	if c.TLS != nil {
		opts = append(opts, WithTLS(*c.TLS))
	}
	if c.Retry.Enabled {
		rc := resilience.DefaultRetryConfig()
		rc.MaxAttempts = c.Retry.MaxAttempts
		rc.InitialBackoff = c.Retry.InitialBackoff
		rc.MaxBackoff = c.Retry.MaxBackoff
		opts = append(opts, WithRetry(rc))
	}
	if c.RateLimit.Enabled {
		rl := resilience.DefaultRateLimiterConfig(componentName)
		rl.Rate = c.RateLimit.Rate
		rl.Burst = c.RateLimit.Burst
		opts = append(opts, WithRateLimit(rl))
	}
	return opts
}

// NewFromConfig applies defaults, validates cfg and creates a client. Extra
// options are applied after the configured ones.
func NewFromConfig(cfg Config, log *logger.Logger, metrics *observability.Metrics, extra ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, &Error{Kind: KindValidation, Message: err.Error(), Err: err}
	}
	opts := cfg.Options()
	if log != nil {
		opts = append(opts, WithLogger(log))
	}
	if metrics != nil {
		opts = append(opts, WithMetrics(metrics))
	}
	return NewWithBaseURL(cfg.APIKey, cfg.BaseURL, append(opts, extra...)...)
}
