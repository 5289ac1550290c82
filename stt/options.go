package stt

import (
	"time"

	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/observability"
	"github.com/kbukum/elevenlabs-stt/resilience"
	"github.com/kbukum/elevenlabs-stt/security"
)

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL   string
	timeout   time.Duration
	tls       *security.TLSConfig
	retry     *resilience.RetryConfig
	rateLimit *resilience.RateLimiterConfig
	validate  bool
	log       *logger.Logger
	metrics   *observability.Metrics
	headers   map[string]string
}

// WithBaseURL points the client at another deployment, such as a test server.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithTimeout bounds every call. Without it only the context limits a call.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithTLS configures the transport's TLS settings.
func WithTLS(cfg security.TLSConfig) Option {
	return func(o *options) { o.tls = &cfg }
}

// WithRetry retries transport failures, 429 and 5xx responses. Retry-After
// replaces the computed backoff, capped at cfg.MaxBackoff.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(o *options) { o.retry = &cfg }
}

// WithRateLimit paces outbound calls with a token bucket shared by all
// callers of the client.
func WithRateLimit(cfg resilience.RateLimiterConfig) Option {
	return func(o *options) { o.rateLimit = &cfg }
}

// WithValidation enables local parameter validation before sending.
func WithValidation(on bool) Option {
	return func(o *options) { o.validate = on }
}

// WithLogger replaces the "stt" component logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records request metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithHeader adds a header to every request. The xi-api-key header cannot
// be overridden this way.
func WithHeader(key, value string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}
