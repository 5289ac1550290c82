package webhook

import (
	"time"

	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/observability"
)

// Option configures Handler and NewServer.
type Option func(*options)

type options struct {
	log      *logger.Logger
	dedup    Deduplicator
	checkers []observability.HealthChecker
	now      func() time.Time
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get("webhook")
	}
	return o
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithDeduplicator skips deliveries whose request id was already processed.
func WithDeduplicator(d Deduplicator) Option {
	return func(o *options) { o.dedup = d }
}

// WithHealthCheckers adds components to the receiver's /health report.
func WithHealthCheckers(checkers ...observability.HealthChecker) Option {
	return func(o *options) { o.checkers = append(o.checkers, checkers...) }
}

func withClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}
