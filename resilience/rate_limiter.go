package resilience

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig configures a token bucket.
type RateLimiterConfig struct {
	// Name identifies the limiter in logs.
	Name string `yaml:"name" mapstructure:"name"`
	// Rate is requests per second.
	Rate  float64 `yaml:"rate" mapstructure:"rate"`
	Burst int     `yaml:"burst" mapstructure:"burst"`
	// OnLimit is called before Wait blocks.
	OnLimit func(name string, wait time.Duration) `yaml:"-" mapstructure:"-"`
}

// DefaultRateLimiterConfig suits a metered API: two requests a second with
// bursts of four.
func DefaultRateLimiterConfig(name string) RateLimiterConfig {
	return RateLimiterConfig{Name: name, Rate: 2, Burst: 4}
}

// RateLimiter paces callers with a token bucket that starts full. It is safe
// for concurrent use.
type RateLimiter struct {
	config RateLimiterConfig
	lim    *rate.Limiter
	now    func() time.Time
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.Rate <= 0 {
		config.Rate = 2
	}
	if config.Burst <= 0 {
		config.Burst = max(int(config.Rate), 1)
	}
	return &RateLimiter{
		config: config,
		lim:    rate.NewLimiter(rate.Limit(config.Rate), config.Burst),
		now:    time.Now,
	}
}

// Allow takes a token if one is available, without blocking.
func (rl *RateLimiter) Allow() bool {
	return rl.lim.AllowN(rl.now(), 1)
}

// Wait takes a token, blocking until it is due. A token reserved by a wait
// that ends with ctx is handed back.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r := rl.lim.ReserveN(rl.now(), 1)
	wait := r.DelayFrom(rl.now())
	if wait <= 0 {
		return nil
	}
	if rl.config.OnLimit != nil {
		rl.config.OnLimit(rl.config.Name, wait)
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		r.CancelAt(rl.now())
		return ctx.Err()
	}
}

// Tokens reports the tokens available now.
func (rl *RateLimiter) Tokens() float64 {
	return rl.lim.TokensAt(rl.now())
}
