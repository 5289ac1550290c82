package resilience

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

var (
	errRateLimited = errors.New("429 rate limited")
	errRejected    = errors.New("400 invalid model_id")
)

// script returns errs in order, then succeeds with the attempt number.
func script(calls *int, errs ...error) func() (int, error) {
	return func() (int, error) {
		*calls++
		if *calls <= len(errs) {
			return 0, errs[*calls-1]
		}
		return *calls, nil
	}
}

func TestRetry(t *testing.T) {
	onlyRateLimits := func(err error) bool { return errors.Is(err, errRateLimited) }

	tests := []struct {
		name      string
		retryIf   func(error) bool
		errs      []error
		want      int
		wantErr   error
		wantCalls int
	}{
		{name: "first attempt", want: 1, wantCalls: 1},
		{name: "recovers", errs: []error{errRateLimited, errRateLimited}, want: 3, wantCalls: 3},
		{name: "exhausted", errs: []error{errRateLimited, errRateLimited, errRateLimited}, wantErr: errRateLimited, wantCalls: 3},
		{name: "last error wins", errs: []error{errRateLimited, errRateLimited, errRejected}, wantErr: errRejected, wantCalls: 3},
		{name: "not retryable", retryIf: onlyRateLimits, errs: []error{errRejected}, wantErr: errRejected, wantCalls: 1},
		{name: "stops at rejected", retryIf: onlyRateLimits, errs: []error{errRateLimited, errRejected}, wantErr: errRejected, wantCalls: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond, RetryIf: tt.retryIf}
			calls := 0
			got, err := Retry(t.Context(), cfg, script(&calls, tt.errs...))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected result %d, got %d", tt.want, got)
			}
			if calls != tt.wantCalls {
				t.Errorf("expected %d calls, got %d", tt.wantCalls, calls)
			}
		})
	}
}

func TestRetryContext(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 10, InitialBackoff: 100 * time.Millisecond}
	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	calls := 0
	_, err := Retry(ctx, cfg, func() (int, error) {
		calls++
		return 0, errRateLimited
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected the wait to be cut short after 1 call, got %d", calls)
	}

	canceled, stop := context.WithCancel(t.Context())
	stop()
	calls = 0
	if _, err := Retry(canceled, cfg, script(&calls)); !errors.Is(err, context.Canceled) || calls != 0 {
		t.Errorf("expected no call on a canceled context, got %v after %d calls", err, calls)
	}
}

func TestDefaultRetryIf(t *testing.T) {
	if DefaultRetryIf(context.Canceled) || DefaultRetryIf(context.DeadlineExceeded) {
		t.Error("context errors must not be retried")
	}
	if !DefaultRetryIf(errRateLimited) {
		t.Error("expected other errors to be retried")
	}
}

func TestRetryDelays(t *testing.T) {
	var (
		attempts []int
		delays   []time.Duration
	)
	cfg := RetryConfig{
		MaxAttempts:    4,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     20 * time.Millisecond,
		DelayHint: func(err error) time.Duration {
			if errors.Is(err, errRateLimited) {
				return time.Hour
			}
			return 0
		},
		OnRetry: func(attempt int, _ error, d time.Duration) {
			attempts = append(attempts, attempt)
			delays = append(delays, d)
		},
	}

	calls := 0
	_, err := Retry(t.Context(), cfg, script(&calls, errRateLimited, errRejected, errRejected, errRejected))
	if !errors.Is(err, errRejected) {
		t.Fatalf("expected last error, got %v", err)
	}
	if !slices.Equal(attempts, []int{1, 2, 3}) {
		t.Errorf("expected OnRetry for attempts 1-3, got %v", attempts)
	}
	want := []time.Duration{20 * time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}
	if !slices.Equal(delays, want) {
		t.Errorf("expected capped hint then backoff %v, got %v", want, delays)
	}
}

func TestBackoff(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second, BackoffFactor: 2}
	want := []time.Duration{100, 200, 400, 800, 1000, 1000}
	for i, w := range want {
		if got := cfg.backoff(i + 1); got != w*time.Millisecond {
			t.Errorf("attempt %d: expected %v, got %v", i+1, w*time.Millisecond, got)
		}
	}

	cfg.Jitter = 0.5
	for range 50 {
		if got := cfg.backoff(2); got < 100*time.Millisecond || got > 300*time.Millisecond {
			t.Fatalf("jittered backoff %v outside ±50%%", got)
		}
	}
}
