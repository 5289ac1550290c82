// Package resilience provides opt-in fault-tolerance helpers for outbound
// calls.
//
//   - Retry: retries failed operations with exponential backoff, honouring a
//     server-provided delay hint such as Retry-After
//   - RateLimiter: paces requests with a token bucket
//
// Nothing here is enabled implicitly; callers wire them in explicitly:
//
//	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{Rate: 2, Burst: 4})
//	resp, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func() (*Response, error) {
//	    if err := rl.Wait(ctx); err != nil {
//	        return nil, err
//	    }
//	    return send(ctx)
//	})
package resilience
