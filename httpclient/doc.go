// Package httpclient is the HTTP transport used by the speech-to-text client.
//
// It owns the protocol concerns of a single outbound call: URL resolution
// against a base URL, default and per-request headers, API key or bearer
// authentication, ordered multipart/form-data encoding, TLS, and optional
// retry and rate limiting from the resilience package.
//
// Non-2xx responses are returned as *Error values carrying the status code,
// the raw body and the response headers so that callers can apply their own
// classification on top.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.elevenlabs.io/v1",
//	    Auth:    httpclient.APIKeyAuthHeader(key, "xi-api-key"),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/speech-to-text",
//	    Body: &httpclient.MultipartBody{
//	        Fields: []httpclient.FormField{{Name: "model_id", Value: "scribe_v1"}},
//	    },
//	})
//
// # With Resilience
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL:     "https://api.elevenlabs.io/v1",
//	    Retry:       httpclient.DefaultRetryConfig(),
//	    RateLimiter: httpclient.DefaultRateLimiterConfig("elevenlabs"),
//	})
package httpclient
