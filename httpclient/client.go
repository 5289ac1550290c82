package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kbukum/elevenlabs-stt/resilience"
)

// Client sends requests with shared auth, TLS, retry and rate limiting. It
// is safe for concurrent use.
type Client struct {
	http    *http.Client
	cfg     Config
	limiter *resilience.RateLimiter
}

// New creates a client. cfg gets its defaults applied and is validated.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		transport.TLSClientConfig = tlsCfg
	}

	c := &Client{
		http: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		cfg:  cfg,
	}
	if cfg.RateLimiter != nil {
		c.limiter = resilience.NewRateLimiter(*cfg.RateLimiter)
	}
	return c, nil
}

// Do sends req, retrying when the client has a retry policy. A non-2xx
// status returns both the response and an *Error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if c.cfg.Retry == nil {
		return c.attempt(ctx, req)
	}
	var last *Response
	resp, err := resilience.Retry(ctx, *c.cfg.Retry, func() (*Response, error) {
		r, err := c.attempt(ctx, req)
		if r != nil {
			last = r
		}
		return r, err
	})
	if err != nil {
		return last, err
	}
	return resp, nil
}

func (c *Client) attempt(ctx context.Context, req Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, NewTimeoutError(err)
		}
	}

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := readLimited(resp.Body, c.cfg.MaxResponseBytes)
	if err != nil {
		return nil, NewConnectionError(err)
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Headers:    firstValues(resp.Header),
		Body:       body,
	}
	if err := ClassifyStatusCode(resp.StatusCode, body, out.Headers); err != nil {
		return out, err
	}
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	target, err := c.resolve(req.Path)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("request url: %v", err))
	}
	if len(req.Query) > 0 {
		q := target.Query()
		for k, vs := range req.Query {
			q[k] = vs
		}
		target.RawQuery = q.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	if req.Body != nil {
		body, contentType, err = req.Body.Encode()
		if err != nil {
			return nil, NewValidationError(fmt.Sprintf("encode body: %v", err))
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err))
	}
	for k, v := range c.cfg.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	// The body knows its own encoding; a multipart boundary must match.
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	auth := c.cfg.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	auth.apply(httpReq)
	return httpReq, nil
}

// resolve joins path to the base URL. Absolute URLs are used as they are.
func (c *Client) resolve(path string) (*url.URL, error) {
	u, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	if u.IsAbs() || c.cfg.BaseURL == "" {
		return u, nil
	}
	return url.Parse(strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/"))
}

// readLimited reads at most limit bytes; a longer body is an error rather
// than a silently truncated transcript.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("response body exceeds %d bytes", limit)
	}
	return data, nil
}

func firstValues(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
