package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"maps"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/elevenlabs-stt/httpclient"
	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/observability"
	"github.com/kbukum/elevenlabs-stt/resilience"
	"github.com/kbukum/elevenlabs-stt/util"
	"github.com/kbukum/elevenlabs-stt/version"
)

const (
	// DefaultBaseURL is the production API root.
	DefaultBaseURL = "https://api.elevenlabs.io/v1"
	// APIKeyHeader carries the credential on every request.
	APIKeyHeader = "xi-api-key"

	speechToTextPath = "/speech-to-text"
	componentName    = "stt"
)

// Client talks to the speech-to-text endpoint. It is immutable after
// construction and safe for concurrent use.
type Client struct {
	apiKey   string
	baseURL  string
	http     *httpclient.Client
	validate bool
	log      *logger.Logger
	metrics  *observability.Metrics
}

// New creates a client for the production API.
func New(apiKey string, opts ...Option) (*Client, error) {
	return NewWithBaseURL(apiKey, DefaultBaseURL, opts...)
}

// NewWithBaseURL creates a client for another deployment, such as a test
// server or an enterprise endpoint.
func NewWithBaseURL(apiKey, baseURL string, opts ...Option) (*Client, error) {
	o := options{baseURL: baseURL}
	for _, opt := range opts {
		opt(&o)
	}

	log := o.log
	if log == nil {
		log = logger.Get(componentName)
	}

	headers := map[string]string{"User-Agent": version.UserAgent()}
	maps.Copy(headers, o.headers)

	cfg := httpclient.Config{
		BaseURL:     o.baseURL,
		Timeout:     o.timeout,
		Auth:        httpclient.APIKeyAuthHeader(apiKey, APIKeyHeader),
		TLS:         o.tls,
		Headers:     headers,
		RateLimiter: o.rateLimit,
	}
	if o.retry != nil {
		cfg.Retry = retryConfig(*o.retry, log)
	}
	if o.rateLimit != nil && o.rateLimit.OnLimit == nil {
		cfg.RateLimiter.OnLimit = func(name string, wait time.Duration) {
			log.Debug("rate limiter delaying request", logger.Fields("limiter", name, "wait_ms", wait.Milliseconds()))
		}
	}

	hc, err := httpclient.New(cfg)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Message: err.Error(), Err: err}
	}

	log.Debug("client created", logger.Fields(
		"base_url", o.baseURL,
		"api_key", util.MaskSecret(apiKey, 4),
		"retry", o.retry != nil,
		"rate_limit", o.rateLimit != nil,
		"validate", o.validate,
	))

	return &Client{
		apiKey:   apiKey,
		baseURL:  o.baseURL,
		http:     hc,
		validate: o.validate,
		log:      log,
		metrics:  o.metrics,
	}, nil
}

// retryConfig restricts retries to transient failures and logs each retry.
func retryConfig(cfg resilience.RetryConfig, log *logger.Logger) *resilience.RetryConfig {
	userIf := cfg.RetryIf
	cfg.RetryIf = func(err error) bool {
		return httpclient.IsRetryable(err) && (userIf == nil || userIf(err))
	}
	if cfg.DelayHint == nil {
		cfg.DelayHint = httpclient.RetryAfterHint
	}
	userOnRetry := cfg.OnRetry
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		log.Warn("retrying speech-to-text request", logger.Fields(
			"attempt", attempt,
			logger.FieldError, err.Error(),
			logger.FieldRetryAfter, backoff.String(),
		))
		if userOnRetry != nil {
			userOnRetry(attempt, err, backoff)
		}
	}
	return &cfg
}

// SpeechToText starts a request. file may be nil when the media is given
// with CloudStorageURL instead.
func (c *Client) SpeechToText(file []byte) SpeechToTextBuilder {
	return SpeechToTextBuilder{client: c, req: Request{File: file}}
}

// Transcribe sends a prepared request.
func (c *Client) Transcribe(ctx context.Context, req Request) (*Response, error) {
	if req.ModelID == "" {
		req.ModelID = DefaultModel
	}
	return c.execute(ctx, req)
}

// APIKey returns the configured credential.
func (c *Client) APIKey() string { return c.apiKey }

// BaseURL returns the API root the client posts to.
func (c *Client) BaseURL() string { return c.baseURL }

// CheckHealth reports whether the client is usable. It makes no network call.
func (c *Client) CheckHealth(context.Context) observability.Health {
	h := observability.Health{
		Name:    "elevenlabs-stt",
		Status:  observability.HealthStatusUp,
		Details: map[string]string{"base_url": c.baseURL},
	}
	if c.apiKey == "" {
		h.Status = observability.HealthStatusDegraded
		h.Message = "no API key configured"
	}
	return h
}

func (c *Client) execute(ctx context.Context, req Request) (*Response, error) {
	if c == nil {
		return nil, &Error{Kind: KindRequest, Message: "builder has no client"}
	}

	if c.validate {
		if err := req.Validate(); err != nil {
			c.log.Warn("speech-to-text request rejected", logger.Fields(
				logger.FieldModelID, req.ModelID,
				logger.FieldErrorKind, KindValidation.String(),
				logger.FieldError, err.Error(),
			))
			return nil, err
		}
	}

	requestID := uuid.NewString()
	log := c.log.WithContext(ctx).WithFields(logger.Fields(
		logger.FieldRequestID, requestID,
		logger.FieldModelID, req.ModelID,
	))

	op := observability.NewOperation(requestID, req.ModelID, c.metrics)
	ctx, span := op.Start(ctx, observability.SpanSpeechToText)

	body := req.Body()
	log.Debug("sending speech-to-text request", logger.Fields(
		"fields", len(body.Fields),
		"file_bytes", len(req.File),
	))

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   speechToTextPath,
		Body:   body,
	})
	if err != nil {
		return nil, c.fail(ctx, log, op, span, fromTransport(err))
	}

	out, err := decodeResponse(resp.Body)
	if err != nil {
		perr := parseError(err)
		perr.StatusCode = resp.StatusCode
		perr.Body = resp.Body
		return nil, c.fail(ctx, log, op, span, perr)
	}

	op.End(ctx, span, resp.StatusCode, "", nil)
	log.Debug("speech-to-text request completed", logger.MergeWithDuration(
		logger.Fields(logger.FieldStatus, resp.StatusCode, "words", len(out.Words)),
		op.Duration(),
	))
	return out, nil
}

func (c *Client) fail(ctx context.Context, log *logger.Logger, op *observability.Operation, span trace.Span, e *Error) *Error {
	op.End(ctx, span, e.StatusCode, e.Kind.String(), e)

	fields := logger.Fields(
		logger.FieldErrorKind, e.Kind.String(),
		logger.FieldError, e.Error(),
	)
	if e.StatusCode > 0 {
		fields[logger.FieldStatus] = e.StatusCode
	}
	if e.HasRetryAfter() {
		fields[logger.FieldRetryAfter] = e.RetryAfter.String()
	}
	log.Warn("speech-to-text request failed", logger.MergeWithDuration(fields, op.Duration()))
	return e
}

var errNotObject = errors.New("response body is not a JSON object")

// decodeResponse rejects bodies such as "null" that would otherwise decode
// into an empty Response.
func decodeResponse(body []byte) (*Response, error) {
	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if trimmed := bytes.TrimSpace(body); trimmed[0] != '{' {
		return nil, errNotObject
	}
	return &out, nil
}
