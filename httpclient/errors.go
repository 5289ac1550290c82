package httpclient

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrorCode classifies a failed call.
type ErrorCode int

const (
	ErrCodeTimeout    ErrorCode = iota // deadline or cancellation
	ErrCodeConnection                  // dial, TLS or body read failure
	ErrCodeAuth                        // 401, 403
	ErrCodeNotFound                    // 404
	ErrCodeRateLimit                   // 429
	// ErrCodeValidation is any other 4xx, or a request that could not be
	// built.
	ErrCodeValidation
	ErrCodeServer // 5xx
)

var codeNames = [...]string{
	ErrCodeTimeout:    "timeout",
	ErrCodeConnection: "connection",
	ErrCodeAuth:       "auth",
	ErrCodeNotFound:   "not_found",
	ErrCodeRateLimit:  "rate_limit",
	ErrCodeValidation: "validation",
	ErrCodeServer:     "server",
}

func (c ErrorCode) String() string {
	if c >= 0 && int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "unknown"
}

// Error is returned by Client.Do for every failure. StatusCode is zero when
// no response was received.
type Error struct {
	StatusCode int
	Code       ErrorCode
	Message    string
	Retryable  bool
	// Body and Headers come from the rejected response.
	Body    []byte
	Headers map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Header looks up a response header by canonical key.
func (e *Error) Header(key string) string {
	return e.Headers[http.CanonicalHeaderKey(key)]
}

func transportError(code ErrorCode, err error) *Error {
	return &Error{Code: code, Message: err.Error(), Retryable: true, Err: err}
}

// NewTimeoutError wraps a deadline or cancellation.
func NewTimeoutError(err error) *Error { return transportError(ErrCodeTimeout, err) }

// NewConnectionError wraps a failure to reach the server or read its reply.
func NewConnectionError(err error) *Error { return transportError(ErrCodeConnection, err) }

// NewValidationError reports a request that could not be built.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// ClassifyStatusCode maps a non-2xx status to an *Error carrying the body
// and headers. It returns nil for 2xx.
func ClassifyStatusCode(statusCode int, body []byte, headers map[string]string) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	e := &Error{
		StatusCode: statusCode,
		Code:       ErrCodeServer,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Body:       body,
		Headers:    headers,
	}
	switch {
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		e.Code = ErrCodeAuth
	case statusCode == http.StatusNotFound:
		e.Code = ErrCodeNotFound
	case statusCode == http.StatusTooManyRequests:
		e.Code, e.Retryable = ErrCodeRateLimit, true
	case statusCode >= 400 && statusCode < 500:
		e.Code = ErrCodeValidation
	case statusCode >= 500:
		e.Retryable = true
	}
	return e
}

// ParseRetryAfter reads a Retry-After value in delta seconds or as an HTTP
// date relative to now. A date in the past gives zero.
func ParseRetryAfter(value string, now time.Time) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	at, err := http.ParseTime(value)
	if err != nil {
		return 0, false
	}
	return max(at.Sub(now).Round(time.Second), 0), true
}

// RetryAfterHint is a resilience.RetryConfig.DelayHint that reads
// Retry-After from an *Error.
func RetryAfterHint(err error) time.Duration {
	var e *Error
	if !errors.As(err, &e) {
		return 0
	}
	d, _ := ParseRetryAfter(e.Header("Retry-After"), time.Now())
	return d
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func IsTimeout(err error) bool     { return hasCode(err, ErrCodeTimeout) }
func IsConnection(err error) bool  { return hasCode(err, ErrCodeConnection) }
func IsAuth(err error) bool        { return hasCode(err, ErrCodeAuth) }
func IsNotFound(err error) bool    { return hasCode(err, ErrCodeNotFound) }
func IsRateLimit(err error) bool   { return hasCode(err, ErrCodeRateLimit) }
func IsServerError(err error) bool { return hasCode(err, ErrCodeServer) }

// IsRetryable reports timeouts, connection failures, 429 and 5xx.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}
