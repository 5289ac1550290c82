package httpclient

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{StatusCode: 404, Code: ErrCodeNotFound, Message: "HTTP 404"}, "httpclient: not_found (HTTP 404): HTTP 404"},
		{NewConnectionError(errors.New("connection refused")), "httpclient: connection: connection refused"},
		{NewValidationError("bad url"), "httpclient: validation: bad url"},
		{&Error{Code: ErrorCode(42), Message: "?"}, "httpclient: unknown: ?"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("i/o timeout")
	err := fmt.Errorf("transcribe: %w", NewTimeoutError(cause))
	if !errors.Is(err, cause) {
		t.Error("expected the cause to be reachable")
	}
	if !IsTimeout(err) || !IsRetryable(err) {
		t.Error("expected a retryable timeout through wrapping")
	}
	if IsTimeout(cause) || IsRetryable(cause) {
		t.Error("plain errors carry no classification")
	}
}

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		status int
		code   ErrorCode
		is     func(error) bool
		retry  bool
	}{
		{400, ErrCodeValidation, nil, false},
		{401, ErrCodeAuth, IsAuth, false},
		{402, ErrCodeValidation, nil, false},
		{403, ErrCodeAuth, IsAuth, false},
		{404, ErrCodeNotFound, IsNotFound, false},
		{422, ErrCodeValidation, nil, false},
		{429, ErrCodeRateLimit, IsRateLimit, true},
		{500, ErrCodeServer, IsServerError, true},
		{503, ErrCodeServer, IsServerError, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			e := ClassifyStatusCode(tt.status, []byte(`{"detail":"x"}`), map[string]string{"Retry-After": "7"})
			if e == nil {
				t.Fatal("expected an error")
			}
			if e.Code != tt.code || e.Retryable != tt.retry {
				t.Errorf("got %s retryable=%v, want %s retryable=%v", e.Code, e.Retryable, tt.code, tt.retry)
			}
			if tt.is != nil && !tt.is(e) {
				t.Errorf("predicate does not match %s", e.Code)
			}
			if string(e.Body) != `{"detail":"x"}` || e.Header("retry-after") != "7" {
				t.Error("body and headers must be carried")
			}
		})
	}

	for _, ok := range []int{200, 201, 204} {
		if e := ClassifyStatusCode(ok, nil, nil); e != nil {
			t.Errorf("%d: expected nil, got %v", ok, e)
		}
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	tests := []struct {
		name  string
		value string
		want  time.Duration
		ok    bool
	}{
		{"empty", "", 0, false},
		{"seconds", "30", 30 * time.Second, true},
		{"padded seconds", " 5 ", 5 * time.Second, true},
		{"zero", "0", 0, true},
		{"negative", "-3", 0, false},
		{"http date", now.Add(2 * time.Minute).Format(time.RFC1123), 2 * time.Minute, true},
		{"past date", now.Add(-time.Minute).Format(time.RFC1123), 0, true},
		{"garbage", "soon", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRetryAfter(tt.value, now)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseRetryAfter(%q) = (%v, %v), want (%v, %v)", tt.value, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRetryAfterHint(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ClassifyStatusCode(429, nil, map[string]string{"Retry-After": "3"}))
	if got := RetryAfterHint(err); got != 3*time.Second {
		t.Errorf("RetryAfterHint = %v, want 3s", got)
	}
	if got := RetryAfterHint(ClassifyStatusCode(503, nil, nil)); got != 0 {
		t.Errorf("RetryAfterHint without header = %v, want 0", got)
	}
	if got := RetryAfterHint(errors.New("plain")); got != 0 {
		t.Errorf("RetryAfterHint(plain) = %v, want 0", got)
	}
}

func TestTransportErrorsRetryable(t *testing.T) {
	if !IsConnection(NewConnectionError(errors.New("refused"))) {
		t.Error("expected a connection error")
	}
	if !IsRetryable(NewConnectionError(errors.New("refused"))) {
		t.Error("connection errors are retryable")
	}
	if IsRetryable(NewValidationError("bad")) {
		t.Error("validation errors are not retryable")
	}
}
