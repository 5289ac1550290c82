package stt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	apperrors "github.com/kbukum/elevenlabs-stt/errors"
	"github.com/kbukum/elevenlabs-stt/httpclient"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		retryAfter  string
		wantKind    Kind
		wantMessage string
		wantWait    time.Duration
	}{
		{name: "unauthorized", status: 401, body: `{"detail":"bad key"}`, wantKind: KindAuthentication, wantMessage: MessageInvalidAPIKey},
		{name: "payment required", status: 402, body: "no credits", wantKind: KindQuotaExceeded, wantMessage: MessageInsufficientCredits},
		{name: "rate limited", status: 429, body: "slow down", wantKind: KindRateLimit, wantMessage: MessageTooManyRequests},
		{name: "rate limited with hint", status: 429, body: "slow down", retryAfter: "7", wantKind: KindRateLimit, wantMessage: MessageTooManyRequests, wantWait: 7 * time.Second},
		{name: "rate limited with junk hint", status: 429, retryAfter: "soon", wantKind: KindRateLimit, wantMessage: MessageTooManyRequests},
		{name: "bad request", status: 400, body: `{"detail":"invalid model"}`, wantKind: KindAPI, wantMessage: `{"detail":"invalid model"}`},
		{name: "forbidden is generic", status: 403, body: "forbidden", wantKind: KindAPI, wantMessage: "forbidden"},
		{name: "unprocessable", status: 422, body: "bad field", wantKind: KindAPI, wantMessage: "bad field"},
		{name: "server error", status: 500, body: "boom", wantKind: KindAPI, wantMessage: "boom"},
		{name: "redirect", status: 302, body: "", wantKind: KindAPI, wantMessage: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.retryAfter != "" {
				header.Set("Retry-After", tt.retryAfter)
			}
			e := ClassifyStatus(tt.status, []byte(tt.body), header)
			if e == nil {
				t.Fatal("expected error")
			}
			if e.Kind != tt.wantKind {
				t.Errorf("expected kind %s, got %s", tt.wantKind, e.Kind)
			}
			if e.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, e.Message)
			}
			if e.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, e.StatusCode)
			}
			if string(e.Body) != tt.body {
				t.Errorf("expected body %q, got %q", tt.body, e.Body)
			}
			if e.RetryAfter != tt.wantWait {
				t.Errorf("expected retry after %s, got %s", tt.wantWait, e.RetryAfter)
			}
		})
	}
}

func TestClassifyStatus_Success(t *testing.T) {
	for _, status := range []int{200, 201, 204, 299} {
		if e := ClassifyStatus(status, nil, nil); e != nil {
			t.Errorf("status %d: expected nil, got %v", status, e)
		}
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: KindRequest, Message: "dial tcp: refused"}, "stt: request failed: dial tcp: refused"},
		{&Error{Kind: KindAPI, StatusCode: 500, Message: "boom"}, "stt: api error (500): boom"},
		{&Error{Kind: KindParse, Message: "unexpected EOF"}, "stt: failed to parse response: unexpected EOF"},
		{&Error{Kind: KindAuthentication, Message: MessageInvalidAPIKey}, "stt: authentication failed: Invalid API key"},
		{&Error{Kind: KindRateLimit, Message: MessageTooManyRequests}, "stt: rate limit exceeded: Too many requests"},
		{&Error{Kind: KindRateLimit, Message: MessageTooManyRequests, RetryAfter: 3 * time.Second}, "stt: rate limit exceeded (retry in 3s): Too many requests"},
		{&Error{Kind: KindQuotaExceeded, Message: MessageInsufficientCredits}, "stt: quota exceeded: Insufficient credits"},
		{&Error{Kind: KindValidation, Message: "seed: must be at least 0"}, "stt: validation error: seed: must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestError_Retryable(t *testing.T) {
	tests := []struct {
		err  *Error
		want bool
	}{
		{&Error{Kind: KindRequest}, true},
		{&Error{Kind: KindRateLimit, StatusCode: 429}, true},
		{&Error{Kind: KindAPI, StatusCode: 503}, true},
		{&Error{Kind: KindAPI, StatusCode: 400}, false},
		{&Error{Kind: KindAuthentication, StatusCode: 401}, false},
		{&Error{Kind: KindQuotaExceeded, StatusCode: 402}, false},
		{&Error{Kind: KindParse, StatusCode: 200}, false},
		{&Error{Kind: KindValidation}, false},
	}
	for _, tt := range tests {
		if got := tt.err.Retryable(); got != tt.want {
			t.Errorf("%s/%d: expected %v, got %v", tt.err.Kind, tt.err.StatusCode, tt.want, got)
		}
	}
}

func TestFromTransport(t *testing.T) {
	t.Run("status error", func(t *testing.T) {
		herr := httpclient.ClassifyStatusCode(429, []byte("slow down"), map[string]string{"Retry-After": "2"})
		e := fromTransport(fmt.Errorf("wrapped: %w", herr))
		if e.Kind != KindRateLimit {
			t.Fatalf("expected rate limit, got %s", e.Kind)
		}
		if e.RetryAfter != 2*time.Second {
			t.Errorf("expected 2s, got %s", e.RetryAfter)
		}
		if string(e.Body) != "slow down" {
			t.Errorf("expected body kept, got %q", e.Body)
		}
		if !errors.Is(e, herr) {
			t.Error("expected transport error in chain")
		}
	})

	t.Run("transport error", func(t *testing.T) {
		cause := httpclient.NewConnectionError(errors.New("connection refused"))
		e := fromTransport(cause)
		if e.Kind != KindRequest {
			t.Fatalf("expected request kind, got %s", e.Kind)
		}
		if e.StatusCode != 0 {
			t.Errorf("expected no status, got %d", e.StatusCode)
		}
		if !errors.Is(e, cause) {
			t.Error("expected cause in chain")
		}
	})

	t.Run("context error", func(t *testing.T) {
		e := fromTransport(context.DeadlineExceeded)
		if e.Kind != KindRequest || !errors.Is(e, context.DeadlineExceeded) {
			t.Errorf("expected request kind wrapping deadline, got %v", e)
		}
	})
}

func TestKindHelpers(t *testing.T) {
	err := fmt.Errorf("transcribe: %w", &Error{Kind: KindQuotaExceeded})
	if !IsQuotaExceeded(err) {
		t.Error("expected IsQuotaExceeded through wrapping")
	}
	if IsRateLimit(err) || IsAPI(err) || IsAuthentication(err) {
		t.Error("expected other helpers false")
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("expected KindOf false for foreign error")
	}

	wait, ok := RetryAfter(&Error{Kind: KindRateLimit, RetryAfter: time.Second})
	if !ok || wait != time.Second {
		t.Errorf("expected 1s hint, got %s %v", wait, ok)
	}
	if _, ok := RetryAfter(&Error{Kind: KindRateLimit}); ok {
		t.Error("expected no hint when absent")
	}
}

func TestError_AppError(t *testing.T) {
	tests := []struct {
		err        *Error
		wantCode   apperrors.ErrorCode
		wantStatus int
	}{
		{&Error{Kind: KindRequest, Message: "refused"}, apperrors.ErrCodeRequestFailed, http.StatusBadGateway},
		{&Error{Kind: KindRateLimit}, apperrors.ErrCodeRateLimited, http.StatusTooManyRequests},
		{&Error{Kind: KindAuthentication, Message: MessageInvalidAPIKey}, apperrors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{&Error{Kind: KindQuotaExceeded, Message: MessageInsufficientCredits}, apperrors.ErrCodeQuotaExceeded, http.StatusPaymentRequired},
		{&Error{Kind: KindValidation, Message: "bad"}, apperrors.ErrCodeInvalidInput, http.StatusBadRequest},
		{&Error{Kind: KindParse, Message: "eof"}, apperrors.ErrCodeInvalidFormat, http.StatusBadGateway},
		{&Error{Kind: KindAPI, StatusCode: 500, Message: "boom"}, apperrors.ErrCodeExternalService, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			appErr := tt.err.AppError()
			if appErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, appErr.Code)
			}
			if appErr.HTTPStatus != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, appErr.HTTPStatus)
			}
		})
	}
}
