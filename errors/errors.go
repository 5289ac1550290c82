package errors

import (
	"cmp"
	"fmt"
	"net/http"
	"time"
)

// AppError is returned by handlers and rendered as the JSON error body.
// Cause stays server-side.
type AppError struct {
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	Retryable  bool           `json:"retryable"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New sets Retryable from the code.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

func (e *AppError) withRetryable(retryable bool) *AppError {
	e.Retryable = retryable
	return e
}

// RequestFailed wraps a transport failure talking to an upstream service.
func RequestFailed(service string, cause error) *AppError {
	return New(ErrCodeRequestFailed, fmt.Sprintf("Unable to reach %s. Please try again.", service), http.StatusBadGateway).
		WithDetail("service", service).
		WithCause(cause)
}

// RateLimited exposes a positive retryAfter as the retry_after_seconds
// detail.
func RateLimited(retryAfter time.Duration) *AppError {
	e := New(ErrCodeRateLimited, "Too many requests. Please wait a moment and try again.", http.StatusTooManyRequests)
	if retryAfter > 0 {
		e.WithDetail("retry_after_seconds", int(retryAfter.Seconds()))
	}
	return e
}

func Unauthorized(reason string) *AppError {
	return New(ErrCodeUnauthorized, cmp.Or(reason, "Authentication required."), http.StatusUnauthorized)
}

// Forbidden is for a valid credential that lacks a scope.
func Forbidden(reason string) *AppError {
	return New(ErrCodeForbidden, reason, http.StatusForbidden)
}

// QuotaExceeded is for an ElevenLabs account without credits.
func QuotaExceeded(reason string) *AppError {
	return New(ErrCodeQuotaExceeded, cmp.Or(reason, "Quota exceeded."), http.StatusPaymentRequired)
}

// InvalidSignature is for a webhook delivery that failed verification.
func InvalidSignature(reason string) *AppError {
	return New(ErrCodeInvalidSignature, reason, http.StatusUnauthorized)
}

func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message, http.StatusBadRequest)
}

func NotFound(resource, id string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s %q not found", resource, id), http.StatusNotFound)
}

// InvalidFormat is for a payload that could not be decoded.
func InvalidFormat(what string, cause error) *AppError {
	return New(ErrCodeInvalidFormat, fmt.Sprintf("Malformed %s.", what), http.StatusBadRequest).WithCause(cause)
}

// ExternalServiceError reports an error status from an upstream service.
// Only upstream 5xx are retryable.
func ExternalServiceError(service string, status int, cause error) *AppError {
	return New(ErrCodeExternalService, fmt.Sprintf("The %s service encountered an error.", service), http.StatusBadGateway).
		WithDetail("service", service).
		WithDetail("upstream_status", status).
		WithCause(cause).
		withRetryable(status >= 500)
}

func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.", http.StatusInternalServerError).WithCause(cause)
}
