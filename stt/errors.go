package stt

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/kbukum/elevenlabs-stt/errors"
	"github.com/kbukum/elevenlabs-stt/httpclient"
)

// Kind classifies a speech-to-text failure. The set is closed.
type Kind int

const (
	// KindRequest is a transport failure before any status was received,
	// including timeouts and context cancellation.
	KindRequest Kind = iota
	// KindAPI is a non-2xx status without a more specific kind.
	KindAPI
	// KindParse is a 2xx response whose body did not decode.
	KindParse
	// KindAuthentication is a 401.
	KindAuthentication
	// KindRateLimit is a 429.
	KindRateLimit
	// KindQuotaExceeded is a 402.
	KindQuotaExceeded
	// KindValidation is caller input rejected before sending.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindAPI:
		return "api"
	case KindParse:
		return "parse"
	case KindAuthentication:
		return "authentication"
	case KindRateLimit:
		return "rate_limit"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Fixed messages for classified statuses. The response body is kept in
// Error.Body.
const (
	MessageInvalidAPIKey       = "Invalid API key"
	MessageTooManyRequests     = "Too many requests"
	MessageInsufficientCredits = "Insufficient credits"
)

// Error is the single error type returned by the client.
type Error struct {
	Kind Kind
	// StatusCode is the HTTP status, 0 when no response was received.
	StatusCode int
	// Message is the fixed text for classified statuses, the body text for
	// KindAPI and the cause text otherwise.
	Message string
	// RetryAfter is the server-requested wait for KindRateLimit. Zero means
	// the header was absent or unparseable.
	RetryAfter time.Duration
	// Body is the raw response body for status errors.
	Body []byte
	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindRequest:
		return "stt: request failed: " + e.Message
	case KindAPI:
		return fmt.Sprintf("stt: api error (%d): %s", e.StatusCode, e.Message)
	case KindParse:
		return "stt: failed to parse response: " + e.Message
	case KindAuthentication:
		return "stt: authentication failed: " + e.Message
	case KindRateLimit:
		if e.HasRetryAfter() {
			return fmt.Sprintf("stt: rate limit exceeded (retry in %s): %s", e.RetryAfter, e.Message)
		}
		return "stt: rate limit exceeded: " + e.Message
	case KindQuotaExceeded:
		return "stt: quota exceeded: " + e.Message
	case KindValidation:
		return "stt: validation error: " + e.Message
	default:
		return "stt: " + e.Message
	}
}

func (e *Error) Unwrap() error { return e.Err }

// HasRetryAfter reports whether the server sent a usable Retry-After.
func (e *Error) HasRetryAfter() bool { return e.RetryAfter > 0 }

// Retryable reports whether the same call may succeed later.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindRequest, KindRateLimit:
		return true
	case KindAPI:
		return e.StatusCode >= 500
	}
	return false
}

// AppError converts e into the shared application error so HTTP layers can
// render it as a problem response.
func (e *Error) AppError() *apperrors.AppError {
	const service = "ElevenLabs"
	switch e.Kind {
	case KindRequest:
		return apperrors.RequestFailed(service, e)
	case KindRateLimit:
		return apperrors.RateLimited(e.RetryAfter).WithCause(e)
	case KindAuthentication:
		return apperrors.Unauthorized(e.Message).WithCause(e)
	case KindQuotaExceeded:
		return apperrors.QuotaExceeded(e.Message).WithCause(e)
	case KindValidation:
		if appErr, ok := apperrors.AsAppError(e.Err); ok {
			return appErr
		}
		return apperrors.Validation(e.Message).WithCause(e)
	case KindParse:
		appErr := apperrors.InvalidFormat("transcription response", e)
		appErr.HTTPStatus = http.StatusBadGateway
		return appErr
	default:
		return apperrors.ExternalServiceError(service, e.StatusCode, e)
	}
}

// ClassifyStatus maps an HTTP status to an error. It returns nil for 2xx.
// 401, 402 and 429 get fixed messages regardless of the body; every other
// status is KindAPI carrying the body text.
func ClassifyStatus(status int, body []byte, header http.Header) *Error {
	if status >= 200 && status < 300 {
		return nil
	}

	e := &Error{StatusCode: status, Body: body}
	switch status {
	case http.StatusUnauthorized:
		e.Kind = KindAuthentication
		e.Message = MessageInvalidAPIKey
	case http.StatusTooManyRequests:
		e.Kind = KindRateLimit
		e.Message = MessageTooManyRequests
		e.RetryAfter, _ = httpclient.ParseRetryAfter(header.Get("Retry-After"), time.Now())
	case http.StatusPaymentRequired:
		e.Kind = KindQuotaExceeded
		e.Message = MessageInsufficientCredits
	default:
		e.Kind = KindAPI
		e.Message = string(body)
	}
	return e
}

// fromTransport converts an httpclient failure. Status errors go through
// ClassifyStatus; everything else is KindRequest.
func fromTransport(err error) *Error {
	var herr *httpclient.Error
	if errors.As(err, &herr) && herr.StatusCode > 0 {
		header := make(http.Header, len(herr.Headers))
		for k, v := range herr.Headers {
			header.Set(k, v)
		}
		e := ClassifyStatus(herr.StatusCode, herr.Body, header)
		e.Err = herr
		return e
	}
	return &Error{Kind: KindRequest, Message: err.Error(), Err: err}
}

func parseError(err error) *Error {
	return &Error{Kind: KindParse, Message: err.Error(), Err: err}
}

// KindOf returns the kind of a client error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func isKind(err error, k Kind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}

func IsRequest(err error) bool        { return isKind(err, KindRequest) }
func IsAPI(err error) bool            { return isKind(err, KindAPI) }
func IsParse(err error) bool          { return isKind(err, KindParse) }
func IsAuthentication(err error) bool { return isKind(err, KindAuthentication) }
func IsRateLimit(err error) bool      { return isKind(err, KindRateLimit) }
func IsQuotaExceeded(err error) bool  { return isKind(err, KindQuotaExceeded) }
func IsValidation(err error) bool     { return isKind(err, KindValidation) }

// RetryAfter returns the Retry-After hint carried by a rate-limit error.
func RetryAfter(err error) (time.Duration, bool) {
	var e *Error
	if errors.As(err, &e) && e.HasRetryAfter() {
		return e.RetryAfter, true
	}
	return 0, false
}
