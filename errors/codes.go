package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Transport and availability errors (retryable)
const (
	// ErrCodeRequestFailed indicates the request never produced an HTTP status.
	ErrCodeRequestFailed ErrorCode = "REQUEST_FAILED"
	// ErrCodeRateLimited indicates the upstream API is throttling the caller.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeExternalService indicates the upstream API answered with an error status.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

// Account errors
const (
	// ErrCodeUnauthorized indicates the API key was rejected.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeQuotaExceeded indicates the account has run out of credits.
	ErrCodeQuotaExceeded ErrorCode = "QUOTA_EXCEEDED"
	// ErrCodeInvalidSignature indicates a webhook delivery failed signature checks.
	ErrCodeInvalidSignature ErrorCode = "INVALID_SIGNATURE"
	// ErrCodeForbidden indicates a valid credential without the needed scope.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidFormat indicates a payload could not be decoded.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	// ErrCodeNotFound indicates the requested resource does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeRequestFailed:   true,
	ErrCodeRateLimited:     true,
	ErrCodeExternalService: true,
	ErrCodeInternal:        false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
