package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeNetwork         = "NETWORK_FAILURE"
	ErrCodeTimeout         = "CRAWL_TIMEOUT"
	ErrCodeUpstream        = "UPSTREAM_STATUS"
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeInternal        = "INTERNAL_ERROR"

	// Insights collaborator error codes.
	ErrCodeLLMFailure     = "LLM_FAILURE"
	ErrCodeLLMAuthFailure = "LLM_AUTH_FAILURE"
	ErrCodeLLMRateLimited = "LLM_RATE_LIMITED"
)

// AuditError is the internal error type carrying an error code and, for
// upstream failures, the terminal HTTP status from the target site.
// It implements the error interface and supports wrapping via Unwrap.
type AuditError struct {
	Code           string
	Message        string
	UpstreamStatus int   // non-zero only for ErrCodeUpstream
	Err            error // wrapped original error
}

func (e *AuditError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AuditError) Unwrap() error {
	return e.Err
}

// NewAuditError creates a new AuditError.
func NewAuditError(code, message string, err error) *AuditError {
	return &AuditError{Code: code, Message: message, Err: err}
}

// NewUpstreamError creates an AuditError for a terminal non-2xx response,
// with a user-facing message differentiated by the status code.
func NewUpstreamError(status int) *AuditError {
	var msg string
	switch status {
	case 402:
		msg = "this site requires payment or subscription to access its content"
	case 403:
		msg = "this site appears to be blocking automated analysis"
	case 404:
		msg = "the page does not exist or has been moved"
	case 429:
		msg = "the target site is rate limiting requests, retry later"
	default:
		msg = fmt.Sprintf("the target site is temporarily unavailable (status %d)", status)
	}
	return &AuditError{Code: ErrCodeUpstream, Message: msg, UpstreamStatus: status}
}
