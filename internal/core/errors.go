// Package core provides the error taxonomy and the pure input validators
// shared by the provider clients, the orchestration service and the tools.
package core

import (
	"errors"
	"fmt"
)

// Kind classifies an error so callers can branch on the failure class
// instead of matching message text.
type Kind int

const (
	// KindUnknown marks errors produced outside this package.
	KindUnknown Kind = iota
	// KindValidation: the caller supplied an out-of-contract value. Always
	// raised before any network I/O and never retried.
	KindValidation
	// KindAuthentication: upstream rejected the credential.
	KindAuthentication
	// KindRateLimit: upstream throttling. A candidate for caller-driven
	// retry with backoff; this service never retries internally.
	KindRateLimit
	// KindContentPolicy: upstream safety rejection.
	KindContentPolicy
	// KindAPI: any other transport or protocol failure, including a 2xx
	// response that carried no image data.
	KindAPI
	// KindImageProcessing: local persistence or decoding failure.
	KindImageProcessing
	// KindConfiguration: fatal startup misconfiguration.
	KindConfiguration
)

// String returns the stable name reported as error_type in failure envelopes.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindAuthentication:
		return "AuthenticationError"
	case KindRateLimit:
		return "RateLimitError"
	case KindContentPolicy:
		return "ContentPolicyError"
	case KindAPI:
		return "APIError"
	case KindImageProcessing:
		return "ImageProcessingError"
	case KindConfiguration:
		return "ConfigurationError"
	default:
		return "Error"
	}
}

// Error is the single error type carried across component boundaries.
// StatusCode holds the upstream HTTP status when one was observed, zero
// otherwise.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the Kind from err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// StatusOf extracts the upstream status code from err, zero when absent.
func StatusOf(err error) int {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.StatusCode
	}
	return 0
}

// Validationf builds a validation error.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Authentication builds an authentication error carrying the upstream status.
func Authentication(message string, status int) *Error {
	return &Error{Kind: KindAuthentication, Message: message, StatusCode: status}
}

// RateLimit builds a throttling error carrying the upstream status.
func RateLimit(message string, status int) *Error {
	return &Error{Kind: KindRateLimit, Message: message, StatusCode: status}
}

// ContentPolicy builds a safety rejection error carrying the upstream status.
func ContentPolicy(message string, status int) *Error {
	return &Error{Kind: KindContentPolicy, Message: message, StatusCode: status}
}

// APIStatus builds an API error for a non-2xx upstream response.
func APIStatus(message string, status int) *Error {
	return &Error{Kind: KindAPI, Message: message, StatusCode: status}
}

// APIWrap builds an API error around a transport-level cause.
func APIWrap(message string, err error) *Error {
	return &Error{Kind: KindAPI, Message: message, Err: err}
}

// ImageProcessing builds a local image processing error around its cause.
func ImageProcessing(message string, err error) *Error {
	return &Error{Kind: KindImageProcessing, Message: message, Err: err}
}

// Configurationf builds a fatal configuration error.
func Configurationf(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}
