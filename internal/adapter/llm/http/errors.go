package http

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the category of error that occurred.
type ErrorType int

const (
	ErrTypeAuthentication ErrorType = iota
	ErrTypeRateLimit
	ErrTypeServiceUnavailable
	ErrTypeServerError
	ErrTypeInvalidRequest
	ErrTypeTimeout
	ErrTypeModelNotFound
	ErrTypeContentFiltered
	ErrTypeQuotaExhausted
	ErrTypeUnsupportedCapability
	ErrTypeUnknown
)

// String returns a human-readable description of the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrTypeAuthentication:
		return "authentication error"
	case ErrTypeRateLimit:
		return "rate limit exceeded"
	case ErrTypeServiceUnavailable:
		return "service unavailable"
	case ErrTypeServerError:
		return "server error"
	case ErrTypeInvalidRequest:
		return "invalid request"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeModelNotFound:
		return "model not found"
	case ErrTypeContentFiltered:
		return "content filtered"
	case ErrTypeQuotaExhausted:
		return "quota exhausted"
	case ErrTypeUnsupportedCapability:
		return "unsupported capability"
	default:
		return "unknown error"
	}
}

// Error represents a provider call failure with classification context.
// Retryable marks errors worth re-attempting in place with backoff.
// Quota exhaustion is deliberately NOT retryable (backoff will not
// refill a quota) but it IS fallback-eligible.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Retryable  bool
	Provider   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s (status: %d)", e.Provider, e.Type.String(), e.Message, e.StatusCode)
}

// Is implements error equality checking for errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// IsRetryable returns true if the error should be re-attempted in place.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}

// IsFallbackEligible reports whether switching to the fallback provider
// could plausibly recover: transient failures and quota exhaustion
// qualify; malformed requests and auth failures do not.
func (e *Error) IsFallbackEligible() bool {
	switch e.Type {
	case ErrTypeRateLimit, ErrTypeServiceUnavailable, ErrTypeServerError,
		ErrTypeTimeout, ErrTypeQuotaExhausted:
		return true
	default:
		return false
	}
}

// quotaKeywords is the message heuristic for quota exhaustion. Provider
// error text is not contractual; this list is the single place to
// revisit when upstream wording changes.
var quotaKeywords = []string{
	"quota",
	"resource_exhausted",
	"resource has been exhausted",
	"billing",
	"exceeded your current",
}

func isQuotaMessage(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range quotaKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Classify maps an HTTP status code and provider error message to a
// typed *Error. This is the only place status codes and message
// keywords are interpreted; everything downstream matches on Type.
func Classify(provider string, statusCode int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("HTTP %d", statusCode)
	}

	if isQuotaMessage(message) {
		return &Error{
			Type:       ErrTypeQuotaExhausted,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  false,
			Provider:   provider,
		}
	}

	switch statusCode {
	case 401, 403:
		return &Error{Type: ErrTypeAuthentication, Message: message, StatusCode: statusCode, Retryable: false, Provider: provider}
	case 429:
		return &Error{Type: ErrTypeRateLimit, Message: message, StatusCode: statusCode, Retryable: true, Provider: provider}
	case 400:
		return &Error{Type: ErrTypeInvalidRequest, Message: message, StatusCode: statusCode, Retryable: false, Provider: provider}
	case 404:
		return &Error{Type: ErrTypeModelNotFound, Message: message, StatusCode: statusCode, Retryable: false, Provider: provider}
	case 500:
		return &Error{Type: ErrTypeServerError, Message: message, StatusCode: statusCode, Retryable: true, Provider: provider}
	case 503:
		return &Error{Type: ErrTypeServiceUnavailable, Message: message, StatusCode: statusCode, Retryable: true, Provider: provider}
	default:
		return &Error{Type: ErrTypeUnknown, Message: message, StatusCode: statusCode, Retryable: false, Provider: provider}
	}
}

// ShouldFallBack reports whether err justifies replaying the request on
// the fallback provider. Non-*Error failures never do.
func ShouldFallBack(err error) bool {
	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr.IsFallbackEligible()
	}
	return false
}

// NewAuthenticationError creates a new authentication error.
func NewAuthenticationError(provider, message string) *Error {
	return &Error{
		Type:       ErrTypeAuthentication,
		Message:    message,
		StatusCode: 401,
		Retryable:  false,
		Provider:   provider,
	}
}

// NewRateLimitError creates a new rate limit error.
func NewRateLimitError(provider, message string) *Error {
	return &Error{
		Type:       ErrTypeRateLimit,
		Message:    message,
		StatusCode: 429,
		Retryable:  true,
		Provider:   provider,
	}
}

// NewServiceUnavailableError creates a new service unavailable error.
func NewServiceUnavailableError(provider, message string) *Error {
	return &Error{
		Type:       ErrTypeServiceUnavailable,
		Message:    message,
		StatusCode: 503,
		Retryable:  true,
		Provider:   provider,
	}
}

// NewServerError creates a new internal server error.
func NewServerError(provider, message string) *Error {
	return &Error{
		Type:       ErrTypeServerError,
		Message:    message,
		StatusCode: 500,
		Retryable:  true,
		Provider:   provider,
	}
}

// NewInvalidRequestError creates a new invalid request error.
func NewInvalidRequestError(provider, message string) *Error {
	return &Error{
		Type:       ErrTypeInvalidRequest,
		Message:    message,
		StatusCode: 400,
		Retryable:  false,
		Provider:   provider,
	}
}

// NewTimeoutError creates a new timeout error.
func NewTimeoutError(provider, message string) *Error {
	return &Error{
		Type:      ErrTypeTimeout,
		Message:   message,
		Retryable: true,
		Provider:  provider,
	}
}

// NewQuotaExhaustedError creates a new quota exhaustion error.
func NewQuotaExhaustedError(provider, message string) *Error {
	return &Error{
		Type:       ErrTypeQuotaExhausted,
		Message:    message,
		StatusCode: 429,
		Retryable:  false,
		Provider:   provider,
	}
}

// NewContentFilteredError creates a new content filtered error.
func NewContentFilteredError(provider, message string) *Error {
	return &Error{
		Type:       ErrTypeContentFiltered,
		Message:    message,
		StatusCode: 400,
		Retryable:  false,
		Provider:   provider,
	}
}

// NewModelNotFoundError creates a new model not found error.
func NewModelNotFoundError(provider, message string) *Error {
	return &Error{
		Type:       ErrTypeModelNotFound,
		Message:    message,
		StatusCode: 404,
		Retryable:  false,
		Provider:   provider,
	}
}

// NewUnsupportedCapabilityError marks a request the provider cannot
// serve at all (e.g. image generation on the fallback provider).
func NewUnsupportedCapabilityError(provider, message string) *Error {
	return &Error{
		Type:      ErrTypeUnsupportedCapability,
		Message:   message,
		Retryable: false,
		Provider:  provider,
	}
}
