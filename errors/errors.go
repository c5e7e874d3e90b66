package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
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

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// UnknownVariant creates a new AppError for a model tag outside the
// enumerated variant set.
func UnknownVariant(tag string) *AppError {
	return &AppError{
		Code: ErrCodeUnknownVariant, Message: fmt.Sprintf("Unknown model variant %q.", tag),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"tag": tag},
	}
}

// InvalidRequest creates a new AppError for a malformed comparison request.
func InvalidRequest(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidRequest, Message: fmt.Sprintf("Invalid request: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// LoadFailure creates a new AppError for a model variant that failed to load.
func LoadFailure(tag string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeLoadFailure, Message: fmt.Sprintf("Model variant %q failed to load.", tag),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"tag": tag}, Cause: cause,
	}
}

// InferenceFailure creates a new AppError for a model that failed on the
// given audio.
func InferenceFailure(tag string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInferenceFailure, Message: fmt.Sprintf("Model variant %q failed to transcribe the audio.", tag),
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details: map[string]any{"tag": tag}, Cause: cause,
	}
}

// AllBackendsUnavailable creates a new AppError for a comparison in which
// every requested model variant failed to resolve.
func AllBackendsUnavailable() *AppError {
	return &AppError{
		Code: ErrCodeAllBackendsUnavailable, Message: "None of the requested model variants are available. Please try again.",
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
	}
}

// ServiceUnavailable creates a new AppError for a service that is temporarily unavailable.
func ServiceUnavailable(reason string) *AppError {
	if reason == "" {
		reason = "The service is temporarily unavailable. Please try again."
	}
	return &AppError{
		Code: ErrCodeServiceUnavailable, Message: reason,
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
	}
}

// NotConfigured creates a new AppError for a missing configuration value.
func NotConfigured(what string) *AppError {
	return &AppError{
		Code: ErrCodeNotConfigured, Message: fmt.Sprintf("%s is not configured.", what),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"setting": what},
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again or contact support.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
