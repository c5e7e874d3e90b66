package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Comparison request errors
const (
	// ErrCodeUnknownVariant indicates a requested model tag is not in the
	// enumerated variant set.
	ErrCodeUnknownVariant ErrorCode = "UNKNOWN_VARIANT"
	// ErrCodeInvalidRequest indicates the comparison request is malformed
	// (empty or duplicate tag list, missing audio).
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeAllBackendsUnavailable indicates every requested model variant
	// failed to resolve, so no comparison could be produced.
	ErrCodeAllBackendsUnavailable ErrorCode = "ALL_BACKENDS_UNAVAILABLE"
)

// Backend errors
const (
	// ErrCodeLoadFailure indicates a model variant failed to instantiate.
	ErrCodeLoadFailure ErrorCode = "LOAD_FAILURE"
	// ErrCodeInferenceFailure indicates a model ran but failed on the given
	// audio. It is captured per report entry and never aborts a comparison.
	ErrCodeInferenceFailure ErrorCode = "INFERENCE_FAILURE"
)

// Service errors
const (
	// ErrCodeServiceUnavailable indicates the service is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeNotConfigured indicates a required configuration value is missing.
	ErrCodeNotConfigured ErrorCode = "NOT_CONFIGURED"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeLoadFailure:            true,
	ErrCodeAllBackendsUnavailable: true,
	ErrCodeServiceUnavailable:     true,
	ErrCodeInferenceFailure:       true,
	ErrCodeUnknownVariant:         false,
	ErrCodeInvalidRequest:         false,
	ErrCodeInternal:               false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
