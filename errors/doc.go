// Package errors provides unified error handling for the radscribe service.
// It implements structured error types with machine-readable codes, HTTP
// status mapping, and retryable detection following RFC 7807.
//
// Request-level failures (invalid tag lists, unknown variants, no usable
// backends) are returned as *AppError values and surface to the caller.
// Per-backend failures during a comparison never cross component boundaries
// as errors; they are captured into the comparison report instead.
package errors
