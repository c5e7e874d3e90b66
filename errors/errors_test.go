package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   ErrorCode
		wantStatus int
		wantRetry  bool
	}{
		{"unknown variant", UnknownVariant("huge"), ErrCodeUnknownVariant, http.StatusBadRequest, false},
		{"invalid request", InvalidRequest("no tags"), ErrCodeInvalidRequest, http.StatusBadRequest, false},
		{"load failure", LoadFailure("medium", stderrors.New("oom")), ErrCodeLoadFailure, http.StatusServiceUnavailable, true},
		{"inference failure", InferenceFailure("tiny", stderrors.New("bad audio")), ErrCodeInferenceFailure, http.StatusBadGateway, true},
		{"all backends unavailable", AllBackendsUnavailable(), ErrCodeAllBackendsUnavailable, http.StatusServiceUnavailable, true},
		{"not configured", NotConfigured("streaming key"), ErrCodeNotConfigured, http.StatusInternalServerError, false},
		{"internal", Internal(stderrors.New("boom")), ErrCodeInternal, http.StatusInternalServerError, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.wantCode {
				t.Errorf("code = %s, want %s", tc.err.Code, tc.wantCode)
			}
			if tc.err.HTTPStatus != tc.wantStatus {
				t.Errorf("status = %d, want %d", tc.err.HTTPStatus, tc.wantStatus)
			}
			if tc.err.Retryable != tc.wantRetry {
				t.Errorf("retryable = %v, want %v", tc.err.Retryable, tc.wantRetry)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := LoadFailure("large", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("compare: %w", UnknownVariant("huge"))
	if !HasCode(wrapped, ErrCodeUnknownVariant) {
		t.Error("expected HasCode to match through wrapping")
	}
	if HasCode(wrapped, ErrCodeLoadFailure) {
		t.Error("expected HasCode to reject a different code")
	}
	if HasCode(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("expected HasCode to reject plain errors")
	}
}

func TestToResponse(t *testing.T) {
	err := UnknownVariant("huge")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeUnknownVariant {
		t.Errorf("response code = %s, want %s", resp.Error.Code, ErrCodeUnknownVariant)
	}
	if resp.Error.Details["tag"] != "huge" {
		t.Errorf("response details tag = %v, want huge", resp.Error.Details["tag"])
	}
}
