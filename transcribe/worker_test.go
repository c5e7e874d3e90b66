package transcribe

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/skillsenselab/radscribe/errors"
)

func TestTranscribe_Success(t *testing.T) {
	w := NewWorker()
	model := ModelFunc(func(context.Context, AudioInput) (string, error) {
		time.Sleep(time.Millisecond)
		return "impression: no acute findings", nil
	})

	result := w.Transcribe(context.Background(), TagBase, model, AudioInput{Data: []byte("wav")})

	if !result.Succeeded() {
		t.Fatalf("outcome = %s, want success", result.Outcome)
	}
	if result.Tag != TagBase {
		t.Errorf("tag = %s, want base", result.Tag)
	}
	if result.Text != "impression: no acute findings" {
		t.Errorf("text = %q", result.Text)
	}
	if result.Elapsed <= 0 {
		t.Errorf("elapsed = %v, want > 0", result.Elapsed)
	}
	if result.FailureReason != "" {
		t.Errorf("failure reason = %q, want empty", result.FailureReason)
	}
}

func TestTranscribe_EmptyTranscriptIsSuccess(t *testing.T) {
	w := NewWorker()
	model := ModelFunc(func(context.Context, AudioInput) (string, error) {
		return "", nil // silent audio
	})

	result := w.Transcribe(context.Background(), TagTiny, model, AudioInput{})
	if !result.Succeeded() {
		t.Fatalf("outcome = %s, want success for empty transcript", result.Outcome)
	}
	if result.Text != "" {
		t.Errorf("text = %q, want empty", result.Text)
	}
}

func TestTranscribe_FailureIsCapturedWithDuration(t *testing.T) {
	w := NewWorker()
	model := ModelFunc(func(context.Context, AudioInput) (string, error) {
		time.Sleep(time.Millisecond)
		return "", errors.New("malformed audio header")
	})

	result := w.Transcribe(context.Background(), TagMedium, model, AudioInput{Data: []byte("junk")})

	if result.Succeeded() {
		t.Fatal("expected failure outcome")
	}
	if !strings.Contains(result.FailureReason, "malformed audio header") {
		t.Errorf("failure reason = %q, want the inference cause preserved", result.FailureReason)
	}
	if !strings.Contains(result.FailureReason, string(apperrors.ErrCodeInferenceFailure)) {
		t.Errorf("failure reason = %q, want it marked as an inference failure", result.FailureReason)
	}
	if result.Elapsed <= 0 {
		t.Errorf("elapsed = %v, want > 0 even on failure", result.Elapsed)
	}
}
