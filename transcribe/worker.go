package transcribe

import (
	"context"
	"time"

	apperrors "github.com/skillsenselab/radscribe/errors"
	"github.com/skillsenselab/radscribe/logger"
)

// Worker runs one model against one audio clip and measures the wall-clock
// cost of the inference call.
type Worker struct {
	log *logger.Logger
}

// NewWorker creates a transcription worker.
func NewWorker() *Worker {
	return &Worker{log: logger.WithComponent("worker")}
}

// Transcribe invokes model on audio and returns a Result. The timer brackets
// the inference call only: it starts immediately before Infer and stops
// immediately after, so failed attempts still report a duration.
//
// Inference errors never propagate; they are captured into the Result so one
// failing model cannot abort a comparison.
func (w *Worker) Transcribe(ctx context.Context, tag Tag, model Model, audio AudioInput) Result {
	start := time.Now()
	text, err := model.Infer(ctx, audio)
	elapsed := time.Since(start)

	if err != nil {
		failure := apperrors.InferenceFailure(string(tag), err)
		w.log.Warn("inference failed", map[string]interface{}{
			logger.FieldModelTag: string(tag),
			logger.FieldDuration: elapsed.Milliseconds(),
			logger.FieldError:    failure.Error(),
		})
		return Result{
			Tag:           tag,
			Elapsed:       elapsed,
			Outcome:       OutcomeFailure,
			FailureReason: failure.Error(),
		}
	}

	w.log.Debug("inference complete", map[string]interface{}{
		logger.FieldModelTag: string(tag),
		logger.FieldDuration: elapsed.Milliseconds(),
		"text_len":           len(text),
	})
	return Result{
		Tag:     tag,
		Text:    text,
		Elapsed: elapsed,
		Outcome: OutcomeSuccess,
	}
}
