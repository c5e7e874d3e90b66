package transcribe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/skillsenselab/radscribe/errors"
	"github.com/skillsenselab/radscribe/logger"
)

const instrumentationName = "github.com/skillsenselab/radscribe/transcribe"

// Orchestrator receives one audio clip and a requested set of model tags,
// fans out to per-model transcriptions, and assembles an ordered comparison
// report. By default the per-model runs execute concurrently (one goroutine
// per requested tag, joined before returning) for better wall-clock
// comparison fidelity; sequential execution can be forced via
// WithSequential.
type Orchestrator struct {
	registry   *Registry
	worker     *Worker
	sequential bool
	log        *logger.Logger

	tracer      trace.Tracer
	runCounter  metric.Int64Counter
	latencyHist metric.Float64Histogram
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithSequential forces per-model runs to execute one at a time in requested
// order. Useful on hosts where the variants compete for memory.
func WithSequential(sequential bool) OrchestratorOption {
	return func(o *Orchestrator) { o.sequential = sequential }
}

// WithWorker replaces the default worker.
func WithWorker(w *Worker) OrchestratorOption {
	return func(o *Orchestrator) { o.worker = w }
}

// NewOrchestrator creates an Orchestrator resolving models via registry.
func NewOrchestrator(registry *Registry, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		registry: registry,
		worker:   NewWorker(),
		log:      logger.WithComponent("orchestrator"),
		tracer:   otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(o)
	}

	meter := otel.Meter(instrumentationName)
	var err error
	o.runCounter, err = meter.Int64Counter("radscribe.transcriptions",
		metric.WithDescription("Completed per-model transcription runs"))
	if err != nil {
		o.log.Warn("metric setup failed", logger.ErrorFields("transcriptions counter", err))
	}
	o.latencyHist, err = meter.Float64Histogram("radscribe.transcription.duration",
		metric.WithDescription("Per-model inference wall-clock time"),
		metric.WithUnit("ms"))
	if err != nil {
		o.log.Warn("metric setup failed", logger.ErrorFields("duration histogram", err))
	}
	return o
}

// Compare transcribes audio with every requested tag and returns an ordered
// report: one entry per tag, in the caller's order, regardless of completion
// order. Per-model failures (load or inference) become failure entries; only
// wholly invalid requests and comparisons where no variant resolves return
// an error, in which case no report is produced.
func (o *Orchestrator) Compare(ctx context.Context, audio AudioInput, tags []Tag) (*Report, error) {
	if err := validateTags(tags); err != nil {
		return nil, err
	}

	ctx, span := o.tracer.Start(ctx, "transcribe.compare",
		trace.WithAttributes(
			attribute.Int("radscribe.models.requested", len(tags)),
			attribute.Int("radscribe.audio.bytes", len(audio.Data)),
		))
	defer span.End()

	start := time.Now()
	results := make([]Result, len(tags))
	resolved := 0

	// Resolve every tag first so AllBackendsUnavailable can be decided
	// before any inference work, then fan out the actual runs.
	models := make([]Model, len(tags))
	for i, tag := range tags {
		model, err := o.registry.Resolve(ctx, tag)
		if err != nil {
			results[i] = Result{
				Tag:           tag,
				Outcome:       OutcomeFailure,
				FailureReason: failureReason(err),
			}
			continue
		}
		models[i] = model
		resolved++
	}
	if resolved == 0 {
		span.RecordError(apperrors.AllBackendsUnavailable())
		return nil, apperrors.AllBackendsUnavailable()
	}

	if o.sequential {
		for i, tag := range tags {
			if models[i] == nil {
				continue
			}
			results[i] = o.timedRun(ctx, tag, models[i], audio)
		}
	} else {
		var wg sync.WaitGroup
		for i, tag := range tags {
			if models[i] == nil {
				continue
			}
			wg.Add(1)
			go func(i int, tag Tag) {
				defer wg.Done()
				results[i] = o.timedRun(ctx, tag, models[i], audio)
			}(i, tag)
		}
		wg.Wait()
	}

	report := &Report{
		Results: results,
		Elapsed: time.Since(start),
	}
	o.log.Info("comparison complete", map[string]interface{}{
		"models":             len(tags),
		"failures":           countFailures(results),
		logger.FieldDuration: report.Elapsed.Milliseconds(),
	})
	return report, nil
}

// timedRun wraps one worker invocation in a span and records metrics.
func (o *Orchestrator) timedRun(ctx context.Context, tag Tag, model Model, audio AudioInput) Result {
	ctx, span := o.tracer.Start(ctx, "transcribe.run",
		trace.WithAttributes(attribute.String("radscribe.model.tag", string(tag))))
	defer span.End()

	result := o.worker.Transcribe(ctx, tag, model, audio)

	attrs := metric.WithAttributes(
		attribute.String("model.tag", string(tag)),
		attribute.String("outcome", string(result.Outcome)),
	)
	if o.runCounter != nil {
		o.runCounter.Add(ctx, 1, attrs)
	}
	if o.latencyHist != nil {
		o.latencyHist.Record(ctx, float64(result.Elapsed.Milliseconds()), attrs)
	}
	if !result.Succeeded() {
		span.RecordError(fmt.Errorf("%s", result.FailureReason))
	}
	return result
}

// validateTags enforces the request contract: non-empty, distinct, and only
// recognized tags. A wholly invalid request produces no partial report.
func validateTags(tags []Tag) error {
	if len(tags) == 0 {
		return apperrors.InvalidRequest("at least one model tag is required")
	}
	seen := make(map[Tag]bool, len(tags))
	for _, tag := range tags {
		if !IsKnown(tag) {
			return apperrors.UnknownVariant(string(tag))
		}
		if seen[tag] {
			return apperrors.InvalidRequest(fmt.Sprintf("model tag %q requested more than once", tag))
		}
		seen[tag] = true
	}
	return nil
}

// failureReason prefers the AppError message over the raw error chain so
// report entries stay human-readable.
func failureReason(err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}

func countFailures(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Succeeded() {
			n++
		}
	}
	return n
}
