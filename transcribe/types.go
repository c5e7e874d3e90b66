package transcribe

import (
	"context"
	"time"

	apperrors "github.com/skillsenselab/radscribe/errors"
)

// Tag identifies a model variant by size class.
type Tag string

// The enumerated model variant set, ordered smallest to largest.
const (
	TagTiny   Tag = "tiny"
	TagBase   Tag = "base"
	TagSmall  Tag = "small"
	TagMedium Tag = "medium"
	TagLarge  Tag = "large"
)

var knownTags = []Tag{TagTiny, TagBase, TagSmall, TagMedium, TagLarge}

// KnownTags returns the enumerated variant set, smallest first.
func KnownTags() []Tag {
	tags := make([]Tag, len(knownTags))
	copy(tags, knownTags)
	return tags
}

// IsKnown reports whether tag is in the enumerated variant set.
func IsKnown(tag Tag) bool {
	for _, t := range knownTags {
		if t == tag {
			return true
		}
	}
	return false
}

// ParseTag converts a raw string into a Tag, rejecting anything outside the
// enumerated set.
func ParseTag(s string) (Tag, error) {
	tag := Tag(s)
	if !IsKnown(tag) {
		return "", apperrors.UnknownVariant(s)
	}
	return tag, nil
}

// AudioInput is one audio clip plus format metadata. It is immutable once
// received and lives only for the duration of a single comparison.
type AudioInput struct {
	Data        []byte
	Filename    string
	ContentType string
	SampleRate  int
}

// Outcome tells whether one model run produced a transcript.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Result is the outcome of running one model variant against one audio clip.
// Exactly one Result is produced per requested tag; it is immutable after
// creation.
type Result struct {
	// Tag is the model variant this result belongs to.
	Tag Tag
	// Text is the transcript. Empty string is a valid transcript for silent
	// audio; it is only meaningful when Outcome is OutcomeSuccess.
	Text string
	// Elapsed is the wall-clock time spent in model inference. Zero when the
	// variant never ran (resolution failure).
	Elapsed time.Duration
	// Outcome is success or failure.
	Outcome Outcome
	// FailureReason is the captured human-readable reason when Outcome is
	// OutcomeFailure.
	FailureReason string
}

// Succeeded reports whether the run produced a transcript.
func (r Result) Succeeded() bool { return r.Outcome == OutcomeSuccess }

// Report is an ordered comparison: one Result per requested tag, in the
// order the caller requested them, never completion order.
type Report struct {
	// Results holds one entry per requested tag.
	Results []Result
	// Elapsed is the total wall-clock time for the whole comparison.
	Elapsed time.Duration
}

// Model is the opaque inference capability every variant must satisfy:
// audio bytes in, transcript text out.
type Model interface {
	Infer(ctx context.Context, audio AudioInput) (string, error)
}

// Loader instantiates the model behind a tag. Loading may be slow; the
// Registry guarantees at most one Load is in flight per tag.
type Loader interface {
	Load(ctx context.Context, tag Tag) (Model, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(ctx context.Context, tag Tag) (Model, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, tag Tag) (Model, error) { return f(ctx, tag) }

// ModelFunc adapts a plain function to the Model interface.
type ModelFunc func(ctx context.Context, audio AudioInput) (string, error)

// Infer calls f.
func (f ModelFunc) Infer(ctx context.Context, audio AudioInput) (string, error) {
	return f(ctx, audio)
}
