package transcribe

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/skillsenselab/radscribe/errors"
	"github.com/skillsenselab/radscribe/logger"
)

// Registry resolves model variants by tag, loading each one lazily on first
// request and caching it for the process lifetime. There is no eviction; the
// working set is bounded by the enumerated tag set.
//
// Concurrency contract: at most one load per tag is in flight at a time.
// Concurrent resolvers of the same unloaded tag wait on the in-flight load
// instead of issuing a second one. Distinct tags load independently, and
// reads of already-loaded models never block each other.
type Registry struct {
	loader Loader
	log    *logger.Logger

	mu      sync.Mutex
	entries map[Tag]*loadEntry
}

// loadEntry tracks one load attempt. done is closed when the attempt
// finishes; model and err must only be read after that.
type loadEntry struct {
	done  chan struct{}
	model Model
	err   error
}

// NewRegistry creates a Registry that instantiates models via loader.
func NewRegistry(loader Loader) *Registry {
	return &Registry{
		loader:  loader,
		log:     logger.WithComponent("registry"),
		entries: make(map[Tag]*loadEntry),
	}
}

// Resolve returns the model for tag, loading it on first request. Unknown
// tags are rejected before any load is attempted. A failed load is reported
// as LOAD_FAILURE and cleared from the registry so a later call may retry;
// other tags are unaffected.
func (r *Registry) Resolve(ctx context.Context, tag Tag) (Model, error) {
	if !IsKnown(tag) {
		return nil, apperrors.UnknownVariant(string(tag))
	}

	r.mu.Lock()
	if e, ok := r.entries[tag]; ok {
		r.mu.Unlock()
		select {
		case <-e.done:
			return e.model, e.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	e := &loadEntry{done: make(chan struct{})}
	r.entries[tag] = e
	r.mu.Unlock()

	start := time.Now()
	model, err := r.loader.Load(ctx, tag)
	if err != nil {
		e.err = apperrors.LoadFailure(string(tag), err)
		// Clear the failed entry so the tag can be retried.
		r.mu.Lock()
		delete(r.entries, tag)
		r.mu.Unlock()
		r.log.Warn("model load failed", map[string]interface{}{
			logger.FieldModelTag: string(tag),
			logger.FieldError:    err.Error(),
		})
		close(e.done)
		return nil, e.err
	}

	e.model = model
	close(e.done)
	r.log.Info("model loaded", map[string]interface{}{
		logger.FieldModelTag: string(tag),
		logger.FieldDuration: time.Since(start).Milliseconds(),
	})
	return model, nil
}

// Loaded returns the tags whose models are currently cached, smallest first.
func (r *Registry) Loaded() []Tag {
	r.mu.Lock()
	defer r.mu.Unlock()
	var tags []Tag
	for _, tag := range knownTags {
		if e, ok := r.entries[tag]; ok {
			select {
			case <-e.done:
				if e.err == nil {
					tags = append(tags, tag)
				}
			default:
			}
		}
	}
	return tags
}
