// Package transcribe implements the multi-backend transcription comparison
// core: a lazy model registry, a timing worker, and a comparison
// orchestrator.
//
// One audio clip is dispatched to several speech-recognition model variants
// (tiny through large); each run is timed individually and failures are
// captured per entry, so a single bad backend never aborts the comparison.
//
//	reg := transcribe.NewRegistry(loader)
//	orch := transcribe.NewOrchestrator(reg)
//	report, err := orch.Compare(ctx, audio, []transcribe.Tag{transcribe.TagTiny, transcribe.TagBase})
//
// Concrete backends implement the Loader and Model interfaces; see
// transcribe/whisper for the faster-whisper sidecar backend.
package transcribe
