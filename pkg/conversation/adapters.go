package conversation

import (
	"FarmHelp/pkg/nlp"
	"context"
)

// Transcript is one finalized recognition result handed to the engine.
// Interim transcripts are a UI concern and never reach the core.
type Transcript struct {
	Text     string
	Language nlp.Language
	Final    bool
}

// RecognitionSource delivers transcripts. Cancellation is honored by the
// caller discarding anything that arrives after Stop; the engine itself
// needs no cancellation signal.
type RecognitionSource interface {
	Start(ctx context.Context) (<-chan Transcript, error)
	Stop()
	PermissionState() PermissionState
}

// SynthesisSink speaks a response. Failures are non-fatal and swallowed by
// callers.
type SynthesisSink interface {
	Speak(ctx context.Context, text string, language nlp.Language, settings VoiceSettings) error
	Cancel()
	IsSpeaking() bool
}

// Navigator receives route directives; routing itself is outside the core.
type Navigator interface {
	Navigate(route string)
}
