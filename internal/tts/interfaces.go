package tts

import "context"

// Synthesizer converts one text chunk to synthesized audio bytes.
// Concrete implementations wrap remote services; the pipeline feeds chunks
// of at most MaxTextLength characters and preserves their order.
type Synthesizer interface {
	// Synthesize returns the audio for a single chunk in the given language.
	Synthesize(ctx context.Context, text, language string) ([]byte, error)

	// MaxTextLength returns the per-request character limit of the backend.
	MaxTextLength() int
}
