package repositories

import "context"

// Synthesizer abstracts the text-to-speech backend. It returns a complete
// audio container for the given text.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
