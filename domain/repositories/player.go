package repositories

import "context"

// Player abstracts the local audio-output device. Play blocks until
// playback of the file at path completes.
type Player interface {
	Play(ctx context.Context, path string) error
}
