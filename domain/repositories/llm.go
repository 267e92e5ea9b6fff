package repositories

import (
	"context"

	"github.com/parleyvoice/parley/internal/session"
)

// Responder abstracts the conversational AI backend. It consumes one WAV
// recording together with the session's instructions and history and
// returns the assistant's reply text.
type Responder interface {
	Respond(ctx context.Context, wavAudio []byte, instructions session.Instructions, history []session.Turn) (string, error)
}
