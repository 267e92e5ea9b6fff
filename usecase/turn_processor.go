package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parleyvoice/parley/domain/repositories"
	"github.com/parleyvoice/parley/internal/audio"
	"github.com/parleyvoice/parley/internal/session"
)

// FallbackReply is what the client hears when the AI backend fails. A turn
// always yields a reply; backend failures never propagate.
const FallbackReply = "Sorry, I encountered an error while processing your request."

// TurnProcessor orchestrates one conversation turn: wrap the recording,
// ask the AI backend for a reply, record it in the session and speak it.
type TurnProcessor struct {
	responder   repositories.Responder
	synthesizer repositories.Synthesizer
	player      repositories.Player
	logger      *zap.Logger
}

// NewTurnProcessor creates a new turn processor.
func NewTurnProcessor(
	responder repositories.Responder,
	synthesizer repositories.Synthesizer,
	player repositories.Player,
	logger *zap.Logger,
) *TurnProcessor {
	return &TurnProcessor{
		responder:   responder,
		synthesizer: synthesizer,
		player:      player,
		logger:      logger,
	}
}

// ProcessAudioTurn turns one raw PCM recording into a reply. It always
// returns a non-empty reply: codec or backend failures are absorbed into
// the fallback text. The reply is appended to the session history as an
// assistant turn and spoken through the synthesizer.
func (p *TurnProcessor) ProcessAudioTurn(ctx context.Context, rawAudio []byte, sess *session.Session) string {
	reply := FallbackReply

	container, err := audio.WrapPCM(rawAudio)
	if err != nil {
		p.logger.Error("Failed to wrap audio payload", zap.Error(err))
	} else {
		text, err := p.responder.Respond(ctx, container, sess.Instructions(), sess.History())
		if err != nil {
			p.logger.Error("AI backend failed", zap.Error(err))
		} else if strings.TrimSpace(text) != "" {
			reply = text
		} else {
			p.logger.Warn("AI backend returned empty reply")
		}
	}

	sess.Append(session.RoleAssistant, reply)

	p.SpeakText(ctx, reply, sess.Instructions().Repeat)

	return reply
}

// SpeakText synthesizes text and plays it back repeat times sequentially,
// blocking until each playback completes. Failures are logged and swallowed;
// they never block or fail the turn's text reply.
func (p *TurnProcessor) SpeakText(ctx context.Context, text string, repeat int) {
	speech, err := p.synthesizer.Synthesize(ctx, text)
	if err != nil {
		p.logger.Error("Speech synthesis failed", zap.Error(err))
		return
	}

	path, err := writeSpeechFile(speech)
	if err != nil {
		p.logger.Error("Failed to write synthesized speech", zap.Error(err))
		return
	}
	defer os.Remove(path)

	if repeat < 1 {
		repeat = 1
	}
	for i := 0; i < repeat; i++ {
		if err := p.player.Play(ctx, path); err != nil {
			p.logger.Error("Playback failed",
				zap.Int("iteration", i+1),
				zap.Error(err))
			return
		}
	}

	p.logger.Debug("Spoke reply",
		zap.Int("repeat", repeat),
		zap.Int("audioBytes", len(speech)))
}

// writeSpeechFile persists synthesized audio to a uniquely named scratch
// file so concurrent turns never clobber each other.
func writeSpeechFile(speech []byte) (string, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("parley_reply_%s.wav", uuid.NewString()))
	if err := os.WriteFile(path, speech, 0o600); err != nil {
		return "", fmt.Errorf("write speech file: %w", err)
	}
	return path, nil
}
