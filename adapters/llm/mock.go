package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/parleyvoice/parley/domain/repositories"
	"github.com/parleyvoice/parley/internal/session"
)

// MockResponder is a stand-in AI backend for local development and tests.
type MockResponder struct {
	logger *zap.Logger
}

var _ repositories.Responder = (*MockResponder)(nil)

// NewMockResponder creates a mock responder.
func NewMockResponder(logger *zap.Logger) *MockResponder {
	return &MockResponder{logger: logger}
}

// Respond returns a canned reply that reflects the active instructions.
func (m *MockResponder) Respond(ctx context.Context, wavAudio []byte, instructions session.Instructions, history []session.Turn) (string, error) {
	m.logger.Info("Mock responder invoked",
		zap.Int("audioBytes", len(wavAudio)),
		zap.Int("historyTurns", len(history)),
		zap.String("topic", instructions.Topic))

	if instructions.Topic != "" {
		return fmt.Sprintf("That's interesting! Tell me more about %s.", instructions.Topic), nil
	}
	return "That's interesting! Tell me more.", nil
}
