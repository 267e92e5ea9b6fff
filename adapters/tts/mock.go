package tts

import (
	"context"

	"go.uber.org/zap"

	"github.com/parleyvoice/parley/domain/repositories"
)

// MockSynthesizer is a stand-in speech backend for local development and
// tests. It returns a tiny fixed payload instead of real audio.
type MockSynthesizer struct {
	logger *zap.Logger
}

var _ repositories.Synthesizer = (*MockSynthesizer)(nil)

// NewMockSynthesizer creates a mock synthesizer.
func NewMockSynthesizer(logger *zap.Logger) *MockSynthesizer {
	return &MockSynthesizer{logger: logger}
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	m.logger.Info("Mock synthesizer invoked", zap.Int("textLength", len(text)))
	return []byte("mock-speech"), nil
}
