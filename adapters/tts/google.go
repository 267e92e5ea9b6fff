package tts

import (
	"context"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"go.uber.org/zap"

	"github.com/parleyvoice/parley/domain/repositories"
)

const speakingRate = 1.1

// GoogleTTS implements the Synthesizer interface using Google Cloud
// Text-to-Speech. Credentials come from the usual application-default
// credential chain.
type GoogleTTS struct {
	client *texttospeech.Client
	logger *zap.Logger
}

var _ repositories.Synthesizer = (*GoogleTTS)(nil)

// NewGoogleTTS creates a new Google Cloud TTS instance.
func NewGoogleTTS(ctx context.Context, logger *zap.Logger) (*GoogleTTS, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create text-to-speech client: %w", err)
	}
	return &GoogleTTS{client: client, logger: logger}, nil
}

// Synthesize converts text to LINEAR16 (WAV) speech.
func (g *GoogleTTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	response, err := g.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: "en-US",
			SsmlGender:   texttospeechpb.SsmlVoiceGender_NEUTRAL,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_LINEAR16,
			SpeakingRate:  speakingRate,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}

	g.logger.Info("Synthesized speech",
		zap.Int("textLength", len(text)),
		zap.Int("audioBytes", len(response.AudioContent)))

	return response.AudioContent, nil
}

// Close releases the underlying client connection.
func (g *GoogleTTS) Close() error {
	return g.client.Close()
}
