package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/parleyvoice/parley/domain/repositories"
	"github.com/parleyvoice/parley/internal/session"
)

const (
	defaultModel    = "gemini-2.0-flash"
	responseTimeout = 30 * time.Second
	maxOutputTokens = 512
)

const basePrompt = "You are a friendly English conversation partner helping a learner " +
	"practice spoken English. Listen to the learner's recording and answer with a short, " +
	"natural conversational reply. Gently rephrase mistakes instead of correcting them outright."

// Gemini implements the Responder interface using Google's Gemini API. The
// learner's recording is attached inline as a WAV part.
type Gemini struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

var _ repositories.Responder = (*Gemini)(nil)

// NewGemini creates a new Gemini responder.
func NewGemini(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if model == "" {
		model = defaultModel
		logger.Info("Using default model", zap.String("model", model))
	}

	return &Gemini{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Respond sends the recording with the session's instructions and history
// and returns the model's reply text.
func (g *Gemini) Respond(ctx context.Context, wavAudio []byte, instructions session.Instructions, history []session.Turn) (string, error) {
	contents := buildContents(wavAudio, instructions, history)

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		MaxOutputTokens: maxOutputTokens,
	}

	ctx, cancel := context.WithTimeout(ctx, responseTimeout)
	defer cancel()

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var reply strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			reply.WriteString(part.Text)
		}
	}
	if reply.Len() == 0 {
		return "", fmt.Errorf("empty reply from model")
	}

	g.logger.Info("Generated reply",
		zap.String("model", g.model),
		zap.Int("historyTurns", len(history)),
		zap.Int("replyLength", reply.Len()))

	return reply.String(), nil
}

func buildContents(wavAudio []byte, instructions session.Instructions, history []session.Turn) []*genai.Content {
	var contents []*genai.Content

	contents = append(contents, genai.NewContentFromText(systemPrompt(instructions), genai.RoleUser))

	for _, turn := range history {
		role := genai.Role(genai.RoleUser)
		if turn.Role == session.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}

	parts := []*genai.Part{
		genai.NewPartFromText("The learner's spoken recording follows. Reply with your next conversational line."),
		genai.NewPartFromBytes(wavAudio, "audio/wav"),
	}
	contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))

	return contents
}

func systemPrompt(instructions session.Instructions) string {
	prompt := basePrompt
	if instructions.Guideline != "" {
		prompt += "\nGuideline from the learner: " + instructions.Guideline
	}
	if instructions.Topic != "" {
		prompt += "\nCurrent conversation topic: " + instructions.Topic
	}
	return prompt
}
