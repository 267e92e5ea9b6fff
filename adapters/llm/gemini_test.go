package llm

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/parleyvoice/parley/internal/session"
)

func TestNewGemini_RequiresAPIKey(t *testing.T) {
	logger := zaptest.NewLogger(t)

	if _, err := NewGemini(context.Background(), "", "", logger); err == nil {
		t.Error("NewGemini should fail without an API key")
	}
}

func TestSystemPrompt(t *testing.T) {
	tests := []struct {
		name         string
		instructions session.Instructions
		wantParts    []string
	}{
		{
			name:         "base prompt only",
			instructions: session.Instructions{Repeat: 1},
			wantParts:    []string{"conversation partner"},
		},
		{
			name:         "guideline included",
			instructions: session.Instructions{Guideline: "use simple words", Repeat: 1},
			wantParts:    []string{"use simple words"},
		},
		{
			name:         "topic included",
			instructions: session.Instructions{Topic: "cooking", Repeat: 1},
			wantParts:    []string{"cooking"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := systemPrompt(tt.instructions)
			for _, part := range tt.wantParts {
				if !strings.Contains(prompt, part) {
					t.Errorf("prompt missing %q: %s", part, prompt)
				}
			}
		})
	}
}

func TestBuildContents(t *testing.T) {
	history := []session.Turn{
		{Role: session.RoleAssistant, Content: "Welcome!"},
		{Role: session.RoleAssistant, Content: "How are you?"},
	}

	contents := buildContents([]byte("RIFF..."), session.Instructions{Repeat: 1}, history)

	// System prompt + two history turns + the audio content.
	if len(contents) != 4 {
		t.Fatalf("contents length = %d, want 4", len(contents))
	}

	last := contents[len(contents)-1]
	var hasAudio bool
	for _, part := range last.Parts {
		if part.InlineData != nil && part.InlineData.MIMEType == "audio/wav" {
			hasAudio = true
		}
	}
	if !hasAudio {
		t.Error("final content should carry the WAV recording inline")
	}
}

func TestMockResponder(t *testing.T) {
	m := NewMockResponder(zaptest.NewLogger(t))

	reply, err := m.Respond(context.Background(), []byte("audio"), session.Instructions{Topic: "travel", Repeat: 1}, nil)
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if !strings.Contains(reply, "travel") {
		t.Errorf("reply = %q, want it to mention the topic", reply)
	}
}
