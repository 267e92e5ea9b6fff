package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "")
	t.Setenv("AI_BACKEND", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("TTS_BACKEND", "")
	t.Setenv("PLAYBACK_COMMAND", "")
	t.Setenv("STATIC_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.TTSBackend != "google" {
		t.Errorf("TTSBackend = %q, want google", cfg.TTSBackend)
	}
	if cfg.StaticDir != "static" {
		t.Errorf("StaticDir = %q, want static", cfg.StaticDir)
	}
}

func TestLoad_RequiresSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("GEMINI_API_KEY", "test-key")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail without SECRET_KEY")
	}
}

func TestLoad_RequiresGeminiKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("AI_BACKEND", "")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail without GEMINI_API_KEY")
	}
}

func TestLoad_MockAIBackendNeedsNoKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("AI_BACKEND", "mock")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AIBackend != "mock" {
		t.Errorf("AIBackend = %q, want mock", cfg.AIBackend)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "9000")
	t.Setenv("TTS_BACKEND", "elevenlabs")
	t.Setenv("PLAYBACK_COMMAND", "aplay -q")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.TTSBackend != "elevenlabs" {
		t.Errorf("TTSBackend = %q, want elevenlabs", cfg.TTSBackend)
	}
	if cfg.PlaybackCommand != "aplay -q" {
		t.Errorf("PlaybackCommand = %q", cfg.PlaybackCommand)
	}
}

func TestLoad_RejectsUnknownTTSBackend(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("TTS_BACKEND", "espeak")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject an unknown TTS_BACKEND")
	}
}
