package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all server configuration.
type Config struct {
	Port            string
	SecretKey       string // signs session credentials
	AIBackend       string // "gemini" or "mock"
	GeminiAPIKey    string
	GeminiModel     string
	TTSBackend      string // "google", "elevenlabs" or "mock"
	PlaybackCommand string // external playback command; empty disables playback
	StaticDir       string
}

// Load reads configuration from environment variables, with an optional
// .env file.
func Load() (*Config, error) {
	// Load .env file if it exists (doesn't error if missing).
	_ = godotenv.Load()

	cfg := &Config{
		Port:        "8000",
		AIBackend:   "gemini",
		GeminiModel: "gemini-2.0-flash",
		TTSBackend:  "google",
		StaticDir:   "static",
	}

	cfg.SecretKey = os.Getenv("SECRET_KEY")
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY environment variable is required")
	}

	if backend := os.Getenv("AI_BACKEND"); backend != "" {
		switch backend {
		case "gemini", "mock":
			cfg.AIBackend = backend
		default:
			return nil, fmt.Errorf("invalid AI_BACKEND: must be 'gemini' or 'mock'")
		}
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.AIBackend == "gemini" && cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.GeminiModel = model
	}

	if backend := os.Getenv("TTS_BACKEND"); backend != "" {
		switch backend {
		case "google", "elevenlabs", "mock":
			cfg.TTSBackend = backend
		default:
			return nil, fmt.Errorf("invalid TTS_BACKEND: must be 'google', 'elevenlabs' or 'mock'")
		}
	}

	cfg.PlaybackCommand = os.Getenv("PLAYBACK_COMMAND")

	if dir := os.Getenv("STATIC_DIR"); dir != "" {
		cfg.StaticDir = dir
	}

	return cfg, nil
}
