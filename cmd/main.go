package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/parleyvoice/parley/adapters/llm"
	"github.com/parleyvoice/parley/adapters/tts"
	"github.com/parleyvoice/parley/domain/repositories"
	"github.com/parleyvoice/parley/internal/api"
	"github.com/parleyvoice/parley/internal/audio"
	"github.com/parleyvoice/parley/internal/auth"
	"github.com/parleyvoice/parley/internal/config"
	"github.com/parleyvoice/parley/internal/websocket"
	"github.com/parleyvoice/parley/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	// Initialize backend adapters
	var responder repositories.Responder
	switch cfg.AIBackend {
	case "mock":
		responder = llm.NewMockResponder(logger)
	default:
		responder, err = llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Gemini", zap.Error(err))
		}
	}

	var synthesizer repositories.Synthesizer
	switch cfg.TTSBackend {
	case "elevenlabs":
		synthesizer, err = tts.NewElevenLabsTTS(tts.NewElevenLabsConfigFromEnv(), logger)
		if err != nil {
			logger.Fatal("Failed to initialize ElevenLabs TTS", zap.Error(err))
		}
	case "mock":
		synthesizer = tts.NewMockSynthesizer(logger)
	default:
		synthesizer, err = tts.NewGoogleTTS(ctx, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Google TTS", zap.Error(err))
		}
	}

	var player repositories.Player = audio.NopPlayer{}
	if cfg.PlaybackCommand != "" {
		player, err = audio.NewExecPlayer(cfg.PlaybackCommand, logger)
		if err != nil {
			logger.Fatal("Failed to initialize playback", zap.Error(err))
		}
	}

	// Initialize usecase services
	processor := usecase.NewTurnProcessor(responder, synthesizer, player, logger)
	issuer := auth.NewIssuer([]byte(cfg.SecretKey))
	handler := websocket.NewHandler(processor, issuer, logger)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Initialize API routes
	api.InitRoutes(e, handler, issuer, cfg.StaticDir, logger)

	// Start server in goroutine for graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.String("port", cfg.Port),
		zap.String("aiBackend", cfg.AIBackend),
		zap.String("ttsBackend", cfg.TTSBackend))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
