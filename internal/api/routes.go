package api

import (
	"bytes"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/parleyvoice/parley/internal/auth"
	"github.com/parleyvoice/parley/internal/websocket"
)

// InitRoutes initializes all HTTP routes.
func InitRoutes(e *echo.Echo, handler *websocket.Handler, issuer *auth.Issuer, staticDir string, logger *zap.Logger) {
	// Health check
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "parley-server",
		})
	})

	// Main page: serves the client and issues a fresh session credential.
	e.GET("/", func(c echo.Context) error {
		return index(c, issuer, staticDir, logger)
	})

	// Client script bundle
	e.Static("/static", staticDir)

	// Session protocol endpoint
	e.GET("/ws", handler.Handle)
}

type indexContext struct {
	CSRFToken string
}

func index(c echo.Context, issuer *auth.Issuer, staticDir string, logger *zap.Logger) error {
	token, err := issuer.Generate()
	if err != nil {
		logger.Error("Failed to issue session credential", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "token_generation_failed",
			Message: "Failed to issue session credential",
		})
	}

	tmpl, err := template.ParseFiles(filepath.Join(staticDir, "index.html"))
	if err != nil {
		logger.Error("Failed to parse index template", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "template_error",
			Message: "Failed to render page",
		})
	}

	var page bytes.Buffer
	if err := tmpl.Execute(&page, indexContext{CSRFToken: token}); err != nil {
		logger.Error("Failed to render index template", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "template_error",
			Message: "Failed to render page",
		})
	}

	c.SetCookie(&http.Cookie{
		Name:    "csrftoken",
		Value:   token,
		Path:    "/",
		Expires: time.Now().Add(auth.TokenTTL),
	})

	return c.HTMLBlob(http.StatusOK, page.Bytes())
}
