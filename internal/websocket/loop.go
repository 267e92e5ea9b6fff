// Package websocket implements the per-connection session protocol: one
// bidirectional channel carrying instruction updates and binary audio
// payloads, with strict one-at-a-time turn processing.
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/parleyvoice/parley/internal/auth"
	"github.com/parleyvoice/parley/internal/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer. At the fixed capture format
	// (mono 16-bit 44100 Hz, ~86KB/s) this covers roughly three minutes of
	// speech in one recording.
	maxMessageSize = 16 * 1024 * 1024
)

const (
	csrfHeader = "X-CSRFToken"
	csrfCookie = "csrftoken"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The session credential, not the origin, gates the connection.
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Processor runs one conversation turn. Implemented by usecase.TurnProcessor.
type Processor interface {
	ProcessAudioTurn(ctx context.Context, rawAudio []byte, sess *session.Session) string
	SpeakText(ctx context.Context, text string, repeat int)
}

// Handler owns the protocol endpoint: it authenticates connections and runs
// the message loop, one goroutine per connection.
type Handler struct {
	processor Processor
	issuer    *auth.Issuer
	logger    *zap.Logger
}

// NewHandler creates the protocol endpoint handler.
func NewHandler(processor Processor, issuer *auth.Issuer, logger *zap.Logger) *Handler {
	return &Handler{
		processor: processor,
		issuer:    issuer,
		logger:    logger,
	}
}

// Handle upgrades the connection, validates the session credential and runs
// the message loop until the client disconnects.
func (h *Handler) Handle(c echo.Context) error {
	token := credentialFromRequest(c.Request())

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return err
	}
	defer conn.Close()

	// The close frame goes over the upgraded connection so the reason
	// string reaches the client.
	if token == "" {
		h.logger.Warn("Connection rejected: credential missing")
		h.closeWithPolicyViolation(conn, "session credential missing")
		return nil
	}
	if err := h.issuer.Validate(token); err != nil {
		h.logger.Warn("Connection rejected: credential invalid", zap.Error(err))
		h.closeWithPolicyViolation(conn, "session credential invalid")
		return nil
	}

	h.serve(c.Request().Context(), conn)
	return nil
}

// serve runs the welcome turn and then the read-dispatch-reply loop.
// Messages are processed strictly in arrival order, one at a time.
func (h *Handler) serve(ctx context.Context, conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)

	sess := session.New()

	sess.Append(session.RoleAssistant, welcomeText)
	h.processor.SpeakText(ctx, welcomeText, sess.Instructions().Repeat)
	if err := writeEvent(conn, Event{Speaker: SpeakerAssistant, Text: welcomeText}); err != nil {
		h.logger.Error("Failed to send welcome", zap.Error(err))
		return
	}

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			switch {
			case errors.Is(err, websocket.ErrReadLimit):
				// Gorilla has already sent the 1009 close frame, so no
				// error event can follow it on this connection.
				h.logger.Warn("Recording exceeds message size limit",
					zap.Int("limit", maxMessageSize))
			case websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived):
				h.logger.Error("WebSocket read error", zap.Error(err))
			default:
				h.logger.Info("Client disconnected")
			}
			return
		}

		if err := h.handleMessage(ctx, conn, sess, messageType, data); err != nil {
			h.logger.Error("Turn failed", zap.Error(err))
			if werr := writeEvent(conn, Event{Speaker: SpeakerError, Text: errorText}); werr != nil {
				h.logger.Warn("Connection unusable after failure", zap.Error(werr))
				return
			}
		}
	}
}

// handleMessage dispatches one client message: instruction updates mutate
// the session silently, everything else is an audio turn.
func (h *Handler) handleMessage(ctx context.Context, conn *websocket.Conn, sess *session.Session, messageType int, data []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("turn panicked: %v", r)
		}
	}()

	if messageType == websocket.TextMessage {
		if instr, ok := decodeInstruction(data); ok {
			if sess.Apply(instr.Type, instr.Text) {
				h.logger.Info("Instruction updated",
					zap.String("kind", instr.Type),
					zap.String("text", instr.Text))
			} else {
				// Parsed as JSON, so this is not audio either. The turn
				// produces no reply at all.
				h.logger.Warn("Ignoring unrecognized instruction",
					zap.String("kind", instr.Type))
			}
			return nil
		}
	}

	if err := writeEvent(conn, Event{Speaker: SpeakerUser, Text: audioPlaceholderText}); err != nil {
		return err
	}

	reply := h.processor.ProcessAudioTurn(ctx, data, sess)

	return writeEvent(conn, Event{Speaker: SpeakerAssistant, Text: reply})
}

func (h *Handler) closeWithPolicyViolation(conn *websocket.Conn, reason string) {
	message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	if err := conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeWait)); err != nil {
		h.logger.Warn("Failed to send close frame", zap.Error(err))
	}
}

func writeEvent(conn *websocket.Conn, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, payload)
}

func credentialFromRequest(r *http.Request) string {
	if token := r.Header.Get(csrfHeader); token != "" {
		return token
	}
	if cookie, err := r.Cookie(csrfCookie); err == nil {
		return cookie.Value
	}
	return ""
}
