package handlers

import (
	"strings"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/insurebot/backend/pkg/logger"
)

// WebSocketHandler streams conversation responses word by word, the
// same cadence a speech synthesizer would produce, and lets the client
// reset the session in-band.
type WebSocketHandler struct {
	conversations *ConversationHandler
}

func NewWebSocketHandler(conversations *ConversationHandler) *WebSocketHandler {
	return &WebSocketHandler{conversations: conversations}
}

func (h *WebSocketHandler) HandleConnection(c *websocket.Conn) {
	logger.Info("WebSocket connection established")

	defer func() {
		c.Close()
		logger.Info("WebSocket connection closed")
	}()

	for {
		var msg struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}

		if err := c.ReadJSON(&msg); err != nil {
			logger.Debug("WebSocket read ended", zap.Error(err))
			break
		}

		switch msg.Type {
		case "message":
			if strings.TrimSpace(msg.Text) == "" {
				h.sendError(c, "Text is required")
				continue
			}
			if err := h.streamResponse(c, msg.Text); err != nil {
				logger.Error("Failed to stream response", zap.Error(err))
				h.sendError(c, "Failed to process message")
			}
		case "reset":
			sessionID := h.conversations.reset()
			c.WriteJSON(map[string]interface{}{
				"type":       "reset",
				"session_id": sessionID,
			})
		}
	}
}

func (h *WebSocketHandler) streamResponse(c *websocket.Conn, text string) error {
	outcome := h.conversations.converse(text)

	words := strings.Fields(outcome.Result.Response)
	for i, word := range words {
		chunk := word
		if i < len(words)-1 {
			chunk += " "
		}
		if err := c.WriteJSON(map[string]interface{}{
			"type":    "chunk",
			"content": chunk,
		}); err != nil {
			return err
		}
	}

	return c.WriteJSON(map[string]interface{}{
		"type":        "complete",
		"intent":      outcome.Result.Intent,
		"interrupted": outcome.Result.Interrupted,
		"profile":     outcome.Profile,
		"context":     outcome.Context,
		"latency_ms":  outcome.LatencyMS,
	})
}

func (h *WebSocketHandler) sendError(c *websocket.Conn, errorMsg string) {
	c.WriteJSON(map[string]interface{}{
		"type":  "error",
		"error": errorMsg,
	})
}
