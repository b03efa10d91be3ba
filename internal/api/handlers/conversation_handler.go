package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/insurebot/backend/internal/conversation"
	"github.com/insurebot/backend/internal/knowledge"
	"github.com/insurebot/backend/internal/metrics"
	"github.com/insurebot/backend/internal/speech"
	"github.com/insurebot/backend/internal/storage/models"
	"github.com/insurebot/backend/internal/storage/sqlite"
	"github.com/insurebot/backend/pkg/logger"
)

// ConversationHandler owns the live session engine. Resetting the
// session builds a fresh engine over the same shared knowledge store
// and searcher.
type ConversationHandler struct {
	mu       sync.Mutex
	store    *knowledge.Store
	searcher conversation.KnowledgeSearcher
	engine   *conversation.Engine
	synth    speech.Synthesizer
	db       *sqlite.Client // optional, reporting only
}

func NewConversationHandler(store *knowledge.Store, searcher conversation.KnowledgeSearcher, synth speech.Synthesizer, db *sqlite.Client) *ConversationHandler {
	return &ConversationHandler{
		store:    store,
		searcher: searcher,
		engine:   conversation.NewEngine(store, searcher, nil),
		synth:    synth,
		db:       db,
	}
}

type converseOutcome struct {
	Result    conversation.Result
	Profile   conversation.UserProfile
	Context   string
	LatencyMS int
}

// converse runs one utterance through the engine and does the
// surrounding bookkeeping: metrics, history, speech output.
func (h *ConversationHandler) converse(text string) converseOutcome {
	h.mu.Lock()
	engine := h.engine
	h.mu.Unlock()

	start := time.Now()
	result := engine.Process(text)
	latency := int(time.Since(start).Milliseconds())

	metrics.ResponseDuration.Observe(time.Since(start).Seconds())
	metrics.MessagesTotal.WithLabelValues(string(result.Intent)).Inc()
	if result.Interrupted {
		metrics.InterruptionsTotal.Inc()
	}

	if h.db != nil {
		turn := &models.ConversationTurn{
			ID:          uuid.New().String(),
			SessionID:   engine.SessionID(),
			Utterance:   text,
			Intent:      string(result.Intent),
			Response:    result.Response,
			Interrupted: result.Interrupted,
			LatencyMS:   latency,
			CreatedAt:   time.Now(),
		}
		if err := h.db.InsertConversationTurn(turn); err != nil {
			logger.Warn("Failed to record conversation turn", zap.Error(err))
		}
	}

	if h.synth != nil {
		if err := speech.Speak(context.Background(), h.synth, result.Response, speech.SpeakOptions{Rate: 0.9, Volume: 0.8}); err != nil {
			logger.Warn("Speech output failed", zap.Error(err))
		}
	}

	return converseOutcome{
		Result:    result,
		Profile:   engine.Profile(),
		Context:   engine.Context(),
		LatencyMS: latency,
	}
}

func (h *ConversationHandler) reset() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine = conversation.NewEngine(h.store, h.searcher, nil)
	return h.engine.SessionID()
}

func (h *ConversationHandler) HandleMessage(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Text is required",
		})
	}

	outcome := h.converse(req.Text)

	return c.JSON(fiber.Map{
		"response":    outcome.Result.Response,
		"intent":      outcome.Result.Intent,
		"interrupted": outcome.Result.Interrupted,
		"profile":     outcome.Profile,
		"context":     outcome.Context,
		"latency_ms":  outcome.LatencyMS,
	})
}

func (h *ConversationHandler) GetProfile(c *fiber.Ctx) error {
	h.mu.Lock()
	engine := h.engine
	h.mu.Unlock()

	return c.JSON(fiber.Map{
		"profile": engine.Profile(),
	})
}

func (h *ConversationHandler) GetContext(c *fiber.Ctx) error {
	h.mu.Lock()
	engine := h.engine
	h.mu.Unlock()

	return c.JSON(fiber.Map{
		"context": engine.Context(),
	})
}

func (h *ConversationHandler) Reset(c *fiber.Ctx) error {
	sessionID := h.reset()
	logger.Info("Conversation session reset", zap.String("session_id", sessionID))

	return c.JSON(fiber.Map{
		"session_id": sessionID,
	})
}
