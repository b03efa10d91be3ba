package conversation

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/insurebot/backend/internal/knowledge"
	"github.com/insurebot/backend/internal/storage/models"
	"github.com/insurebot/backend/pkg/logger"
)

const (
	// contextWindow bounds the rolling conversation memory.
	contextWindow = 10
	// contextDisplay is how many recent entries the context view joins.
	contextDisplay = 3

	contextSeparator = " → "
)

// KnowledgeSearcher is the slice of the training pipeline the engine
// needs: confidence-ranked search over learned knowledge.
type KnowledgeSearcher interface {
	SearchKnowledge(query string) []models.ExtractedKnowledge
}

// learnedConfidenceFloor gates learned answers: below it the engine
// falls back to the static FAQ table.
const learnedConfidenceFloor = 70

// Result is the outcome of one processed message.
type Result struct {
	Response    string
	Intent      Intent
	Interrupted bool
}

// Engine turns one user utterance at a time into a response, keeping a
// bounded context and an evolving profile as it goes. One Engine is one
// session; rebuilding after a knowledge update means constructing a new
// Engine over the same shared store and searcher.
type Engine struct {
	mu         sync.Mutex
	sessionID  string
	store      *knowledge.Store
	searcher   KnowledgeSearcher
	classifier *Classifier
	profile    UserProfile
	context    []string
	pick       func(n int) int
}

// NewEngine builds a session engine. searcher may be nil (no learned
// knowledge yet); pick may be nil to use math/rand for canned response
// selection.
func NewEngine(store *knowledge.Store, searcher KnowledgeSearcher, pick func(n int) int) *Engine {
	if pick == nil {
		pick = rand.Intn
	}
	return &Engine{
		sessionID:  uuid.New().String(),
		store:      store,
		searcher:   searcher,
		classifier: NewClassifier(store),
		pick:       pick,
	}
}

func (e *Engine) SessionID() string {
	return e.sessionID
}

// ProcessMessage handles one utterance and returns the response text.
// It never fails; unmatched input degrades to the general fallback.
func (e *Engine) ProcessMessage(utterance string) string {
	return e.Process(utterance).Response
}

// Process is ProcessMessage plus the resolved intent, for callers that
// record history or metrics.
func (e *Engine) Process(utterance string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	normalized := strings.ToLower(strings.TrimSpace(utterance))

	e.context = append(e.context, normalized)
	if len(e.context) > contextWindow {
		e.context = e.context[len(e.context)-contextWindow:]
	}

	// Interruptions bypass extraction and classification entirely; the
	// profile must not change on this branch.
	if isInterruption(normalized) {
		logger.Debug("Interruption detected", zap.String("session_id", e.sessionID))
		return Result{
			Response:    interruptionResponse(normalized),
			Intent:      IntentGeneral,
			Interrupted: true,
		}
	}

	extractUserInfo(&e.profile, normalized)

	intent := e.classifier.Classify(normalized)
	response := e.generateResponse(intent, normalized)

	logger.Debug("Message processed",
		zap.String("session_id", e.sessionID),
		zap.String("intent", string(intent)),
	)

	return Result{Response: response, Intent: intent}
}

// Profile returns a defensive copy of the user profile.
func (e *Engine) Profile() UserProfile {
	e.mu.Lock()
	defer e.mu.Unlock()

	copied := e.profile
	copied.CurrentInsurance = append([]string(nil), e.profile.CurrentInsurance...)
	return copied
}

// Context joins the most recent context entries for display.
func (e *Engine) Context() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := len(e.context) - contextDisplay
	if start < 0 {
		start = 0
	}
	return strings.Join(e.context[start:], contextSeparator)
}

var interruptionPatterns = []string{
	"wait", "stop", "hold on", "excuse me", "sorry", "can you repeat",
	"i didn't understand", "what did you say", "pardon", "come again",
}

func isInterruption(utterance string) bool {
	for _, pattern := range interruptionPatterns {
		if strings.Contains(utterance, pattern) {
			return true
		}
	}
	return false
}

// interruptionResponse picks one of four canned branches by which
// sub-pattern matched: repeat request, pause request, confusion, or the
// generic acknowledgement.
func interruptionResponse(utterance string) string {
	switch {
	case strings.Contains(utterance, "repeat"),
		strings.Contains(utterance, "what did you say"),
		strings.Contains(utterance, "pardon"):
		return "I apologize for any confusion. Let me repeat that more clearly. What specific information about insurance would you like me to help you with today?"
	case strings.Contains(utterance, "wait"), strings.Contains(utterance, "hold on"):
		return "Of course, take your time. I'm here whenever you're ready to continue our conversation about insurance."
	case strings.Contains(utterance, "didn't understand"):
		return "I understand that insurance can be complex. Let me explain things more simply. What specific aspect would you like me to clarify?"
	default:
		return "No problem at all. How can I better assist you with your insurance needs?"
	}
}
