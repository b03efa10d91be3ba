package conversation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insurebot/backend/internal/knowledge"
	"github.com/insurebot/backend/internal/storage/models"
)

// pickFirst makes canned-response selection deterministic.
func pickFirst(int) int { return 0 }

func newTestEngine(searcher KnowledgeSearcher) *Engine {
	return NewEngine(knowledge.NewSeededStore(), searcher, pickFirst)
}

type fakeSearcher struct {
	results []models.ExtractedKnowledge
}

func (f *fakeSearcher) SearchKnowledge(string) []models.ExtractedKnowledge {
	return f.results
}

func TestProcessMessageAlwaysResponds(t *testing.T) {
	engine := newTestEngine(nil)

	inputs := []string{
		"hello",
		"tell me about life insurance",
		"what is a deductible",
		"how much does it cost",
		"please recommend something",
		"",
		"zzzz qqqq",
		"   ",
	}

	for _, input := range inputs {
		response := engine.ProcessMessage(input)
		assert.NotEmpty(t, response, "input %q must produce a response", input)
	}
}

func TestContextNeverExceedsWindow(t *testing.T) {
	engine := newTestEngine(nil)

	for i := 0; i < 25; i++ {
		engine.ProcessMessage(fmt.Sprintf("message number %d", i))
	}

	require.LessOrEqual(t, len(engine.context), contextWindow)

	// The view shows the most recent entries.
	view := engine.Context()
	assert.Contains(t, view, "message number 24")
	assert.Equal(t, 2, strings.Count(view, contextSeparator))
}

func TestContextViewJoinsLastThree(t *testing.T) {
	engine := newTestEngine(nil)

	engine.ProcessMessage("First")
	engine.ProcessMessage("Second")
	engine.ProcessMessage("Third")
	engine.ProcessMessage("Fourth")

	assert.Equal(t, "second → third → fourth", engine.Context())
}

func TestGreetingAsksForNameWhenUnknown(t *testing.T) {
	engine := newTestEngine(nil)

	response := engine.ProcessMessage("hello")

	assert.Contains(t, response, "May I know your name")
	assert.Equal(t, UserProfile{}, engine.Profile())
}

func TestGreetingUsesStoredName(t *testing.T) {
	engine := newTestEngine(nil)

	engine.ProcessMessage("my name is Priya")
	response := engine.ProcessMessage("hello")

	assert.Contains(t, response, "Hello Priya!")
	assert.NotContains(t, response, "May I know your name")
}

func TestNameExtraction(t *testing.T) {
	engine := newTestEngine(nil)

	engine.ProcessMessage("my name is John")

	assert.Equal(t, "John", engine.Profile().Name)
}

func TestInterruptionBranches(t *testing.T) {
	tests := []struct {
		utterance string
		fragment  string
	}{
		{"can you repeat that please", "Let me repeat that"},
		{"what did you say", "Let me repeat that"},
		{"pardon me", "Let me repeat that"},
		{"wait a moment", "take your time"},
		{"hold on please", "take your time"},
		{"i didn't understand that part", "explain things more simply"},
		{"stop for a second", "No problem at all"},
		{"excuse me", "No problem at all"},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			engine := newTestEngine(nil)
			result := engine.Process(tt.utterance)

			assert.True(t, result.Interrupted)
			assert.Contains(t, result.Response, tt.fragment)
		})
	}
}

func TestInterruptionSkipsProfileExtraction(t *testing.T) {
	engine := newTestEngine(nil)

	// "sorry" triggers the interruption branch, so the name mention
	// must not reach extraction.
	result := engine.Process("sorry, my name is john")

	require.True(t, result.Interrupted)
	assert.Empty(t, engine.Profile().Name)
}

func TestFAQPrefersConfidentLearnedKnowledge(t *testing.T) {
	searcher := &fakeSearcher{results: []models.ExtractedKnowledge{
		{
			Query:      "what is a deductible",
			Response:   "A deductible is what you pay before coverage starts, learned from real calls.",
			Category:   "general",
			Confidence: 90,
		},
	}}
	engine := newTestEngine(searcher)

	response := engine.ProcessMessage("what is a deductible")

	assert.Contains(t, response, "learned from real calls")
}

func TestFAQFallsBackBelowConfidenceFloor(t *testing.T) {
	searcher := &fakeSearcher{results: []models.ExtractedKnowledge{
		{Query: "what is a deductible", Response: "low confidence answer", Confidence: 50},
	}}
	engine := newTestEngine(searcher)

	response := engine.ProcessMessage("what is a deductible")

	assert.NotContains(t, response, "low confidence answer")
	assert.Contains(t, response, "out of pocket")
}

func TestProductResponseFiltersByType(t *testing.T) {
	engine := newTestEngine(nil)

	response := engine.ProcessMessage("tell me about health insurance")

	assert.Contains(t, response, "FamilyCare Health Insurance")
	assert.Contains(t, response, "premium range")
}

func TestPricingPersonalizesWithName(t *testing.T) {
	engine := newTestEngine(nil)

	engine.ProcessMessage("call me anita")
	response := engine.generateResponse(IntentPricing, "how much does it cost")

	assert.Contains(t, response, "Hi Anita!")
}

func TestRecommendationOmitsUnknownBrackets(t *testing.T) {
	engine := newTestEngine(nil)

	// No age, no family: only the framing text appears.
	response := engine.generateResponse(IntentRecommendation, "recommend something")
	assert.NotContains(t, response, "twenties")
	assert.NotContains(t, response, "family of")

	engine.ProcessMessage("i am 27 and married")
	response = engine.generateResponse(IntentRecommendation, "recommend something")
	assert.Contains(t, response, "late twenties")
	assert.Contains(t, response, "family of 2")
}

func TestProcessIsDeterministicWithInjectedChooser(t *testing.T) {
	a := newTestEngine(nil)
	b := newTestEngine(nil)

	assert.Equal(t, a.ProcessMessage("hello"), b.ProcessMessage("hello"))
}

func TestProfileReturnsDefensiveCopy(t *testing.T) {
	engine := newTestEngine(nil)
	engine.ProcessMessage("my name is ravi")

	copied := engine.Profile()
	copied.Name = "changed"
	copied.CurrentInsurance = append(copied.CurrentInsurance, "term plan")

	assert.Equal(t, "Ravi", engine.Profile().Name)
	assert.Empty(t, engine.Profile().CurrentInsurance)
}
