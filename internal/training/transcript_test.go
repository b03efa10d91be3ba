package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTranscript = `
Agent: Good morning! How can I help you today?

Customer: I want to know more about term life insurance plans.

Agent: Term plans give high coverage at low premiums, ideal for income protection.

Customer: What would the premium be for one crore of coverage?
`

func TestParseTranscript(t *testing.T) {
	turns := ParseTranscript(sampleTranscript)

	require.Len(t, turns.AgentResponses, 2)
	require.Len(t, turns.CustomerQueries, 2)

	assert.Equal(t, "Good morning! How can I help you today?", turns.AgentResponses[0])
	assert.Equal(t, "I want to know more about term life insurance plans.", turns.CustomerQueries[0])
}

func TestParseTranscriptIgnoresUnmarkedLines(t *testing.T) {
	turns := ParseTranscript("some narration\nAgent: A real agent line here\nmore narration")

	assert.Len(t, turns.AgentResponses, 1)
	assert.Empty(t, turns.CustomerQueries)
}

func TestParseTranscriptEmpty(t *testing.T) {
	turns := ParseTranscript("")

	assert.Empty(t, turns.AgentResponses)
	assert.Empty(t, turns.CustomerQueries)
}

func TestExtractKnowledgeSkipsShortTurns(t *testing.T) {
	// Both sides below threshold.
	turns := ParseTranscript("Agent: Hello\nCustomer: I need life insurance")
	assert.Empty(t, ExtractKnowledge(turns))

	// Query long enough, response still too short.
	turns = ParseTranscript("Agent: Sure, one moment\nCustomer: tell me everything about health insurance please")
	assert.Empty(t, ExtractKnowledge(turns))
}

func TestExtractKnowledgePairsPositionally(t *testing.T) {
	turns := Turns{
		CustomerQueries: []string{
			"first question about life insurance coverage",
			"second question about premium payment schedules",
			"third question that has no matching response",
		},
		AgentResponses: []string{
			"first answer explaining coverage in considerable detail",
			"second answer explaining premium schedules in detail",
		},
	}

	items := ExtractKnowledge(turns)

	require.Len(t, items, 2)
	assert.Equal(t, turns.CustomerQueries[0], items[0].Query)
	assert.Equal(t, turns.AgentResponses[0], items[0].Response)
	assert.Equal(t, turns.CustomerQueries[1], items[1].Query)
	assert.Equal(t, turns.AgentResponses[1], items[1].Response)
}

func TestExtractKnowledgePopulatesFields(t *testing.T) {
	turns := Turns{
		CustomerQueries: []string{"how do i file a claim for hospitalization"},
		AgentResponses:  []string{"You notify the insurer within thirty days and submit the documents."},
	}

	items := ExtractKnowledge(turns)

	require.Len(t, items, 1)
	assert.Equal(t, "claims", items[0].Category)
	assert.NotEmpty(t, items[0].Keywords)
	assert.GreaterOrEqual(t, items[0].Confidence, 0.0)
	assert.LessOrEqual(t, items[0].Confidence, 100.0)
}

func TestCategorizeQuery(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"I'm looking for life insurance", "life_insurance"},
		{"what about a TERM plan", "life_insurance"},
		{"what about medical tests", "health_insurance"},
		{"what would be the premium", "pricing"},
		{"how long does claim settlement take", "claims"},
		{"which documents do I need", "documentation"},
		{"hello again", "general"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, CategorizeQuery(tt.query))
		})
	}
}

// Bucket order decides multi-match queries, same first-match policy as
// intent classification.
func TestCategorizeQueryBucketOrder(t *testing.T) {
	assert.Equal(t, "life_insurance", CategorizeQuery("term plan premium"))
	assert.Equal(t, "claims", CategorizeQuery("claim documents needed"))
}

func TestComputeConfidence(t *testing.T) {
	// Four keywords and a saturating response length: 0.7 + 4*0.05 = 0.9.
	query := "insurance premium affordable coverage"
	response := "A very long response that comfortably exceeds the one hundred character saturation point for the length share of the score."

	assert.InDelta(t, 90.0, ComputeConfidence(query, response), 0.001)
}

func TestComputeConfidenceCapsAtHundred(t *testing.T) {
	query := "insurance premium affordable coverage medical deductible settlement documents"
	response := "Another very long response that comfortably exceeds the one hundred character saturation point of the scoring function."

	assert.InDelta(t, 100.0, ComputeConfidence(query, response), 0.001)
}

func TestComputeConfidenceShortResponse(t *testing.T) {
	// 40 characters of response and no usable keywords.
	score := ComputeConfidence("it is", "0123456789012345678901234567890123456789")

	assert.InDelta(t, 28.0, score, 0.001)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
}
