package training

import (
	"strings"

	"github.com/insurebot/backend/internal/storage/models"
)

const (
	agentMarker    = "Agent:"
	customerMarker = "Customer:"

	// Extraction thresholds: anything shorter carries no learnable
	// content.
	minQueryLength    = 10
	minResponseLength = 20
)

// Turns holds the two speaker sequences of a parsed transcript, in
// original order.
type Turns struct {
	AgentResponses  []string
	CustomerQueries []string
}

// ParseTranscript splits a transcript on line boundaries and classifies
// each non-empty line by its leading role marker. Lines without a marker
// are ignored.
func ParseTranscript(transcript string) Turns {
	var turns Turns
	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, agentMarker):
			turns.AgentResponses = append(turns.AgentResponses, strings.TrimSpace(strings.TrimPrefix(line, agentMarker)))
		case strings.HasPrefix(line, customerMarker):
			turns.CustomerQueries = append(turns.CustomerQueries, strings.TrimSpace(strings.TrimPrefix(line, customerMarker)))
		}
	}
	return turns
}

// ExtractKnowledge pairs customer queries with agent responses
// positionally, assuming strict alternation. Turns beyond the shorter
// sequence are silently dropped, and pairs below the length thresholds
// are skipped.
func ExtractKnowledge(turns Turns) []models.ExtractedKnowledge {
	n := len(turns.CustomerQueries)
	if len(turns.AgentResponses) < n {
		n = len(turns.AgentResponses)
	}

	var items []models.ExtractedKnowledge
	for i := 0; i < n; i++ {
		query := turns.CustomerQueries[i]
		response := turns.AgentResponses[i]

		if len(query) <= minQueryLength || len(response) <= minResponseLength {
			continue
		}

		items = append(items, models.ExtractedKnowledge{
			Query:      query,
			Response:   response,
			Category:   CategorizeQuery(query),
			Confidence: ComputeConfidence(query, response),
			Keywords:   ExtractKeywords(query + " " + response),
		})
	}
	return items
}

// categoryRule buckets a query by keyword. The table is evaluated top to
// bottom; first match wins, same policy as intent classification.
type categoryRule struct {
	category string
	keywords []string
}

var categoryRules = []categoryRule{
	{"life_insurance", []string{"life insurance", "term"}},
	{"health_insurance", []string{"health insurance", "medical"}},
	{"pricing", []string{"premium", "cost", "price"}},
	{"claims", []string{"claim", "settlement"}},
	{"documentation", []string{"document", "process"}},
}

// CategorizeQuery assigns a query to the first matching keyword bucket,
// defaulting to "general".
func CategorizeQuery(query string) string {
	lower := strings.ToLower(query)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category
			}
		}
	}
	return "general"
}

// ComputeConfidence scores a pair in [0,100]: longer responses score
// higher (saturating at 100 characters for the 0.7 share) and each query
// keyword adds 0.05, capped at 1 before scaling.
func ComputeConfidence(query, response string) float64 {
	lengthShare := float64(len(response)) / 100
	if lengthShare > 1 {
		lengthShare = 1
	}

	confidence := lengthShare*0.7 + float64(len(ExtractKeywords(query)))*0.05
	if confidence > 1 {
		confidence = 1
	}
	return confidence * 100
}
