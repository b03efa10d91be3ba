package models

import "time"

// CallRecording is one uploaded call and everything derived from it.
// Duration, transcript, turns and knowledge are filled in during
// processing and never mutated afterwards.
type CallRecording struct {
	ID                 string               `json:"id"`
	Filename           string               `json:"filename"`
	Duration           float64              `json:"duration"`
	Transcript         string               `json:"transcript"`
	AgentResponses     []string             `json:"agent_responses"`
	CustomerQueries    []string             `json:"customer_queries"`
	ExtractedKnowledge []ExtractedKnowledge `json:"extracted_knowledge"`
	UploadedAt         time.Time            `json:"uploaded_at"`
	Processed          bool                 `json:"processed"`
}

// ExtractedKnowledge is one learned query/response pair. Confidence is a
// heuristic in [0,100], not a probability. Keywords hold at most ten
// lowercase tokens.
type ExtractedKnowledge struct {
	ID         string   `json:"id"`
	Query      string   `json:"query"`
	Response   string   `json:"response"`
	Category   string   `json:"category"`
	Confidence float64  `json:"confidence"`
	Keywords   []string `json:"keywords"`
}

// TrainingMetrics is a snapshot recomputed on demand from the recording
// collection and the knowledge index.
type TrainingMetrics struct {
	TotalRecordings     int     `json:"total_recordings"`
	ProcessedRecordings int     `json:"processed_recordings"`
	ExtractedResponses  int     `json:"extracted_responses"`
	AverageCallDuration float64 `json:"average_call_duration"`
	KnowledgeBaseSize   int     `json:"knowledge_base_size"`
}

// ConversationTurn is one processed message, recorded for reporting.
type ConversationTurn struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Utterance   string    `json:"utterance"`
	Intent      string    `json:"intent"`
	Response    string    `json:"response"`
	Interrupted bool      `json:"interrupted"`
	LatencyMS   int       `json:"latency_ms"`
	CreatedAt   time.Time `json:"created_at"`
}
