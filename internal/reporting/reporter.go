package reporting

import (
	"fmt"
	"time"

	"github.com/insurebot/backend/internal/storage/models"
	"github.com/insurebot/backend/internal/storage/sqlite"
)

// Reporter aggregates the conversation history into the operator-facing
// performance summary.
type Reporter struct {
	db *sqlite.Client
}

func NewReporter(db *sqlite.Client) *Reporter {
	return &Reporter{db: db}
}

// ConversationReport summarizes processed messages since a cutoff.
type ConversationReport struct {
	Window           string                 `json:"window"`
	TotalTurns       int                    `json:"total_turns"`
	Interruptions    int                    `json:"interruptions"`
	InterruptionRate float64                `json:"interruption_rate"`
	AvgLatencyMS     float64                `json:"avg_latency_ms"`
	IntentCounts     map[string]int         `json:"intent_counts"`
	Training         models.TrainingMetrics `json:"training"`
}

// TrainingMetricsSource is the slice of the pipeline the reporter reads.
type TrainingMetricsSource interface {
	Metrics() models.TrainingMetrics
}

// Conversation builds the report over the trailing window.
func (r *Reporter) Conversation(window time.Duration, training TrainingMetricsSource) (*ConversationReport, error) {
	since := time.Now().Add(-window)

	stats, err := r.db.ConversationStats(since)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation stats: %w", err)
	}

	intents, err := r.db.IntentCounts(since)
	if err != nil {
		return nil, fmt.Errorf("failed to load intent counts: %w", err)
	}

	report := &ConversationReport{
		Window:        window.String(),
		TotalTurns:    stats.TotalTurns,
		Interruptions: stats.Interrupted,
		AvgLatencyMS:  stats.AvgLatencyMS,
		IntentCounts:  intents,
	}

	if stats.TotalTurns > 0 {
		report.InterruptionRate = float64(stats.Interrupted) / float64(stats.TotalTurns)
	}

	if training != nil {
		report.Training = training.Metrics()
	}

	return report, nil
}
