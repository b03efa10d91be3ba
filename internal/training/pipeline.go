package training

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/insurebot/backend/internal/knowledge"
	"github.com/insurebot/backend/internal/metrics"
	"github.com/insurebot/backend/internal/speech"
	"github.com/insurebot/backend/internal/storage/blob"
	"github.com/insurebot/backend/internal/storage/models"
	"github.com/insurebot/backend/internal/storage/sqlite"
	"github.com/insurebot/backend/pkg/logger"
)

// Pipeline mines structured knowledge from call recordings and folds it
// into the shared index the conversation engine queries. Recordings are
// processed strictly one at a time; the mutex spans a whole operation so
// later uploads wait for the prior extraction to finish.
type Pipeline struct {
	mu          sync.Mutex
	transcriber speech.Transcriber
	prober      speech.DurationProber
	index       *knowledge.Index
	blobs       *blob.Store
	db          *sqlite.Client // optional, reporting only
	recordings  []models.CallRecording
}

// NewPipeline restores persisted state from the blob store and shares
// the given index with the conversation engine. db may be nil.
func NewPipeline(transcriber speech.Transcriber, prober speech.DurationProber, index *knowledge.Index, blobs *blob.Store, db *sqlite.Client) *Pipeline {
	data := blobs.Load()
	index.Replace(data.Knowledge)
	metrics.KnowledgeItems.Set(float64(index.Len()))

	return &Pipeline{
		transcriber: transcriber,
		prober:      prober,
		index:       index,
		blobs:       blobs,
		db:          db,
		recordings:  data.Recordings,
	}
}

// ProcessRecording transcribes one audio file, extracts knowledge and
// commits the result. A collaborator failure aborts the whole operation;
// nothing is committed.
func (p *Pipeline) ProcessRecording(ctx context.Context, input speech.AudioInput) (*models.CallRecording, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	logger.Info("Processing recording", zap.String("filename", input.Filename))

	transcript, err := p.transcriber.Transcribe(ctx, input)
	if err != nil {
		metrics.RecordingsProcessed.WithLabelValues("failed").Inc()
		return nil, processingFailure("transcription", err)
	}

	duration, err := p.prober.Duration(ctx, input)
	if err != nil {
		metrics.RecordingsProcessed.WithLabelValues("failed").Inc()
		return nil, processingFailure("duration probe", err)
	}

	rec := p.buildRecording(input.Filename, transcript, duration)

	if err := p.commit(rec); err != nil {
		metrics.RecordingsProcessed.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.RecordingsProcessed.WithLabelValues("ok").Inc()
	logger.Info("Recording processed",
		zap.String("recording_id", rec.ID),
		zap.Int("customer_turns", len(rec.CustomerQueries)),
		zap.Int("agent_turns", len(rec.AgentResponses)),
		zap.Int("knowledge_items", len(rec.ExtractedKnowledge)),
	)

	return &rec, nil
}

// ProcessRecordings handles a batch sequentially, in submission order.
// A failed file does not stop the rest; the joined error reports every
// failure.
func (p *Pipeline) ProcessRecordings(ctx context.Context, inputs []speech.AudioInput) ([]models.CallRecording, error) {
	var processed []models.CallRecording
	var errs []error

	for _, input := range inputs {
		rec, err := p.ProcessRecording(ctx, input)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", input.Filename, err))
			continue
		}
		processed = append(processed, *rec)
	}

	return processed, errors.Join(errs...)
}

// ProcessTranscript runs the extraction path on an already-transcribed
// call, bypassing the audio collaborators. Duration is unknown and
// recorded as zero.
func (p *Pipeline) ProcessTranscript(_ context.Context, filename, transcript string) (*models.CallRecording, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec := p.buildRecording(filename, transcript, 0)

	if err := p.commit(rec); err != nil {
		metrics.RecordingsProcessed.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.RecordingsProcessed.WithLabelValues("ok").Inc()
	return &rec, nil
}

func (p *Pipeline) buildRecording(filename, transcript string, duration float64) models.CallRecording {
	turns := ParseTranscript(transcript)
	items := ExtractKnowledge(turns)

	id := uuid.New().String()
	for i := range items {
		items[i].ID = fmt.Sprintf("%s_%d", id, i)
		metrics.ExtractionConfidence.Observe(items[i].Confidence)
	}

	return models.CallRecording{
		ID:                 id,
		Filename:           filename,
		Duration:           duration,
		Transcript:         transcript,
		AgentResponses:     turns.AgentResponses,
		CustomerQueries:    turns.CustomerQueries,
		ExtractedKnowledge: items,
		UploadedAt:         time.Now(),
		Processed:          true,
	}
}

// commit persists the candidate state before mutating in-memory
// collections, so a failed save leaves the pipeline untouched.
func (p *Pipeline) commit(rec models.CallRecording) error {
	recordings := make([]models.CallRecording, 0, len(p.recordings)+1)
	recordings = append(recordings, p.recordings...)
	recordings = append(recordings, rec)

	if err := p.blobs.Save(blob.TrainingData{
		Recordings: recordings,
		Knowledge:  append(p.index.All(), rec.ExtractedKnowledge...),
	}); err != nil {
		return fmt.Errorf("failed to persist training data: %w", err)
	}

	p.recordings = recordings
	p.index.Append(rec.ExtractedKnowledge...)
	metrics.KnowledgeItems.Set(float64(p.index.Len()))

	if p.db != nil {
		if err := p.db.InsertRecordingRow(&rec); err != nil {
			logger.Warn("Failed to record recording row", zap.Error(err))
		}
	}

	return nil
}

// SearchKnowledge queries the learned index, ranked by confidence.
func (p *Pipeline) SearchKnowledge(query string) []models.ExtractedKnowledge {
	return p.index.Search(query)
}

// Metrics recomputes the aggregate snapshot from the recording
// collection and the index.
func (p *Pipeline) Metrics() models.TrainingMetrics {
	p.mu.Lock()
	defer p.mu.Unlock()

	processed := 0
	totalDuration := 0.0
	for _, rec := range p.recordings {
		if rec.Processed {
			processed++
		}
		totalDuration += rec.Duration
	}

	avgDuration := 0.0
	if len(p.recordings) > 0 {
		avgDuration = totalDuration / float64(len(p.recordings))
	}

	return models.TrainingMetrics{
		TotalRecordings:     len(p.recordings),
		ProcessedRecordings: processed,
		ExtractedResponses:  p.index.Len(),
		AverageCallDuration: avgDuration,
		KnowledgeBaseSize:   p.index.Len(),
	}
}

// Recordings returns a copy of the recording collection.
func (p *Pipeline) Recordings() []models.CallRecording {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.CallRecording(nil), p.recordings...)
}

// ClearTrainingData empties the recording collection and the knowledge
// index and removes the persisted blob.
func (p *Pipeline) ClearTrainingData() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.recordings = nil
	p.index.Clear()
	metrics.KnowledgeItems.Set(0)

	if p.db != nil {
		if err := p.db.DeleteRecordingRows(); err != nil {
			logger.Warn("Failed to delete recording rows", zap.Error(err))
		}
	}

	if err := p.blobs.Clear(); err != nil {
		return err
	}

	logger.Info("Training data cleared")
	return nil
}

func processingFailure(stage string, err error) error {
	if errors.Is(err, speech.ErrProcessingFailed) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", speech.ErrProcessingFailed, stage, err)
}
