package training

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insurebot/backend/internal/knowledge"
	"github.com/insurebot/backend/internal/speech"
	"github.com/insurebot/backend/internal/storage/blob"
)

func newTestPipeline(t *testing.T) (*Pipeline, *knowledge.Index, string) {
	t.Helper()

	stub := speech.NewStubTranscriber()
	index := knowledge.NewIndex()
	path := filepath.Join(t.TempDir(), "training.json")

	return NewPipeline(stub, stub, index, blob.NewStore(path), nil), index, path
}

// failingTranscriber fails for one filename and defers to the stub for
// everything else.
type failingTranscriber struct {
	stub    *speech.StubTranscriber
	badFile string
}

func (f *failingTranscriber) Transcribe(ctx context.Context, input speech.AudioInput) (string, error) {
	if input.Filename == f.badFile {
		return "", errors.New("decoder rejected the file")
	}
	return f.stub.Transcribe(ctx, input)
}

func TestProcessRecordingExtractsKnowledge(t *testing.T) {
	pipeline, index, _ := newTestPipeline(t)

	rec, err := pipeline.ProcessRecording(context.Background(), speech.AudioInput{Filename: "life_insurance_call.mp3"})
	require.NoError(t, err)

	assert.True(t, rec.Processed)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, 247.0, rec.Duration)
	assert.Len(t, rec.CustomerQueries, 6)
	assert.Len(t, rec.AgentResponses, 6)
	assert.Len(t, rec.ExtractedKnowledge, 6)
	assert.Equal(t, 6, index.Len())

	snapshot := pipeline.Metrics()
	assert.Equal(t, 1, snapshot.TotalRecordings)
	assert.Equal(t, 1, snapshot.ProcessedRecordings)
	assert.Equal(t, 6, snapshot.ExtractedResponses)
	assert.Equal(t, 6, snapshot.KnowledgeBaseSize)
	assert.InDelta(t, 247.0, snapshot.AverageCallDuration, 0.001)
}

func TestReprocessingCreatesIndependentRecordings(t *testing.T) {
	pipeline, index, _ := newTestPipeline(t)
	input := speech.AudioInput{Filename: "health_insurance_call.mp3"}

	first, err := pipeline.ProcessRecording(context.Background(), input)
	require.NoError(t, err)
	second, err := pipeline.ProcessRecording(context.Background(), input)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, pipeline.Recordings(), 2)
	assert.Equal(t, len(first.ExtractedKnowledge)*2, index.Len())
}

func TestSearchKnowledgeAfterTraining(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t)

	transcript := "Agent: You must notify the insurer within thirty days and submit all documents.\n" +
		"Customer: How do I file a claim for my hospitalization?"
	_, err := pipeline.ProcessTranscript(context.Background(), "claims_call.txt", transcript)
	require.NoError(t, err)

	results := pipeline.SearchKnowledge("claim")
	require.NotEmpty(t, results)
	assert.Equal(t, "claims", results[0].Category)
}

func TestSearchResultsOrderedByConfidence(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t)

	for _, filename := range []string{"life_insurance_call.mp3", "health_insurance_call.mp3"} {
		_, err := pipeline.ProcessRecording(context.Background(), speech.AudioInput{Filename: filename})
		require.NoError(t, err)
	}

	results := pipeline.SearchKnowledge("insurance")
	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Confidence, results[i].Confidence)
	}
	for _, item := range results {
		assert.GreaterOrEqual(t, item.Confidence, 0.0)
		assert.LessOrEqual(t, item.Confidence, 100.0)
	}
}

func TestFailedTranscriptionCommitsNothing(t *testing.T) {
	stub := speech.NewStubTranscriber()
	index := knowledge.NewIndex()
	path := filepath.Join(t.TempDir(), "training.json")
	failing := &failingTranscriber{stub: stub, badFile: "bad.mp3"}
	pipeline := NewPipeline(failing, stub, index, blob.NewStore(path), nil)

	_, err := pipeline.ProcessRecording(context.Background(), speech.AudioInput{Filename: "bad.mp3"})

	require.Error(t, err)
	assert.ErrorIs(t, err, speech.ErrProcessingFailed)
	assert.Zero(t, pipeline.Metrics().TotalRecordings)
	assert.Zero(t, index.Len())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestProcessRecordingsContinuesPastFailures(t *testing.T) {
	stub := speech.NewStubTranscriber()
	index := knowledge.NewIndex()
	path := filepath.Join(t.TempDir(), "training.json")
	failing := &failingTranscriber{stub: stub, badFile: "bad.mp3"}
	pipeline := NewPipeline(failing, stub, index, blob.NewStore(path), nil)

	processed, err := pipeline.ProcessRecordings(context.Background(), []speech.AudioInput{
		{Filename: "life_insurance_call.mp3"},
		{Filename: "bad.mp3"},
		{Filename: "health_insurance_call.mp3"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.mp3")
	require.Len(t, processed, 2)
	assert.Equal(t, "life_insurance_call.mp3", processed[0].Filename)
	assert.Equal(t, "health_insurance_call.mp3", processed[1].Filename)
}

func TestProcessTranscriptHasZeroDuration(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t)

	rec, err := pipeline.ProcessTranscript(context.Background(), "imported.txt",
		"Agent: A sufficiently long answer about policies.\nCustomer: A sufficiently long question?")
	require.NoError(t, err)

	assert.Zero(t, rec.Duration)
	assert.Equal(t, "imported.txt", rec.Filename)
}

func TestClearTrainingData(t *testing.T) {
	pipeline, index, path := newTestPipeline(t)

	_, err := pipeline.ProcessRecording(context.Background(), speech.AudioInput{Filename: "life_insurance_call.mp3"})
	require.NoError(t, err)

	require.NoError(t, pipeline.ClearTrainingData())

	snapshot := pipeline.Metrics()
	assert.Zero(t, snapshot.TotalRecordings)
	assert.Zero(t, snapshot.ProcessedRecordings)
	assert.Zero(t, snapshot.ExtractedResponses)
	assert.Zero(t, snapshot.AverageCallDuration)
	assert.Zero(t, index.Len())
	assert.Empty(t, pipeline.SearchKnowledge("insurance"))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPersistenceAcrossRestarts(t *testing.T) {
	stub := speech.NewStubTranscriber()
	path := filepath.Join(t.TempDir(), "training.json")

	first := NewPipeline(stub, stub, knowledge.NewIndex(), blob.NewStore(path), nil)
	rec, err := first.ProcessRecording(context.Background(), speech.AudioInput{Filename: "life_insurance_call.mp3"})
	require.NoError(t, err)

	restoredIndex := knowledge.NewIndex()
	second := NewPipeline(stub, stub, restoredIndex, blob.NewStore(path), nil)

	recordings := second.Recordings()
	require.Len(t, recordings, 1)
	assert.Equal(t, rec.ID, recordings[0].ID)
	assert.Equal(t, len(rec.ExtractedKnowledge), restoredIndex.Len())
	assert.NotEmpty(t, second.SearchKnowledge("insurance"))
}
