package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insurebot/backend/internal/storage/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.InitSchema())

	return client
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	client := newTestClient(t)

	assert.NoError(t, client.InitSchema())
}

func TestRecentTurnsOrderAndLimit(t *testing.T) {
	client := newTestClient(t)

	base := time.Now().Add(-time.Minute)
	for i := 0; i < 5; i++ {
		require.NoError(t, client.InsertConversationTurn(&models.ConversationTurn{
			ID:        string(rune('a' + i)),
			SessionID: "s1",
			Utterance: "hello",
			Intent:    "greeting",
			Response:  "hi there",
			LatencyMS: 5,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	turns, err := client.RecentTurns("s1", 3)
	require.NoError(t, err)

	require.Len(t, turns, 3)
	assert.Equal(t, "e", turns[0].ID)
	assert.Equal(t, "d", turns[1].ID)
	assert.Equal(t, "c", turns[2].ID)
}

func TestRecentTurnsFiltersBySession(t *testing.T) {
	client := newTestClient(t)

	require.NoError(t, client.InsertConversationTurn(&models.ConversationTurn{
		ID: "1", SessionID: "s1", Utterance: "u", Intent: "general", Response: "r", CreatedAt: time.Now(),
	}))
	require.NoError(t, client.InsertConversationTurn(&models.ConversationTurn{
		ID: "2", SessionID: "s2", Utterance: "u", Intent: "general", Response: "r", CreatedAt: time.Now(),
	}))

	turns, err := client.RecentTurns("s2", 10)
	require.NoError(t, err)

	require.Len(t, turns, 1)
	assert.Equal(t, "2", turns[0].ID)
}

func TestRecordingRowsRoundTrip(t *testing.T) {
	client := newTestClient(t)

	rec := &models.CallRecording{
		ID:              "rec-1",
		Filename:        "call.mp3",
		Duration:        120.5,
		AgentResponses:  []string{"a"},
		CustomerQueries: []string{"q"},
		Processed:       true,
		UploadedAt:      time.Now(),
	}
	require.NoError(t, client.InsertRecordingRow(rec))

	// Same primary key again must fail.
	assert.Error(t, client.InsertRecordingRow(rec))

	require.NoError(t, client.DeleteRecordingRows())
	assert.NoError(t, client.InsertRecordingRow(rec))
}

func TestConversationStatsInterruptions(t *testing.T) {
	client := newTestClient(t)

	require.NoError(t, client.InsertConversationTurn(&models.ConversationTurn{
		ID: "1", SessionID: "s1", Utterance: "u", Intent: "general", Response: "r",
		Interrupted: true, LatencyMS: 10, CreatedAt: time.Now(),
	}))
	require.NoError(t, client.InsertConversationTurn(&models.ConversationTurn{
		ID: "2", SessionID: "s1", Utterance: "u", Intent: "general", Response: "r",
		LatencyMS: 30, CreatedAt: time.Now(),
	}))

	stats, err := client.ConversationStats(time.Now().Add(-time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalTurns)
	assert.Equal(t, 1, stats.Interrupted)
	assert.InDelta(t, 20.0, stats.AvgLatencyMS, 0.001)
}
