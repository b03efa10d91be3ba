package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/insurebot/backend/internal/storage/models"
	"github.com/insurebot/backend/pkg/logger"
)

// Client keeps the operational history behind the reporting surface:
// every processed conversation turn and a row per uploaded recording.
// The training blob, not this database, is the source of truth for the
// knowledge index.
type Client struct {
	db *sql.DB
}

func NewClient(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err = db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	logger.Info("SQLite client initialized", zap.String("path", dbPath))

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversation_history (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		utterance TEXT NOT NULL,
		intent TEXT NOT NULL,
		response TEXT NOT NULL,
		interrupted INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_history_session ON conversation_history(session_id);
	CREATE INDEX IF NOT EXISTS idx_history_created ON conversation_history(created_at);

	CREATE TABLE IF NOT EXISTS recordings (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		duration REAL NOT NULL,
		agent_turns INTEGER NOT NULL,
		customer_turns INTEGER NOT NULL,
		knowledge_count INTEGER NOT NULL,
		processed INTEGER NOT NULL DEFAULT 0,
		uploaded_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_recordings_uploaded ON recordings(uploaded_at);
	`

	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("SQLite schema initialized")
	return nil
}

func (c *Client) InsertConversationTurn(turn *models.ConversationTurn) error {
	query := `
		INSERT INTO conversation_history (id, session_id, utterance, intent, response, interrupted, latency_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	interrupted := 0
	if turn.Interrupted {
		interrupted = 1
	}

	_, err := c.db.Exec(
		query,
		turn.ID,
		turn.SessionID,
		turn.Utterance,
		turn.Intent,
		turn.Response,
		interrupted,
		turn.LatencyMS,
		turn.CreatedAt.Unix(),
	)

	if err != nil {
		return fmt.Errorf("failed to insert conversation turn: %w", err)
	}

	return nil
}

func (c *Client) InsertRecordingRow(rec *models.CallRecording) error {
	query := `
		INSERT INTO recordings (id, filename, duration, agent_turns, customer_turns, knowledge_count, processed, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	processed := 0
	if rec.Processed {
		processed = 1
	}

	_, err := c.db.Exec(
		query,
		rec.ID,
		rec.Filename,
		rec.Duration,
		len(rec.AgentResponses),
		len(rec.CustomerQueries),
		len(rec.ExtractedKnowledge),
		processed,
		rec.UploadedAt.Unix(),
	)

	if err != nil {
		return fmt.Errorf("failed to insert recording row: %w", err)
	}

	logger.Debug("Recording row inserted",
		zap.String("recording_id", rec.ID),
		zap.String("filename", rec.Filename),
	)

	return nil
}

func (c *Client) DeleteRecordingRows() error {
	if _, err := c.db.Exec(`DELETE FROM recordings`); err != nil {
		return fmt.Errorf("failed to delete recording rows: %w", err)
	}
	return nil
}

// TurnStats aggregates the conversation history since a cutoff.
type TurnStats struct {
	TotalTurns   int
	Interrupted  int
	AvgLatencyMS float64
}

func (c *Client) ConversationStats(since time.Time) (TurnStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(interrupted), 0), COALESCE(AVG(latency_ms), 0)
		FROM conversation_history
		WHERE created_at >= ?
	`

	var stats TurnStats
	err := c.db.QueryRow(query, since.Unix()).Scan(
		&stats.TotalTurns,
		&stats.Interrupted,
		&stats.AvgLatencyMS,
	)
	if err != nil {
		return TurnStats{}, fmt.Errorf("failed to compute conversation stats: %w", err)
	}

	return stats, nil
}

func (c *Client) IntentCounts(since time.Time) (map[string]int, error) {
	query := `
		SELECT intent, COUNT(*)
		FROM conversation_history
		WHERE created_at >= ?
		GROUP BY intent
	`

	rows, err := c.db.Query(query, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to count intents: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var intent string
		var count int
		if err := rows.Scan(&intent, &count); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		counts[intent] = count
	}

	return counts, rows.Err()
}

func (c *Client) RecentTurns(sessionID string, limit int) ([]models.ConversationTurn, error) {
	query := `
		SELECT id, session_id, utterance, intent, response, interrupted, latency_ms, created_at
		FROM conversation_history
		WHERE session_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := c.db.Query(query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent turns: %w", err)
	}
	defer rows.Close()

	var turns []models.ConversationTurn
	for rows.Next() {
		var t models.ConversationTurn
		var interrupted int
		var createdAt int64

		err := rows.Scan(&t.ID, &t.SessionID, &t.Utterance, &t.Intent, &t.Response, &interrupted, &t.LatencyMS, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		t.Interrupted = interrupted == 1
		t.CreatedAt = time.Unix(createdAt, 0)
		turns = append(turns, t)
	}

	return turns, rows.Err()
}
