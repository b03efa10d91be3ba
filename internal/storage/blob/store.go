package blob

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/insurebot/backend/internal/storage/models"
	"github.com/insurebot/backend/pkg/logger"
)

// TrainingData is the single persisted blob: every recording plus the
// flattened knowledge index. It is rewritten whole after each mutating
// pipeline operation.
type TrainingData struct {
	Recordings []models.CallRecording      `json:"recordings"`
	Knowledge  []models.ExtractedKnowledge `json:"knowledge"`
}

// Store reads and writes the training blob as JSON on disk.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted training data. A missing or malformed file
// is not an error; it loads as empty collections.
func (s *Store) Load() TrainingData {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read training data, starting empty",
				zap.String("path", s.path),
				zap.Error(err),
			)
		}
		return TrainingData{}
	}

	var data TrainingData
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.Warn("Malformed training data, starting empty",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return TrainingData{}
	}

	logger.Info("Training data loaded",
		zap.Int("recordings", len(data.Recordings)),
		zap.Int("knowledge_items", len(data.Knowledge)),
	)

	return data
}

// Save rewrites the whole blob. The write goes through a temp file and
// rename so a crash never leaves a half-written blob behind.
func (s *Store) Save(data TrainingData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal training data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("failed to write training data: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace training data: %w", err)
	}

	return nil
}

// Clear removes the persisted blob entirely.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove training data: %w", err)
	}
	return nil
}
