package handlers

import (
	"context"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/insurebot/backend/internal/cache/redis"
	"github.com/insurebot/backend/internal/speech"
	"github.com/insurebot/backend/internal/storage/models"
	"github.com/insurebot/backend/internal/training"
	"github.com/insurebot/backend/pkg/logger"
)

type TrainingHandler struct {
	pipeline *training.Pipeline
	cache    *redis.Client // optional
}

func NewTrainingHandler(pipeline *training.Pipeline, cache *redis.Client) *TrainingHandler {
	return &TrainingHandler{
		pipeline: pipeline,
		cache:    cache,
	}
}

// UploadRecordings accepts one or more audio files under the
// "recordings" multipart field and processes them strictly in
// submission order.
func (h *TrainingHandler) UploadRecordings(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		logger.Error("Failed to parse multipart form", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid multipart form",
		})
	}

	files := form.File["recordings"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one recording is required",
		})
	}

	var inputs []speech.AudioInput
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to read uploaded file",
			})
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to read uploaded file",
			})
		}

		inputs = append(inputs, speech.AudioInput{
			Filename: fileHeader.Filename,
			Data:     data,
		})
	}

	recordings, err := h.pipeline.ProcessRecordings(c.Context(), inputs)

	h.invalidateCache()

	resp := fiber.Map{
		"recordings": summarize(recordings),
	}
	if err != nil {
		logger.Error("Some recordings failed to process", zap.Error(err))
		resp["error"] = "One or more recordings failed to process"
		if len(recordings) == 0 {
			return c.Status(fiber.StatusInternalServerError).JSON(resp)
		}
	}

	return c.JSON(resp)
}

// ImportTranscript runs the extraction path on an already-transcribed
// call. HTML exports are flattened to the line-per-turn format first.
func (h *TrainingHandler) ImportTranscript(c *fiber.Ctx) error {
	var req struct {
		Filename   string `json:"filename"`
		Transcript string `json:"transcript"`
	}

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Transcript) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Transcript is required",
		})
	}
	if req.Filename == "" {
		req.Filename = "imported_transcript.txt"
	}

	transcript := training.FlattenHTMLTranscript(req.Transcript)

	recording, err := h.pipeline.ProcessTranscript(c.Context(), req.Filename, transcript)
	if err != nil {
		logger.Error("Failed to process transcript", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process transcript",
		})
	}

	h.invalidateCache()

	return c.JSON(fiber.Map{
		"recording": summarizeOne(*recording),
	})
}

func (h *TrainingHandler) SearchKnowledge(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter q is required",
		})
	}

	if h.cache != nil {
		if results, ok := h.cache.GetSearch(c.Context(), query); ok {
			return c.JSON(fiber.Map{"results": results, "cached": true})
		}
	}

	results := h.pipeline.SearchKnowledge(query)

	if h.cache != nil {
		h.cache.SetSearch(c.Context(), query, results)
	}

	return c.JSON(fiber.Map{"results": results, "cached": false})
}

func (h *TrainingHandler) GetMetrics(c *fiber.Ctx) error {
	return c.JSON(h.pipeline.Metrics())
}

func (h *TrainingHandler) GetRecordings(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"recordings": h.pipeline.Recordings(),
	})
}

func (h *TrainingHandler) ClearData(c *fiber.Ctx) error {
	if err := h.pipeline.ClearTrainingData(); err != nil {
		logger.Error("Failed to clear training data", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear training data",
		})
	}

	h.invalidateCache()

	return c.JSON(fiber.Map{
		"message": "Training data cleared",
	})
}

func (h *TrainingHandler) invalidateCache() {
	if h.cache == nil {
		return
	}
	if err := h.cache.InvalidateSearches(context.Background()); err != nil {
		logger.Warn("Failed to invalidate search cache", zap.Error(err))
	}
}

type recordingSummary struct {
	ID             string  `json:"id"`
	Filename       string  `json:"filename"`
	Duration       float64 `json:"duration"`
	CustomerTurns  int     `json:"customer_turns"`
	AgentTurns     int     `json:"agent_turns"`
	KnowledgeItems int     `json:"knowledge_items"`
	Processed      bool    `json:"processed"`
}

func summarize(recordings []models.CallRecording) []recordingSummary {
	summaries := make([]recordingSummary, 0, len(recordings))
	for _, rec := range recordings {
		summaries = append(summaries, summarizeOne(rec))
	}
	return summaries
}

func summarizeOne(rec models.CallRecording) recordingSummary {
	return recordingSummary{
		ID:             rec.ID,
		Filename:       rec.Filename,
		Duration:       rec.Duration,
		CustomerTurns:  len(rec.CustomerQueries),
		AgentTurns:     len(rec.AgentResponses),
		KnowledgeItems: len(rec.ExtractedKnowledge),
		Processed:      rec.Processed,
	}
}
