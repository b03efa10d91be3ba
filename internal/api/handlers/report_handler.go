package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/insurebot/backend/internal/reporting"
	"github.com/insurebot/backend/pkg/logger"
)

type ReportHandler struct {
	reporter *reporting.Reporter
	training reporting.TrainingMetricsSource
}

func NewReportHandler(reporter *reporting.Reporter, training reporting.TrainingMetricsSource) *ReportHandler {
	return &ReportHandler{
		reporter: reporter,
		training: training,
	}
}

// GetConversationReport summarizes the trailing window, 24h by default.
func (h *ReportHandler) GetConversationReport(c *fiber.Ctx) error {
	window := 24 * time.Hour
	if raw := c.Query("window"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid window duration",
			})
		}
		window = parsed
	}

	report, err := h.reporter.Conversation(window, h.training)
	if err != nil {
		logger.Error("Failed to build conversation report", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build report",
		})
	}

	return c.JSON(report)
}
