package validation

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Config struct {
	// MaxUtteranceLength bounds chat messages; real utterances are a
	// sentence or two, anything enormous is abuse or a client bug.
	MaxUtteranceLength int
	// MaxUploadSize bounds one audio or transcript upload.
	MaxUploadSize int
	Logger        *zap.Logger
}

var allowedContentTypes = []string{
	"application/json",
	"multipart/form-data",
	"text/plain",
}

// Middleware rejects oversized or wrongly-typed request bodies before
// they reach a handler.
func Middleware(cfg Config) fiber.Handler {
	if cfg.MaxUtteranceLength == 0 {
		cfg.MaxUtteranceLength = 2000
	}
	if cfg.MaxUploadSize == 0 {
		cfg.MaxUploadSize = 25 * 1024 * 1024
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost && c.Method() != fiber.MethodPut {
			return c.Next()
		}

		contentType := c.Get(fiber.HeaderContentType)
		if contentType != "" && !typeAllowed(contentType) {
			cfg.Logger.Warn("Rejected content type", zap.String("content_type", contentType))
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
				"error": "Unsupported content type",
			})
		}

		if len(c.Body()) > cfg.MaxUploadSize {
			cfg.Logger.Warn("Rejected oversized body", zap.Int("size", len(c.Body())))
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"error": "Request body too large",
			})
		}

		if strings.HasSuffix(c.Path(), "/conversation/message") {
			var req struct {
				Text string `json:"text"`
			}
			if err := c.BodyParser(&req); err == nil && len(req.Text) > cfg.MaxUtteranceLength {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Message too long",
				})
			}
		}

		return c.Next()
	}
}

func typeAllowed(contentType string) bool {
	for _, allowed := range allowedContentTypes {
		if strings.HasPrefix(contentType, allowed) {
			return true
		}
	}
	return false
}
