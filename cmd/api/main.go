package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/insurebot/backend/internal/api/handlers"
	"github.com/insurebot/backend/internal/cache/redis"
	"github.com/insurebot/backend/internal/knowledge"
	"github.com/insurebot/backend/internal/metrics"
	"github.com/insurebot/backend/internal/middleware/ratelimit"
	"github.com/insurebot/backend/internal/middleware/validation"
	"github.com/insurebot/backend/internal/reporting"
	"github.com/insurebot/backend/internal/speech"
	"github.com/insurebot/backend/internal/storage/blob"
	"github.com/insurebot/backend/internal/storage/sqlite"
	"github.com/insurebot/backend/internal/training"
	"github.com/insurebot/backend/pkg/config"
	appLogger "github.com/insurebot/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting InsureBot API Server")

	metrics.Init()

	if err := os.MkdirAll(filepath.Dir(cfg.SQLite.Path), 0755); err != nil {
		appLogger.Fatal("Failed to create data directory", zap.Error(err))
	}

	sqliteClient, err := sqlite.NewClient(cfg.SQLite.Path)
	if err != nil {
		appLogger.Fatal("Failed to create SQLite client", zap.Error(err))
	}
	defer sqliteClient.Close()

	if err := sqliteClient.InitSchema(); err != nil {
		appLogger.Fatal("Failed to initialize schema", zap.Error(err))
	}

	var cacheClient *redis.Client
	if cfg.Redis.Enabled {
		cacheClient, err = redis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSec)*time.Second,
		)
		if err != nil {
			appLogger.Fatal("Failed to create Redis client", zap.Error(err))
		}
		defer cacheClient.Close()
	}

	transcriber, prober := buildSpeechBackend(cfg.Speech)

	store := knowledge.NewSeededStore()
	index := knowledge.NewIndex()
	blobStore := blob.NewStore(cfg.Training.BlobPath)

	pipeline := training.NewPipeline(transcriber, prober, index, blobStore, sqliteClient)
	reporter := reporting.NewReporter(sqliteClient)

	conversationHandler := handlers.NewConversationHandler(store, pipeline, &speech.LogSynthesizer{}, sqliteClient)
	trainingHandler := handlers.NewTrainingHandler(pipeline, cacheClient)
	wsHandler := handlers.NewWebSocketHandler(conversationHandler)
	reportHandler := handlers.NewReportHandler(reporter, pipeline)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	limiter := ratelimit.New(ratelimit.Config{
		MaxRequestsPerMinute: 120,
		Logger:               appLogger.GetLogger(),
	})
	app.Use(limiter.Middleware())

	app.Use(validation.Middleware(validation.Config{
		MaxUploadSize: cfg.Server.BodyLimit,
		Logger:        appLogger.GetLogger(),
	}))

	api := app.Group("/api/v1")

	api.Post("/conversation/message", conversationHandler.HandleMessage)
	api.Get("/conversation/profile", conversationHandler.GetProfile)
	api.Get("/conversation/context", conversationHandler.GetContext)
	api.Post("/conversation/reset", conversationHandler.Reset)

	api.Use("/conversation/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	api.Get("/conversation/ws", websocket.New(wsHandler.HandleConnection))

	api.Post("/training/recordings", trainingHandler.UploadRecordings)
	api.Post("/training/transcripts", trainingHandler.ImportTranscript)
	api.Get("/training/knowledge/search", trainingHandler.SearchKnowledge)
	api.Get("/training/metrics", trainingHandler.GetMetrics)
	api.Get("/training/recordings", trainingHandler.GetRecordings)
	api.Delete("/training/data", trainingHandler.ClearData)

	api.Get("/reports/conversation", reportHandler.GetConversationReport)

	app.Get("/metrics", metrics.MetricsHandler())

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api.Get("/ready", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}

func buildSpeechBackend(cfg config.SpeechConfig) (speech.Transcriber, speech.DurationProber) {
	switch cfg.Provider {
	case "whisper":
		if cfg.APIKey == "" {
			appLogger.Fatal("Whisper provider requires speech.apiKey")
		}
		client := speech.NewWhisperClient(cfg.APIKey, cfg.Model, cfg.TimeoutSec)
		return client, client
	default:
		stub := speech.NewStubTranscriber()
		return stub, stub
	}
}
