package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"hireflow/tracker/internal/config"
	"hireflow/tracker/internal/handlers"
	"hireflow/tracker/internal/logging"
	"hireflow/tracker/internal/repositories"
	"hireflow/tracker/internal/services"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.Server.Env, cfg.Server.LogLevel)

	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("❌ Invalid configuration: %v", err)
	}
	logrus.Info("✅ Config loaded successfully")

	appRepo, resumeRepo, err := initRepositories(cfg)
	if err != nil {
		logrus.Fatalf("❌ Failed to initialize store: %v", err)
	}
	logrus.WithField("driver", cfg.Database.Driver).Info("✅ Repositories initialized successfully")

	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storageService.EnsureUploadDir(); err != nil {
		logrus.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	ctx := context.Background()

	geminiService, err := services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey:     cfg.Gemini.APIKey,
		Model:      cfg.Gemini.Model,
		EmbedModel: cfg.Gemini.EmbedModel,
	})
	if err != nil {
		logrus.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	adapter := services.NewAIAdapter(geminiService, cfg.Gemini.Timeout)
	logrus.WithField("timeout", cfg.Gemini.Timeout).Info("✅ AI adapter initialized")

	var resumeIndex services.ResumeIndex
	if cfg.Qdrant.URL != "" {
		resumeIndex, err = initResumeIndex(ctx, cfg, geminiService)
		if err != nil {
			logrus.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		logrus.Info("✅ Qdrant resume index initialized")
	} else {
		logrus.Info("ℹ️ QDRANT_URL not set, resume recommendations disabled")
	}

	runner := services.NewAnalysisRunner(cfg.Worker.Concurrency)
	runner.Start(ctx)

	tracker := services.NewTrackerService(services.TrackerDeps{
		Applications: appRepo,
		Resumes:      resumeRepo,
		Adapter:      adapter,
		Runner:       runner,
		Index:        resumeIndex,
		Storage:      storageService,
		Parser:       services.NewPDFParser(),
	})

	app := fiber.New(fiber.Config{
		AppName:      "HireFlow Tracker API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Gemini.Timeout + 10*time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		UnescapePath: true,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.RegisterRoutes(app.Group("/api/v1"), handlers.Handlers{
		Applications: handlers.NewApplicationHandler(tracker),
		Resumes:      handlers.NewResumeHandler(tracker, cfg.Storage.MaxFileSize),
		AI:           handlers.NewAIHandler(adapter),
		Analyses:     handlers.NewAnalysisHandler(tracker),
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "HireFlow Tracker API",
			"version": "1.0.0",
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logrus.Info("🛑 Shutting down server...")
		runner.Stop()
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logrus.Infof("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		logrus.Fatalf("❌ Failed to start server: %v", err)
	}
}

func initRepositories(cfg *config.Config) (repositories.ApplicationRepository, repositories.ResumeRepository, error) {
	if cfg.Database.Driver != config.StorePostgres {
		return repositories.NewMemoryApplicationRepository(), repositories.NewMemoryResumeRepository(), nil
	}

	db, err := config.OpenStore(context.Background(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewApplicationRepository(db), repositories.NewResumeRepository(db), nil
}

func initResumeIndex(ctx context.Context, cfg *config.Config, embedder services.Embedder) (services.ResumeIndex, error) {
	store, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		return nil, err
	}
	if err := store.InitCollection(ctx); err != nil {
		return nil, err
	}
	return services.NewResumeIndex(store, embedder, services.NewTextChunker()), nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
