package main

import (
	"context"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"hireflow/tracker/internal/config"
	"hireflow/tracker/internal/logging"
	"hireflow/tracker/internal/repositories"
	"hireflow/tracker/internal/services"
)

// Rebuilds the Qdrant resume index from the Postgres store. Run after
// changing the embedding model or wiping the collection.
func main() {
	cfg := config.Load()
	logging.Setup(cfg.Server.Env, cfg.Server.LogLevel)

	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("❌ Invalid configuration: %v", err)
	}
	if cfg.Database.Driver != config.StorePostgres {
		logrus.Fatal("❌ Reindexing needs STORE_DRIVER=postgres; the memory store is empty at startup")
	}
	if cfg.Qdrant.URL == "" {
		logrus.Fatal("❌ QDRANT_URL is not set")
	}

	logrus.Info("🚀 Starting resume reindex...")
	ctx := context.Background()

	db, err := config.OpenStore(ctx, cfg)
	if err != nil {
		logrus.Fatalf("❌ Failed to initialize database: %v", err)
	}
	resumeRepo := repositories.NewResumeRepository(db)

	gemini, err := services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey:     cfg.Gemini.APIKey,
		Model:      cfg.Gemini.Model,
		EmbedModel: cfg.Gemini.EmbedModel,
	})
	if err != nil {
		logrus.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	store, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		logrus.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}
	if err := store.InitCollection(ctx); err != nil {
		logrus.Fatalf("❌ Failed to initialize collection: %v", err)
	}
	index := services.NewResumeIndex(store, gemini, services.NewTextChunker())

	resumes, err := resumeRepo.List()
	if err != nil {
		logrus.Fatalf("❌ Failed to list resumes: %v", err)
	}

	successCount, failCount := 0, 0
	for i := range resumes {
		resume := &resumes[i]
		log := logrus.WithFields(logrus.Fields{"resume_id": resume.ID, "name": resume.Name})

		if strings.TrimSpace(resume.Content) == "" {
			log.Warn("⚠️ Empty resume, skipping")
			failCount++
			continue
		}
		if err := index.IndexResume(ctx, resume); err != nil {
			log.WithError(err).Error("❌ Failed to index resume")
			failCount++
			continue
		}
		successCount++
	}

	logrus.Info(strings.Repeat("=", 60))
	logrus.Infof("📊 Reindex summary: %d indexed, %d failed", successCount, failCount)
	logrus.Info(strings.Repeat("=", 60))

	if failCount > 0 {
		os.Exit(1)
	}
	logrus.Info("✅ All resumes indexed successfully!")
}
