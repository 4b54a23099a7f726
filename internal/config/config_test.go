package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("AI_TIMEOUT", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("QDRANT_URL", "")

	cfg := Load()

	assert.Equal(t, "gemini-3-flash-preview", cfg.Gemini.Model)
	assert.Equal(t, 30*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, StoreMemory, cfg.Database.Driver)
	assert.Empty(t, cfg.Qdrant.URL)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("AI_TIMEOUT", "12s")
	t.Setenv("WORKER_CONCURRENCY", "9")
	t.Setenv("MAX_FILE_SIZE", "2048")

	cfg := Load()

	assert.Equal(t, 12*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, 9, cfg.Worker.Concurrency)
	assert.Equal(t, int64(2048), cfg.Storage.MaxFileSize)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("AI_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.Gemini.Timeout)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Gemini:   GeminiConfig{APIKey: "k", Timeout: time.Second},
		Database: DatabaseConfig{Driver: StoreMemory},
	}
	require.NoError(t, cfg.Validate())

	cfg.Database.Driver = "sqlite"
	assert.Error(t, cfg.Validate())

	cfg.Database.Driver = StorePostgres
	cfg.Gemini.APIKey = ""
	assert.ErrorContains(t, cfg.Validate(), "GEMINI_API_KEY")
}
