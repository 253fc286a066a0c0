package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, 10, cfg.App.UploadBodyLimitMB)
	assert.Equal(t, "http://localhost:11434", cfg.Ai.OllamaBaseURL)
	assert.Equal(t, "nomic-embed-text", cfg.Ai.EmbeddingModel)
	assert.Equal(t, 120, cfg.Ai.ChatTimeoutSeconds)
	assert.True(t, cfg.Ai.SearchEnabled)
	assert.Equal(t, "rag_db.json", cfg.Rag.DBPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CHAT_TIMEOUT_SECONDS", "30")
	t.Setenv("SEARCH_ENABLED", "false")
	t.Setenv("UPLOAD_BODY_LIMIT_MB", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 30, cfg.Ai.ChatTimeoutSeconds)
	assert.False(t, cfg.Ai.SearchEnabled)
	assert.Equal(t, 10, cfg.App.UploadBodyLimitMB, "unparsable value falls back to default")
}
