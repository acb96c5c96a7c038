package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.NotEmpty(t, cfg.Storage.Path)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, 30*time.Second, cfg.Reminders.PollInterval)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CALAI_DB_PATH", "/tmp/test-calai.db")
	t.Setenv("CALAI_AI_MODEL", "gpt-4o")
	t.Setenv("CALAI_AI_BASE_URL", "https://llm.internal/v1")
	t.Setenv("CALAI_REMINDER_POLL_INTERVAL", "5s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ENV", "production")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "/tmp/test-calai.db", cfg.Storage.Path)
	assert.Equal(t, "gpt-4o", cfg.AI.Model)
	assert.Equal(t, "https://llm.internal/v1", cfg.AI.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Reminders.PollInterval)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "production", cfg.App.Environment)
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Storage:   StorageConfig{Path: "calai.db"},
		Reminders: RemindersConfig{PollInterval: 30 * time.Second},
	}
	assert.NoError(t, valid.Validate())

	missingPath := &Config{Reminders: RemindersConfig{PollInterval: time.Second}}
	assert.Error(t, missingPath.Validate())

	badInterval := &Config{
		Storage:   StorageConfig{Path: "calai.db"},
		Reminders: RemindersConfig{PollInterval: 0},
	}
	assert.Error(t, badInterval.Validate())
}
