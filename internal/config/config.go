package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Storage   StorageConfig
	AI        AIConfig
	Reminders RemindersConfig
	Logging   LoggingConfig
}

// AppConfig holds process-level settings
type AppConfig struct {
	Environment string
}

// StorageConfig locates the embedded database backing the key-value store
type StorageConfig struct {
	Path string
}

// AIConfig holds the completion-API collaborator settings. The key may be
// empty; AI-backed commands report a clear error when invoked without it.
type AIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// RemindersConfig holds the reminder scheduler settings
type RemindersConfig struct {
	PollInterval time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from environment variables with defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.environment", "development")
	v.SetDefault("storage.path", defaultStoragePath())
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("reminders.pollinterval", 30*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("app.environment", "ENV", "ENVIRONMENT")
	v.BindEnv("storage.path", "CALAI_DB_PATH")
	v.BindEnv("ai.baseurl", "CALAI_AI_BASE_URL")
	v.BindEnv("ai.apikey", "CALAI_AI_API_KEY")
	v.BindEnv("ai.model", "CALAI_AI_MODEL")
	v.BindEnv("reminders.pollinterval", "CALAI_REMINDER_POLL_INTERVAL")
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	if c.Reminders.PollInterval <= 0 {
		return fmt.Errorf("reminders.pollinterval must be positive")
	}
	return nil
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "calai.db"
	}
	return filepath.Join(dir, "calai", "calai.db")
}
