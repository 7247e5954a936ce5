package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ConfigError reports a missing or invalid configuration value. It is
// always fatal: the process must not start a run with partial credentials.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Key, e.Reason)
}

// Config holds the application configuration
type Config struct {
	// OpenAI settings
	OpenAIAPIKey string

	// IMAP account settings (fetch and drafts share one account)
	EmailAddress  string
	EmailPassword string
	IMAPHost      string
	IMAPPort      int
	DraftsFolder  string

	// Run settings
	FetchLimit int
	LogLevel   string
}

// Load loads configuration from a local .env file (if present) and
// environment variables. Environment variables take precedence.
func Load() (*Config, error) {
	// A missing .env is fine; plain environment variables are enough.
	_ = godotenv.Load()

	cfg := &Config{
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		EmailAddress:  getEnv("EMAIL_ADDRESS", ""),
		EmailPassword: getEnv("EMAIL_PASSWORD", ""),
		IMAPHost:      getEnv("EMAIL_IMAP_SERVER", "imap.gmail.com"),
		IMAPPort:      getEnvInt("EMAIL_IMAP_PORT", 993),
		DraftsFolder:  getEnv("DRAFTS_FOLDER", "[Gmail]/Drafts"),
		FetchLimit:    getEnvInt("FETCH_LIMIT", 2),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return &ConfigError{Key: "OPENAI_API_KEY", Reason: "is required"}
	}
	if c.EmailAddress == "" {
		return &ConfigError{Key: "EMAIL_ADDRESS", Reason: "is required"}
	}
	if c.EmailPassword == "" {
		return &ConfigError{Key: "EMAIL_PASSWORD", Reason: "is required"}
	}
	if c.IMAPHost == "" {
		return &ConfigError{Key: "EMAIL_IMAP_SERVER", Reason: "is required"}
	}
	if c.IMAPPort < 1 || c.IMAPPort > 65535 {
		return &ConfigError{Key: "EMAIL_IMAP_PORT", Reason: "must be a valid port"}
	}
	if c.FetchLimit < 1 {
		return &ConfigError{Key: "FETCH_LIMIT", Reason: "must be at least 1"}
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
