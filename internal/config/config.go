// ABOUTME: Centralized configuration for the local memory system
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/superlocal/memory/internal/models"
	"github.com/superlocal/memory/internal/storage/sqlite"
)

// Config holds all configuration for the memory system
type Config struct {
	// Storage settings
	DBPath string

	// Charm settings
	CharmHost   string
	CharmDBName string
	AutoSync    bool

	// OpenAI settings
	OpenAIKey      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Search settings
	DefaultSearchLimit int
	DefaultImportance  float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		DBPath:             getEnv("LOCALMEMORY_DB", sqlite.DefaultDBPath()),
		CharmHost:          getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:        getEnv("CHARM_DB", "localmemory"),
		AutoSync:           getEnvBool("CHARM_AUTO_SYNC", true),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel:     getEnv("LOCALMEMORY_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:            getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:         getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:         getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		DefaultSearchLimit: getEnvInt("LOCALMEMORY_SEARCH_LIMIT", 5),
		DefaultImportance:  getEnvFloat("LOCALMEMORY_DEFAULT_IMPORTANCE", models.DefaultImportance),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.DefaultImportance < models.MinImportance || c.DefaultImportance > models.MaxImportance {
		return fmt.Errorf("LOCALMEMORY_DEFAULT_IMPORTANCE must be 0-1, got %f", c.DefaultImportance)
	}
	if c.DefaultSearchLimit <= 0 {
		return fmt.Errorf("LOCALMEMORY_SEARCH_LIMIT must be positive, got %d", c.DefaultSearchLimit)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
