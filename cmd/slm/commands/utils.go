// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Store opening, display formatting, and flag validation helpers
package commands

import (
	"fmt"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/superlocal/memory/internal/config"
	"github.com/superlocal/memory/internal/llm"
	"github.com/superlocal/memory/internal/storage"
)

// openStore opens the memory store honoring the --db flag, and wires
// an OpenAI embedder when an API key is configured
func openStore() (*storage.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	dbPath := dbPathFlag
	if dbPath == "" {
		dbPath = cfg.DBPath
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening memory store: %w", err)
	}

	if cfg.OpenAIKey != "" {
		client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
			APIKey:         cfg.OpenAIKey,
			EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
			MaxRetries:     cfg.MaxRetries,
			RetryDelay:     cfg.RetryDelay,
			Timeout:        cfg.Timeout,
		})
		if err != nil {
			if verbose {
				fmt.Fprintf(os.Stderr, "Warning: Could not initialize OpenAI client: %v\n", err)
			}
		} else {
			store.SetEmbedder(client)
		}
	}

	return store, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
