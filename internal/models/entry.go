// ABOUTME: Entry is a single memory record in the local store
// ABOUTME: Core data structure shared by storage, CLI, and MCP layers
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Importance bounds and defaults. Chat history entries get a low fixed
// importance so they rank below curated memories in search.
const (
	MinImportance         = 0.0
	MaxImportance         = 1.0
	DefaultImportance     = 0.5
	ChatHistoryImportance = 0.3
)

// DefaultCategory is assigned when no category is provided
const DefaultCategory = "general"

// Entry represents a single stored memory
type Entry struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags,omitempty"`
	Importance  float64   `json:"importance"`
	AccessCount int       `json:"access_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEntry creates an Entry with validation and a generated ID
func NewEntry(content, category string, tags []string, importance float64) (*Entry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("content cannot be empty")
	}
	if importance < MinImportance || importance > MaxImportance {
		return nil, fmt.Errorf("importance must be %g-%g, got %g", MinImportance, MaxImportance, importance)
	}
	if category == "" {
		category = DefaultCategory
	}

	now := time.Now().UTC()
	return &Entry{
		ID:         generateEntryID(),
		Content:    content,
		Category:   category,
		Tags:       tags,
		Importance: importance,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// HasTag reports whether the entry carries the given tag
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// generateEntryID generates a unique entry identifier
func generateEntryID() string {
	return fmt.Sprintf("mem_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}
