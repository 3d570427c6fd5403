// ABOUTME: Tests for Entry creation and validation
// ABOUTME: Verifies importance bounds, defaults, and ID generation
package models

import (
	"strings"
	"testing"
)

func TestNewEntry(t *testing.T) {
	entry, err := NewEntry("Met with Alice about the launch", "work", []string{"meeting"}, 0.8)
	if err != nil {
		t.Fatalf("NewEntry() error = %v", err)
	}

	if entry.Content != "Met with Alice about the launch" {
		t.Errorf("Content = %q", entry.Content)
	}
	if entry.Category != "work" {
		t.Errorf("Category = %q, want work", entry.Category)
	}
	if entry.Importance != 0.8 {
		t.Errorf("Importance = %v, want 0.8", entry.Importance)
	}
	if !strings.HasPrefix(entry.ID, "mem_") {
		t.Errorf("ID = %q, want mem_ prefix", entry.ID)
	}
	if entry.CreatedAt.IsZero() || entry.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
}

func TestNewEntry_Defaults(t *testing.T) {
	entry, err := NewEntry("note", "", nil, DefaultImportance)
	if err != nil {
		t.Fatalf("NewEntry() error = %v", err)
	}
	if entry.Category != DefaultCategory {
		t.Errorf("Category = %q, want %q", entry.Category, DefaultCategory)
	}
}

func TestNewEntry_Validation(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		importance float64
	}{
		{"empty content", "", 0.5},
		{"whitespace content", "   ", 0.5},
		{"importance too low", "x", -0.1},
		{"importance too high", "x", 1.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEntry(tt.content, "", nil, tt.importance); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestEntry_HasTag(t *testing.T) {
	entry, err := NewEntry("x", "", []string{"a", "langchain:session:s1"}, 0.5)
	if err != nil {
		t.Fatalf("NewEntry() error = %v", err)
	}

	if !entry.HasTag("langchain:session:s1") {
		t.Error("HasTag() should find existing tag")
	}
	if entry.HasTag("langchain:session:s2") {
		t.Error("HasTag() should not match other tags")
	}
}

func TestGenerateEntryID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateEntryID()
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}
