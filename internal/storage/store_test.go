// ABOUTME: Tests for the high-level store
// ABOUTME: Verifies recall merging, session scoping, and stats
package storage

import (
	"fmt"
	"strings"
	"testing"

	"github.com/superlocal/memory/internal/models"
)

// stubEmbedder maps known texts to fixed vectors
type stubEmbedder struct {
	vectors map[string][]float64
	fail    bool
}

func (e *stubEmbedder) GenerateEmbedding(text string) ([]float64, error) {
	if e.fail {
		return nil, fmt.Errorf("embedder unavailable")
	}
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return []float64{0, 0, 1}, nil
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func remember(t *testing.T, store *Store, content, category string, importance float64) *models.Entry {
	t.Helper()
	entry, err := models.NewEntry(content, category, nil, importance)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Remember(entry); err != nil {
		t.Fatalf("Remember() error = %v", err)
	}
	return entry
}

func TestRememberAndGet(t *testing.T) {
	store := newTestStore(t)

	entry := remember(t, store, "Standup moved to 9:30", "schedule", 0.7)

	got, err := store.Get(entry.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() returned nil")
	}
	if got.Content != entry.Content {
		t.Errorf("Content = %q", got.Content)
	}

	// Access count bumps on each Get
	again, err := store.Get(entry.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if again.AccessCount != 1 {
		t.Errorf("AccessCount = %d, want 1 after first Get", again.AccessCount)
	}
}

func TestRecall_KeywordOnly(t *testing.T) {
	store := newTestStore(t)

	remember(t, store, "kubernetes cluster upgrade notes", "work", 0.8)
	remember(t, store, "grocery list", "personal", 0.5)

	results, err := store.Recall("kubernetes upgrade", 5)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if !strings.Contains(results[0].Entry.Content, "kubernetes") {
		t.Errorf("unexpected result: %q", results[0].Entry.Content)
	}
}

func TestRecall_MergesSemanticScores(t *testing.T) {
	store := newTestStore(t)

	embedder := &stubEmbedder{vectors: map[string][]float64{
		"release checklist before shipping": {1, 0, 0},
		"vacation photos from Lisbon":       {0, 1, 0},
		"shipping process":                  {1, 0, 0}, // query vector
	}}
	store.SetEmbedder(embedder)

	remember(t, store, "release checklist before shipping", "work", 0.8)
	remember(t, store, "vacation photos from Lisbon", "personal", 0.5)

	results, err := store.Recall("shipping process", 5)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if !strings.Contains(results[0].Entry.Content, "release checklist") {
		t.Errorf("top result = %q, want the semantically close entry", results[0].Entry.Content)
	}
}

func TestRecall_SurvivesEmbedderFailure(t *testing.T) {
	store := newTestStore(t)
	store.SetEmbedder(&stubEmbedder{fail: true})

	remember(t, store, "database migration plan", "work", 0.6)

	results, err := store.Recall("migration", 5)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("len(results) = %d, want 1 (keyword path still works)", len(results))
	}
}

func TestSessionTag(t *testing.T) {
	if got := SessionTag("abc"); got != "langchain:session:abc" {
		t.Errorf("SessionTag() = %q, want langchain:session:abc", got)
	}
}

func TestSessionLifecycle(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		entry, err := models.NewEntry(fmt.Sprintf("msg %d", i), "chat_history", nil, models.ChatHistoryImportance)
		if err != nil {
			t.Fatal(err)
		}
		if err := store.AppendSessionEntry("s1", entry); err != nil {
			t.Fatalf("AppendSessionEntry() error = %v", err)
		}
	}
	other, err := models.NewEntry("other session msg", "chat_history", nil, models.ChatHistoryImportance)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.AppendSessionEntry("s2", other); err != nil {
		t.Fatal(err)
	}

	// Messages scoped to s1 only
	msgs, err := store.SessionMessages("s1")
	if err != nil {
		t.Fatalf("SessionMessages() error = %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("len(msgs) = %d, want 3", len(msgs))
	}

	sessions, err := store.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len(sessions) = %d, want 2", len(sessions))
	}
	if sessions[0] != "s1" || sessions[1] != "s2" {
		t.Errorf("sessions = %v", sessions)
	}

	// Clearing s1 leaves s2 intact
	deleted, err := store.ClearSession("s1")
	if err != nil {
		t.Fatalf("ClearSession() error = %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}

	remaining, err := store.SessionMessages("s2")
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 1 {
		t.Errorf("session s2 has %d messages, want 1", len(remaining))
	}
}

func TestStats(t *testing.T) {
	store := newTestStore(t)

	remember(t, store, "fact one", "fact", 0.9)
	remember(t, store, "fact two", "fact", 0.9)
	entry, err := models.NewEntry("chat msg", "chat_history", nil, models.ChatHistoryImportance)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.AppendSessionEntry("s1", entry); err != nil {
		t.Fatal(err)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalEntries != 3 {
		t.Errorf("TotalEntries = %d, want 3", stats.TotalEntries)
	}
	if stats.ByCategory["fact"] != 2 {
		t.Errorf("ByCategory[fact] = %d, want 2", stats.ByCategory["fact"])
	}
	if stats.Sessions != 1 {
		t.Errorf("Sessions = %d, want 1", stats.Sessions)
	}
}
