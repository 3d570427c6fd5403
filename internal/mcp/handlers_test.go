// ABOUTME: Tests for MCP tool handlers against an in-memory store
// ABOUTME: Exercises argument validation and JSON response shapes
package mcp

import (
	"context"
	"encoding/json"
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/superlocal/memory/internal/models"
	"github.com/superlocal/memory/internal/storage"
)

func newTestHandlers(t *testing.T) (*Handlers, *storage.Store) {
	t.Helper()
	store, err := storage.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return &Handlers{store: store}, store
}

func callRequest(name string, args map[string]any) mcpgo.CallToolRequest {
	req := mcpgo.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()
	if result.IsError {
		t.Fatalf("handler returned error result: %+v", result.Content)
	}
	if len(result.Content) == 0 {
		t.Fatal("handler returned empty content")
	}
	text, ok := result.Content[0].(mcpgo.TextContent)
	if !ok {
		t.Fatalf("content[0] is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestStoreMemory_RequiresContent(t *testing.T) {
	handlers, _ := newTestHandlers(t)

	result, err := handlers.StoreMemory(context.Background(), callRequest("store_memory", map[string]any{}))
	if err != nil {
		t.Fatalf("StoreMemory() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing content")
	}
}

func TestStoreMemory_CreatesEntry(t *testing.T) {
	handlers, store := newTestHandlers(t)

	result, err := handlers.StoreMemory(context.Background(), callRequest("store_memory", map[string]any{
		"content":    "gophers compile fast",
		"category":   "fact",
		"tags":       []interface{}{"go", "build"},
		"importance": 0.8,
	}))
	if err != nil {
		t.Fatalf("StoreMemory() error = %v", err)
	}

	var response struct {
		MemoryID string `json:"memory_id"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &response); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	entry, err := store.Get(response.MemoryID)
	if err != nil {
		t.Fatal(err)
	}
	if entry == nil {
		t.Fatal("stored entry not found")
	}
	if entry.Importance != 0.8 {
		t.Errorf("Importance = %v, want 0.8", entry.Importance)
	}
	if !entry.HasTag("go") || !entry.HasTag("build") {
		t.Errorf("tags = %v, want go and build", entry.Tags)
	}
}

func TestRecallMemory_ReturnsRankedResults(t *testing.T) {
	handlers, store := newTestHandlers(t)

	for _, content := range []string{"gophers love concurrency", "cats love naps"} {
		entry, err := models.NewEntry(content, "fact", nil, 0.7)
		if err != nil {
			t.Fatal(err)
		}
		if err := store.Remember(entry); err != nil {
			t.Fatal(err)
		}
	}

	result, err := handlers.RecallMemory(context.Background(), callRequest("recall_memory", map[string]any{
		"query": "gophers concurrency",
	}))
	if err != nil {
		t.Fatalf("RecallMemory() error = %v", err)
	}

	var response struct {
		Memories []struct {
			Content   string  `json:"content"`
			Relevance float64 `json:"relevance"`
		} `json:"memories"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &response); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(response.Memories) == 0 {
		t.Fatal("expected at least one match")
	}
	if response.Memories[0].Content != "gophers love concurrency" {
		t.Errorf("top result = %q", response.Memories[0].Content)
	}
}

func TestForgetMemory_MissingID(t *testing.T) {
	handlers, _ := newTestHandlers(t)

	result, err := handlers.ForgetMemory(context.Background(), callRequest("forget_memory", map[string]any{
		"memory_id": "mem_does_not_exist",
	}))
	if err != nil {
		t.Fatalf("ForgetMemory() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for unknown memory ID")
	}
}

func TestSessionTools_Lifecycle(t *testing.T) {
	handlers, store := newTestHandlers(t)

	for _, content := range []string{`{"type":"human","content":"hi"}`, `{"type":"ai","content":"hello"}`} {
		entry, err := models.NewEntry(content, "chat_history", nil, models.ChatHistoryImportance)
		if err != nil {
			t.Fatal(err)
		}
		if err := store.AppendSessionEntry("s1", entry); err != nil {
			t.Fatal(err)
		}
	}

	// History returns decoded messages in order
	result, err := handlers.GetSessionHistory(context.Background(), callRequest("get_session_history", map[string]any{
		"session_id": "s1",
	}))
	if err != nil {
		t.Fatalf("GetSessionHistory() error = %v", err)
	}
	var history struct {
		Messages []struct {
			Message map[string]interface{} `json:"message"`
		} `json:"messages"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &history); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(history.Messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(history.Messages))
	}
	if history.Messages[0].Message["type"] != "human" {
		t.Errorf("first message type = %v, want human", history.Messages[0].Message["type"])
	}

	// Sessions list includes s1
	result, err = handlers.ListSessions(context.Background(), callRequest("list_sessions", map[string]any{}))
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	var sessions struct {
		Sessions []string `json:"sessions"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &sessions); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(sessions.Sessions) != 1 || sessions.Sessions[0] != "s1" {
		t.Errorf("sessions = %v, want [s1]", sessions.Sessions)
	}

	// Clear removes both messages
	result, err = handlers.ClearSession(context.Background(), callRequest("clear_session", map[string]any{
		"session_id": "s1",
	}))
	if err != nil {
		t.Fatalf("ClearSession() error = %v", err)
	}
	var cleared struct {
		Deleted int64 `json:"deleted"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &cleared); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if cleared.Deleted != 2 {
		t.Errorf("deleted = %d, want 2", cleared.Deleted)
	}

	remaining, err := store.SessionMessages("s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 0 {
		t.Errorf("session still has %d messages after clear", len(remaining))
	}
}
