// ABOUTME: MCP tool handler implementations for the local memory server
// ABOUTME: Each handler validates arguments, calls the store, and returns JSON
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/superlocal/memory/internal/models"
	"github.com/superlocal/memory/internal/storage"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	store *storage.Store
}

// StoreMemory handles the store_memory tool
func (h *Handlers) StoreMemory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required and must be a string"), nil
	}

	category := request.GetString("category", models.DefaultCategory)
	importance := request.GetFloat("importance", models.DefaultImportance)

	var tags []string
	if args, ok := request.Params.Arguments.(map[string]any); ok {
		if raw, exists := args["tags"]; exists {
			if arr, ok := raw.([]interface{}); ok {
				for _, item := range arr {
					if s, ok := item.(string); ok {
						tags = append(tags, s)
					}
				}
			}
		}
	}

	entry, err := models.NewEntry(content, category, tags, importance)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid memory: %v", err)), nil
	}

	if err := h.store.Remember(entry); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to store memory: %v", err)), nil
	}

	response := map[string]interface{}{
		"memory_id":  entry.ID,
		"category":   entry.Category,
		"importance": entry.Importance,
		"created_at": entry.CreatedAt.Format(time.RFC3339),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// RecallMemory handles the recall_memory tool
func (h *Handlers) RecallMemory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", 5)

	results, err := h.store.Recall(query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("memory search failed: %v", err)), nil
	}

	memories := make([]map[string]interface{}, 0, len(results))
	for _, result := range results {
		memories = append(memories, map[string]interface{}{
			"memory_id":  result.Entry.ID,
			"content":    result.Entry.Content,
			"category":   result.Entry.Category,
			"tags":       result.Entry.Tags,
			"importance": result.Entry.Importance,
			"relevance":  result.RelevanceScore,
			"created_at": result.Entry.CreatedAt.Format(time.RFC3339),
		})
	}

	response := map[string]interface{}{
		"memories": memories,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ForgetMemory handles the forget_memory tool
func (h *Handlers) ForgetMemory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	memoryID, err := request.RequireString("memory_id")
	if err != nil {
		return mcp.NewToolResultError("memory_id argument is required and must be a string"), nil
	}

	entry, err := h.store.Get(memoryID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to look up memory: %v", err)), nil
	}
	if entry == nil {
		return mcp.NewToolResultError(fmt.Sprintf("memory not found: %s", memoryID)), nil
	}

	if err := h.store.Forget(memoryID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete memory: %v", err)), nil
	}

	response := map[string]interface{}{
		"deleted":   true,
		"memory_id": memoryID,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetSessionHistory handles the get_session_history tool
func (h *Handlers) GetSessionHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	entries, err := h.store.SessionMessages(sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load session history: %v", err)), nil
	}

	messages := make([]map[string]interface{}, 0, len(entries))
	for _, entry := range entries {
		msg := map[string]interface{}{
			"memory_id":  entry.ID,
			"created_at": entry.CreatedAt.Format(time.RFC3339),
		}
		// Chat entries store the message as JSON; pass it through decoded
		// so callers see type/content fields instead of an escaped string
		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(entry.Content), &decoded); err == nil {
			msg["message"] = decoded
		} else {
			msg["message"] = entry.Content
		}
		messages = append(messages, msg)
	}

	response := map[string]interface{}{
		"session_id": sessionID,
		"messages":   messages,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ClearSession handles the clear_session tool
func (h *Handlers) ClearSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	deleted, err := h.store.ClearSession(sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to clear session: %v", err)), nil
	}

	response := map[string]interface{}{
		"session_id": sessionID,
		"deleted":    deleted,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListSessions handles the list_sessions tool
func (h *Handlers) ListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.store.ListSessions()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list sessions: %v", err)), nil
	}

	if sessions == nil {
		sessions = []string{}
	}

	response := map[string]interface{}{
		"sessions": sessions,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
