// ABOUTME: MCP tool definitions and registration for the local memory server
// ABOUTME: Defines JSON schemas for the memory and session-history tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/superlocal/memory/internal/storage"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *storage.Store) *Handlers {
	handlers := &Handlers{store: store}

	// 1. store_memory - Store an entry in local memory
	server.AddTool(mcp.Tool{
		Name:        "store_memory",
		Description: "Store a memory entry in the local memory database with optional tags and importance.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Content of the memory to store",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Category for the memory (default: general)",
				},
				"tags": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Tags to attach to the memory",
				},
				"importance": map[string]interface{}{
					"type":        "number",
					"description": "Importance from 0.0 to 1.0 (default: 0.5)",
					"default":     0.5,
				},
			},
			Required: []string{"content"},
		},
	}, handlers.StoreMemory)

	// 2. recall_memory - Search stored memories
	server.AddTool(mcp.Tool{
		Name:        "recall_memory",
		Description: "Search local memory for entries relevant to a query, ranked by relevance and importance.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query for memory retrieval",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.RecallMemory)

	// 3. forget_memory - Delete a memory by ID
	server.AddTool(mcp.Tool{
		Name:        "forget_memory",
		Description: "Delete a memory entry by its ID.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"memory_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the memory to delete",
				},
			},
			Required: []string{"memory_id"},
		},
	}, handlers.ForgetMemory)

	// 4. get_session_history - Chat history for a conversation session
	server.AddTool(mcp.Tool{
		Name:        "get_session_history",
		Description: "Get the chat message history for a conversation session, in chronological order.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve history for",
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.GetSessionHistory)

	// 5. clear_session - Remove a session's chat history
	server.AddTool(mcp.Tool{
		Name:        "clear_session",
		Description: "Delete all chat history for a conversation session. Other sessions and non-chat memories are untouched.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to clear",
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.ClearSession)

	// 6. list_sessions - List known conversation sessions
	server.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all conversation sessions that have stored chat history.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListSessions)

	return handlers
}
