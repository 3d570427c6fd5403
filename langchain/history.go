// ABOUTME: Session-scoped chat message history backed by the local memory store
// ABOUTME: Drop-in history adapter; entries are tagged langchain:session:<id>
package langchain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/superlocal/memory/internal/models"
	"github.com/superlocal/memory/internal/storage"
)

// MessageType identifies the speaker role of a chat message
type MessageType string

// Message roles supported for round-trip storage
const (
	MessageTypeHuman    MessageType = "human"
	MessageTypeAI       MessageType = "ai"
	MessageTypeSystem   MessageType = "system"
	MessageTypeFunction MessageType = "function"
	MessageTypeTool     MessageType = "tool"
)

// Message is a single chat message
type Message struct {
	Type       MessageType `json:"type"`
	Content    string      `json:"content"`
	Name       string      `json:"name,omitempty"`
	ToolCallID string      `json:"tool_call_id,omitempty"`
}

// ChatMessageHistory presents a per-session ordered list of messages backed
// by the local memory store. Sessions are fully isolated: every stored
// message carries the session tag, and reads and clears filter on it.
type ChatMessageHistory struct {
	sessionID string
	store     *storage.Store
	ownsStore bool
}

// Option configures a ChatMessageHistory
type Option func(*options)

type options struct {
	dbPath string
	store  *storage.Store
}

// WithDBPath overrides the default database location
// (~/.localmemory/memory.db)
func WithDBPath(path string) Option {
	return func(o *options) {
		o.dbPath = path
	}
}

// withStore injects an existing store (used by tests and the CLI)
func withStore(store *storage.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// NewChatMessageHistory creates a history scoped to the given session
func NewChatMessageHistory(sessionID string, opts ...Option) (*ChatMessageHistory, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.store != nil {
		return &ChatMessageHistory{sessionID: sessionID, store: o.store}, nil
	}

	store, err := storage.Open(o.dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open memory store: %w", err)
	}

	return &ChatMessageHistory{
		sessionID: sessionID,
		store:     store,
		ownsStore: true,
	}, nil
}

// SessionID returns the session this history is scoped to
func (h *ChatMessageHistory) SessionID() string {
	return h.sessionID
}

// Messages returns the session's messages in chronological order
func (h *ChatMessageHistory) Messages() ([]Message, error) {
	entries, err := h.store.SessionMessages(h.sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session messages: %w", err)
	}

	messages := make([]Message, 0, len(entries))
	for _, entry := range entries {
		var msg Message
		if err := json.Unmarshal([]byte(entry.Content), &msg); err != nil {
			return nil, fmt.Errorf("failed to decode message %s: %w", entry.ID, err)
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

// AddMessage appends one message to the session
func (h *ChatMessageHistory) AddMessage(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	entry, err := models.NewEntry(string(data), "chat_history", nil, models.ChatHistoryImportance)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}

	return h.store.AppendSessionEntry(h.sessionID, entry)
}

// AddMessages appends messages to the session in order
func (h *ChatMessageHistory) AddMessages(msgs ...Message) error {
	for _, msg := range msgs {
		if err := h.AddMessage(msg); err != nil {
			return err
		}
	}
	return nil
}

// AddUserMessage appends a human message
func (h *ChatMessageHistory) AddUserMessage(content string) error {
	return h.AddMessage(Message{Type: MessageTypeHuman, Content: content})
}

// AddAIMessage appends an AI message
func (h *ChatMessageHistory) AddAIMessage(content string) error {
	return h.AddMessage(Message{Type: MessageTypeAI, Content: content})
}

// Clear removes all messages tagged with this session. Entries belonging to
// other sessions, and non-chat memories, are untouched.
func (h *ChatMessageHistory) Clear() error {
	_, err := h.store.ClearSession(h.sessionID)
	return err
}

// Close releases the underlying store if this history opened it
func (h *ChatMessageHistory) Close() error {
	if h.ownsStore {
		return h.store.Close()
	}
	return nil
}
