// ABOUTME: Tests for the history command
// ABOUTME: Seeds sessions via the adapter and reads them back through the CLI

package commands

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/superlocal/memory/langchain"
)

func seedSession(t *testing.T, dbPath, sessionID string, contents ...string) {
	t.Helper()

	history, err := langchain.NewChatMessageHistory(sessionID, langchain.WithDBPath(dbPath))
	if err != nil {
		t.Fatalf("NewChatMessageHistory() error = %v", err)
	}
	defer func() { _ = history.Close() }()

	for i, content := range contents {
		if i%2 == 0 {
			err = history.AddUserMessage(content)
		} else {
			err = history.AddAIMessage(content)
		}
		if err != nil {
			t.Fatalf("seeding message: %v", err)
		}
	}
}

func TestHistoryCmd_ListsSessions(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "memory.db")
	seedSession(t, dbPath, "support-chat", "my order is late")
	seedSession(t, dbPath, "planning", "draft the roadmap")

	output, err := runCLI(t, dbPath, "history")
	if err != nil {
		t.Fatalf("history failed: %v\n%s", err, output)
	}
	for _, session := range []string{"support-chat", "planning"} {
		if !strings.Contains(output, session) {
			t.Errorf("output missing session %q:\n%s", session, output)
		}
	}
}

func TestHistoryCmd_ShowsMessagesInOrder(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "memory.db")
	seedSession(t, dbPath, "s1", "first question", "first answer", "second question")

	output, err := runCLI(t, dbPath, "history", "s1")
	if err != nil {
		t.Fatalf("history failed: %v\n%s", err, output)
	}

	firstIdx := strings.Index(output, "first question")
	secondIdx := strings.Index(output, "second question")
	if firstIdx == -1 || secondIdx == -1 {
		t.Fatalf("output missing messages:\n%s", output)
	}
	if firstIdx > secondIdx {
		t.Error("messages not in chronological order")
	}
	if !strings.Contains(output, "human") || !strings.Contains(output, "ai") {
		t.Errorf("output missing roles:\n%s", output)
	}
}

func TestHistoryCmd_EmptySession(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "memory.db")

	output, err := runCLI(t, dbPath, "history", "ghost")
	if err != nil {
		t.Fatalf("history failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "No messages") {
		t.Errorf("output = %q, want empty-session notice", output)
	}
}
