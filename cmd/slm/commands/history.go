// ABOUTME: CLI command to inspect conversation session history
// ABOUTME: Lists known sessions or prints one session's messages in order
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/superlocal/memory/langchain"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [session-id]",
		Short: "Show chat history for a session",
		Long: `Show the chat message history for a conversation session in
chronological order. Without a session ID, lists all known sessions.

Examples:
  slm history
  slm history my-session
  slm history --format json my-session`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistory,
	}

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if len(args) == 0 {
		sessions, err := store.ListSessions()
		if err != nil {
			return fmt.Errorf("listing sessions: %w", err)
		}
		if len(sessions) == 0 {
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions found")
			}
			return nil
		}
		for _, session := range sessions {
			fmt.Fprintln(cmd.OutOrStdout(), session)
		}
		return nil
	}

	sessionID := args[0]

	entries, err := store.SessionMessages(sessionID)
	if err != nil {
		return fmt.Errorf("loading session history: %w", err)
	}

	if len(entries) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No messages for session: %s\n", sessionID)
		}
		return nil
	}

	if outputFormat == "json" {
		messages := make([]langchain.Message, 0, len(entries))
		for _, entry := range entries {
			var msg langchain.Message
			if err := json.Unmarshal([]byte(entry.Content), &msg); err != nil {
				msg = langchain.Message{Type: langchain.MessageTypeHuman, Content: entry.Content}
			}
			messages = append(messages, msg)
		}
		jsonData, err := json.MarshalIndent(messages, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "WHEN\tROLE\tCONTENT\n")
	fmt.Fprintf(w, "----\t----\t-------\n")

	for _, entry := range entries {
		role := "?"
		content := entry.Content
		var msg langchain.Message
		if err := json.Unmarshal([]byte(entry.Content), &msg); err == nil {
			role = string(msg.Type)
			content = msg.Content
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			formatTime(entry.CreatedAt),
			role,
			truncate(content, 70))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d message(s) in session %s\n", len(entries), sessionID)
	}

	return nil
}
