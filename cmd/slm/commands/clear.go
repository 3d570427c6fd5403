// ABOUTME: CLI command to clear a session's chat history
// ABOUTME: Deletes only the named session's messages, guarded by --confirm
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearConfirm bool

// NewClearCmd creates the clear command
func NewClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear <session-id>",
		Short: "Clear chat history for a session",
		Long: `Delete all chat history for a conversation session.

Only that session's messages are removed. Other sessions and
non-chat memories are untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: runClear,
	}

	cmd.Flags().BoolVar(&clearConfirm, "confirm", false, "Confirm the deletion")

	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
	sessionID := args[0]

	if !clearConfirm {
		fmt.Fprintf(cmd.OutOrStdout(), "This will delete all chat history for session %q\n", sessionID)
		fmt.Fprintln(cmd.OutOrStdout(), "Run with --confirm to proceed")
		return nil
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	deleted, err := store.ClearSession(sessionID)
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %d message(s) from session %s\n", deleted, sessionID)
	}
	return nil
}
