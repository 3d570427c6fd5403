// ABOUTME: CLI command to list recent memories
// ABOUTME: Shows newest entries first with table or JSON output
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	listLimit int
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent memories",
		Long: `List the most recently stored memories, newest first.

Examples:
  slm list
  slm list --limit 20
  slm list --format json`,
		RunE: runList,
	}

	cmd.Flags().IntVar(&listLimit, "limit", 10, "Maximum entries to show")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(listLimit, "limit"); err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(listLimit)
	if err != nil {
		return fmt.Errorf("listing memories: %w", err)
	}

	if len(entries) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No memories stored yet")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "WHEN\tCATEGORY\tIMPORTANCE\tCONTENT\n")
	fmt.Fprintf(w, "----\t--------\t----------\t-------\n")

	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\n",
			formatTime(entry.CreatedAt),
			truncate(entry.Category, 15),
			entry.Importance,
			truncate(entry.Content, 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d entries\n", len(entries))
	}

	return nil
}
