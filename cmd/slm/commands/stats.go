// ABOUTME: CLI command to show memory database statistics
// ABOUTME: Reports entry counts, categories, sessions, and on-disk size
package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show memory database statistics",
		RunE:  runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("collecting stats: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Database: %s\n", stats.DBPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Size:     %.1f KB\n", float64(stats.DBSizeBytes)/1024)
	fmt.Fprintf(cmd.OutOrStdout(), "Entries:  %d\n", stats.TotalEntries)
	fmt.Fprintf(cmd.OutOrStdout(), "Sessions: %d\n", stats.Sessions)

	if len(stats.ByCategory) > 0 {
		fmt.Fprintln(cmd.OutOrStdout())
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "CATEGORY\tCOUNT\n")
		fmt.Fprintf(w, "--------\t-----\n")

		categories := make([]string, 0, len(stats.ByCategory))
		for category := range stats.ByCategory {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		for _, category := range categories {
			fmt.Fprintf(w, "%s\t%d\n", category, stats.ByCategory[category])
		}
		w.Flush()
	}

	return nil
}
