// ABOUTME: CLI command to search stored memories
// ABOUTME: Supports keyword and semantic recall with table or JSON output
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	recallLimit int
)

// NewRecallCmd creates the recall command
func NewRecallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recall <query>",
		Short: "Search memories",
		Long: `Search memories using keyword matching, with semantic similarity
merged in when OpenAI is configured.

Examples:
  slm recall "python programming"
  slm recall --limit 10 "machine learning"
  slm recall --format json "API keys"`,
		Args: cobra.ExactArgs(1),
		RunE: runRecall,
	}

	cmd.Flags().IntVar(&recallLimit, "limit", 5, "Maximum results to return")

	return cmd
}

func runRecall(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(recallLimit, "limit"); err != nil {
		return err
	}

	query := args[0]

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	results, err := store.Recall(query, recallLimit)
	if err != nil {
		return fmt.Errorf("searching memories: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No memories found for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tCATEGORY\tID\tCONTENT\n")
	fmt.Fprintf(w, "-----\t--------\t--\t-------\n")

	for _, result := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\n",
			result.RelevanceScore,
			truncate(result.Entry.Category, 15),
			truncate(result.Entry.ID, 25),
			truncate(result.Entry.Content, 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}

	return nil
}
