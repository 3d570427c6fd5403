// ABOUTME: CLI command to store new memories
// ABOUTME: Handles text, file, and stdin input with tags and importance
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/superlocal/memory/internal/models"
)

var (
	rememberFile       string
	rememberTags       []string
	rememberCategory   string
	rememberImportance float64
)

// NewRememberCmd creates the remember command
func NewRememberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remember [text]",
		Short: "Store a new memory",
		Long: `Store a new memory from text, file, or stdin.

Examples:
  slm remember "Met with Alice about project X"
  slm remember --file notes.txt
  slm remember --tags=meeting,project-x --importance 0.8 "Discussed timeline"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRemember,
	}

	cmd.Flags().StringVar(&rememberFile, "file", "", "Read memory from file")
	cmd.Flags().StringSliceVar(&rememberTags, "tags", []string{}, "Tags for memory (comma-separated)")
	cmd.Flags().StringVar(&rememberCategory, "category", models.DefaultCategory, "Category for the memory")
	cmd.Flags().Float64Var(&rememberImportance, "importance", models.DefaultImportance, "Importance from 0.0 to 1.0")

	return cmd
}

func runRemember(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	var text string
	if rememberFile != "" {
		data, err := os.ReadFile(rememberFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		text = string(data)
	} else if len(args) > 0 {
		text = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("no text provided")
	}

	entry, err := models.NewEntry(text, rememberCategory, rememberTags, rememberImportance)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Remember(entry); err != nil {
		return fmt.Errorf("storing memory: %w", err)
	}

	if !quiet {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Remembered %s\n", entry.ID)
	}
	return nil
}
