// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines the slm command tree and shared output settings
package commands

import (
	"github.com/spf13/cobra"
)

// Global flags shared by all subcommands
var (
	verbose      bool
	quiet        bool
	outputFormat string
	dbPathFlag   string
)

const banner = `
███████╗██╗     ███╗   ███╗
██╔════╝██║     ████╗ ████║
███████╗██║     ██╔████╔██║
╚════██║██║     ██║╚██╔╝██║
███████║███████╗██║ ╚═╝ ██║
╚══════╝╚══════╝╚═╝     ╚═╝
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slm",
		Short: "Local-first memory for LLM applications",
		Long: banner + `
SuperLocalMemory stores memories in a single local SQLite database and
exposes them to LLM applications through a CLI, an MCP server, and a
session-scoped chat history adapter.

All data stays on your machine unless you opt into Charm cloud sync.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")
	cmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Path to the memory database (default: ~/.localmemory/memory.db)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewRememberCmd())
	cmd.AddCommand(NewRecallCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewClearCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
