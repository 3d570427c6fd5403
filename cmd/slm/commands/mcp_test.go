// ABOUTME: Tests for the MCP command structure
// ABOUTME: Verifies command wiring without starting a stdio server

package commands

import (
	"strings"
	"testing"
)

func TestNewMCPCmd(t *testing.T) {
	cmd := NewMCPCmd()

	if cmd.Use != "mcp" {
		t.Errorf("Use = %q, want mcp", cmd.Use)
	}
	if cmd.RunE == nil {
		t.Error("RunE should be set")
	}
	if !strings.Contains(cmd.Example, "claude_desktop_config.json") {
		t.Error("Example should show Claude Desktop configuration")
	}
}
