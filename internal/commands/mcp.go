package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/moasq/pbxgen/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:    "mcp",
	Short:  "Run the MCP server over stdio",
	Long:   "Starts the pbxgen MCP server over stdio so that agents can generate projects and icons through typed tool calls.",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpserver.Run(cmd.Context(), Version, mcpserver.OpenProject(slog.Default()))
	},
}
