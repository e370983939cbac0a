package cmd

import (
	"github.com/demandlab/demandcast/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Demandcast MCP server",
	Long:  `Launch an MCP server that allows AI agents to run forecasts and customer segmentation via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The progress and log output goes to stderr, keeping stdout
		// clean for the protocol.
		return sharedSetup(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
