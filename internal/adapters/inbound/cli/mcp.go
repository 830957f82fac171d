package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/abdidvp/iceready/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the IceReady MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start IceReady MCP server (stdio)",
		Long:  "Start the IceReady MCP server using stdio transport. This lets AI assistants run readiness audits, list databases, and classify table descriptors.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configDir == "" {
				configDir = "."
			}
			s := mcpadapter.NewIceReadyMCPServer(configDir)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&configDir, "config-dir", "", "Directory holding .iceready.yaml (defaults to current working directory)")

	return cmd
}
