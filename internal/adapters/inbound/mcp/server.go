package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewIceReadyMCPServer creates a new MCP server with all IceReady tools and
// resources registered. configDir is the directory holding .iceready.yaml.
func NewIceReadyMCPServer(configDir string) *server.MCPServer {
	s := server.NewMCPServer(
		"iceready",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, configDir)
	registerResources(s)

	return s
}
