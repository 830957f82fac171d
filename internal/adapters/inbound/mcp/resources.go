package mcp

import (
	"context"
	"encoding/json"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/iceready/internal/domain/rules"
)

// registerResources registers static reference data on the server.
func registerResources(s *server.MCPServer) {
	s.AddResource(
		mcplib.NewResource(
			"iceready://feature-matrix",
			"Iceberg feature comparison",
			mcplib.WithResourceDescription("Feature support comparison between native Snowflake tables, Snowflake-managed Iceberg, and externally managed Iceberg"),
			mcplib.WithMIMEType("application/json"),
		),
		handleFeatureMatrix,
	)
}

func handleFeatureMatrix(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(rules.FeatureMatrix, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
