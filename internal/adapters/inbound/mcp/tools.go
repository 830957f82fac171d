package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/iceready/internal/adapters/outbound/config"
	"github.com/abdidvp/iceready/internal/adapters/outbound/snowflake"
	"github.com/abdidvp/iceready/internal/application"
	"github.com/abdidvp/iceready/internal/domain"
)

// registerTools registers all IceReady MCP tools on the given server.
func registerTools(s *server.MCPServer, configDir string) {
	// 1. iceready_audit_database
	s.AddTool(
		mcplib.NewTool("iceready_audit_database",
			mcplib.WithDescription("Audit a Snowflake database for Iceberg readiness and return the full report as JSON"),
			mcplib.WithString("database",
				mcplib.Required(),
				mcplib.Description("Database to audit"),
			),
			mcplib.WithString("schema",
				mcplib.Description("Restrict the audit to one schema"),
			),
		),
		handleAuditDatabase(configDir),
	)

	// 2. iceready_list_databases
	s.AddTool(
		mcplib.NewTool("iceready_list_databases",
			mcplib.WithDescription("List databases visible to the configured Snowflake session"),
		),
		handleListDatabases(configDir),
	)

	// 3. iceready_evaluate_table
	s.AddTool(
		mcplib.NewTool("iceready_evaluate_table",
			mcplib.WithDescription("Classify a single table descriptor (JSON) against the Iceberg readiness rules without connecting to Snowflake"),
			mcplib.WithString("descriptor",
				mcplib.Required(),
				mcplib.Description(`Table descriptor JSON, e.g. {"schema":"PUBLIC","name":"ORDERS","kind":"PERMANENT","columns":[{"name":"ID","data_type":"NUMBER"}],"clustering_keys":["ID"]}`),
			),
		),
		handleEvaluateTable,
	)
}

// newService loads config, connects, and builds the audit service. The MCP
// narrative is always skipped: tool consumers want the structured payload.
func newService(configDir string) (*application.AuditService, *snowflake.Collector, error) {
	cfg, err := config.New().Load(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	collector, err := snowflake.Connect(cfg.Connection)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to snowflake: %w", err)
	}
	return application.NewAuditService(collector, nil, cfg), collector, nil
}

func handleAuditDatabase(configDir string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		database, err := request.RequireString("database")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		schema := request.GetString("schema", "")

		svc, collector, err := newService(configDir)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		defer collector.Close()

		report, err := svc.AuditDatabase(ctx, database, schema)
		if err != nil {
			return errorResult(fmt.Sprintf("audit failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleListDatabases(configDir string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc, collector, err := newService(configDir)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		defer collector.Close()

		names, err := svc.Databases(ctx)
		if err != nil {
			return errorResult(fmt.Sprintf("listing databases failed: %v", err)), nil
		}
		return textResult(strings.Join(names, "\n")), nil
	}
}

func handleEvaluateTable(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	raw, err := request.RequireString("descriptor")
	if err != nil {
		return errorResult(err.Error()), nil
	}

	var descriptor domain.TableDescriptor
	if err := json.Unmarshal([]byte(raw), &descriptor); err != nil {
		return errorResult(fmt.Sprintf("parsing descriptor: %v", err)), nil
	}

	audit, err := application.EvaluateTable(descriptor)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(audit)
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
