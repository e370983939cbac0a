// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/demandlab/demandcast/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Demandcast MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Demandcast Pipeline Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: run_pipeline ---
	s.AddTool(mcp.NewTool("run_pipeline",
		mcp.WithDescription("Run the full sales pipeline: clean, aggregate, forecast and segment."),
		mcp.WithString("input", mcp.Description("Path to the transactions CSV (defaults to the configured input).")),
		mcp.WithNumber("horizon", mcp.Description("Forecast length in days. Defaults to 90.")),
		mcp.WithNumber("clusters", mcp.Description("Number of customer segments. Defaults to 4.")),
		mcp.WithString("snapshot", mcp.Description("RFM reference date in YYYY-MM-DD form.")),
	), h.handleRunPipeline)

	// --- 2. Tool: run_forecast ---
	s.AddTool(mcp.NewTool("run_forecast",
		mcp.WithDescription("Forecast daily revenue with the seasonal and autoregressive models."),
		mcp.WithString("input", mcp.Description("Path to the transactions CSV.")),
		mcp.WithNumber("horizon", mcp.Description("Forecast length in days. Defaults to 90.")),
	), h.handleRunForecast)

	// --- 3. Tool: segment_customers ---
	s.AddTool(mcp.NewTool("segment_customers",
		mcp.WithDescription("Cluster customers into segments from RFM features."),
		mcp.WithString("input", mcp.Description("Path to the transactions CSV.")),
		mcp.WithNumber("clusters", mcp.Description("Number of customer segments. Defaults to 4.")),
		mcp.WithString("snapshot", mcp.Description("RFM reference date in YYYY-MM-DD form.")),
	), h.handleSegmentCustomers)

	return s
}

// StartMCPServer starts the Demandcast MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
