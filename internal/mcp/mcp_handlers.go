package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/demandlab/demandcast/core"
	"github.com/demandlab/demandcast/internal/contract"
	"github.com/demandlab/demandcast/internal/ingest"
	"github.com/demandlab/demandcast/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// configFromRequest clones the base config and applies request overrides.
func (h *toolHandler) configFromRequest(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("input", ""); p != "" {
		cfg.InputPath = p
	}
	if hd := request.GetInt("horizon", 0); hd > 0 {
		cfg.HorizonDays = hd
	}
	if k := request.GetInt("clusters", 0); k > 0 {
		cfg.Clusters = k
	}
	if s := request.GetString("snapshot", ""); s != "" {
		snapshot, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, fmt.Errorf("invalid snapshot date %q: %w", s, err)
		}
		cfg.Snapshot = snapshot.UTC()
	}
	if cfg.InputPath == "" {
		return nil, fmt.Errorf("--input is required")
	}
	return cfg, nil
}

func (h *toolHandler) handleRunPipeline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid pipeline parameters: %v", err)), nil
	}

	raw, err := ingest.ReadCSV(cfg.InputPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	result, err := core.ExecuteRun(ctx, cfg, raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("pipeline failed: %v", err)), nil
	}

	payload := map[string]any{
		"stats":  result.Stats,
		"series": renderSeries(result.Series),
	}
	if result.ForecastErr != nil {
		payload["forecast_error"] = result.ForecastErr.Error()
	} else {
		payload["forecast"] = result.Forecast
	}
	if result.SegmentErr != nil {
		payload["segment_error"] = result.SegmentErr.Error()
	} else {
		payload["segments"] = result.Segments
	}

	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRunForecast(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid forecast parameters: %v", err)), nil
	}

	raw, err := ingest.ReadCSV(cfg.InputPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	series, forecast, err := core.ExecuteForecast(ctx, cfg, raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("forecast failed: %v", err)), nil
	}

	payload := map[string]any{
		"series":   renderSeries(series),
		"forecast": forecast,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSegmentCustomers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid segmentation parameters: %v", err)), nil
	}

	raw, err := ingest.ReadCSV(cfg.InputPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	segments, err := core.ExecuteSegment(ctx, cfg, raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("segmentation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(segments, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// renderSeries converts the daily series into a compact JSON-friendly shape.
func renderSeries(series []schema.DailySalesPoint) []map[string]any {
	rendered := make([]map[string]any, len(series))
	for i, p := range series {
		rendered[i] = map[string]any{
			"date":    p.Date.Format(time.DateOnly),
			"revenue": p.Value,
		}
	}
	return rendered
}
