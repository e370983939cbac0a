//go:build basic

package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestForecastJSONOutput runs the forecast command end to end and checks the
// JSON payload shape.
func TestForecastJSONOutput(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "forecast.json")
	t.Setenv("DEMANDCAST_SINK_BACKEND", "none")

	require.NoError(t, runDemandcastCommand(t, "forecast",
		"--input", "testdata/transactions.csv",
		"--horizon", "7",
		"--output", "json",
		"--output-file", outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var decoded struct {
		Seasonal       []map[string]any `json:"seasonal"`
		Autoregressive []map[string]any `json:"autoregressive"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Seasonal, 7)
	assert.Len(t, decoded.Autoregressive, 7)
}

// TestSegmentCSVOutput runs the segment command end to end and checks the
// CSV header.
func TestSegmentCSVOutput(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "segments.csv")
	t.Setenv("DEMANDCAST_SINK_BACKEND", "none")

	require.NoError(t, runDemandcastCommand(t, "segment",
		"--input", "testdata/transactions.csv",
		"--clusters", "2",
		"--output", "csv",
		"--output-file", outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "customer_id,recency_days,frequency,monetary,segment")
}
