// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/demandlab/demandcast/internal/contract"
	"github.com/demandlab/demandcast/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteForecast prints the forecast results using the configured output format.
func (ow *OutWriter) WriteForecast(out *schema.ForecastOutput, cfg *contract.Config, duration time.Duration) error {
	return PrintForecastResults(out, cfg, duration)
}

// WriteSegments prints the segmentation results using the configured output format.
func (ow *OutWriter) WriteSegments(out *schema.SegmentOutput, cfg *contract.Config, duration time.Duration) error {
	return PrintSegmentResults(out, cfg, duration)
}

// WriteRun prints the results of a full pipeline run. Branch failures are
// reported as warnings; the surviving branch is still printed.
func (ow *OutWriter) WriteRun(result *schema.RunResult, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.TextOut {
		fmt.Printf("Cleaned %d of %d records (%d dropped, %d duplicates)\n",
			result.Stats.Output, result.Stats.Input, result.Stats.Dropped, result.Stats.Duplicates)
	}

	// Each branch gets its own file so one does not truncate the other.
	forecastCfg := cfg
	segmentCfg := cfg
	if cfg.OutputFile != "" {
		forecastCfg = cfg.Clone()
		forecastCfg.OutputFile = deriveOutputFile(cfg.OutputFile, "forecast")
		segmentCfg = cfg.Clone()
		segmentCfg.OutputFile = deriveOutputFile(cfg.OutputFile, "segments")
	}

	if result.ForecastErr != nil {
		contract.LogWarn("forecasting branch failed", result.ForecastErr)
	} else if err := ow.WriteForecast(result.Forecast, forecastCfg, duration); err != nil {
		return err
	}

	if result.SegmentErr != nil {
		contract.LogWarn("segmentation branch failed", result.SegmentErr)
	} else if err := ow.WriteSegments(result.Segments, segmentCfg, duration); err != nil {
		return err
	}

	return nil
}

// deriveOutputFile inserts a branch suffix before the file extension.
func deriveOutputFile(path, suffix string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + "." + suffix + ext
}

// GetMaxTableIDWidth calculates the maximum width for customer identifiers
// in table output based on terminal width.
func GetMaxTableIDWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric columns plus borders and padding
	available := termWidth - 46
	if available < 12 {
		return 12
	}
	if available > 48 {
		return 48
	}
	return available
}

// truncateID shortens an identifier for table display.
func truncateID(id string, maxWidth int) string {
	if len(id) <= maxWidth {
		return id
	}
	if maxWidth <= 3 {
		return id[:maxWidth]
	}
	return id[:maxWidth-3] + "..."
}
