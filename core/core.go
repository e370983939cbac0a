package core

import (
	"context"
	"sync"

	"github.com/demandlab/demandcast/core/forecast"
	"github.com/demandlab/demandcast/core/segment"
	"github.com/demandlab/demandcast/internal/contract"
	"github.com/demandlab/demandcast/schema"
)

// ExecuteRun performs a full pipeline run: clean, aggregate, then the
// forecasting and segmentation branches in parallel. The branches are
// isolated: a failure on one side lands in its error slot of the RunResult
// while the other side's results stay intact. Only a cleaning failure aborts
// the run entirely.
func ExecuteRun(ctx context.Context, cfg *contract.Config, raw []schema.RawRecord) (*schema.RunResult, error) {
	// --- 1. Cleaning Phase ---
	records, stats, err := CleanRecords(raw)
	if err != nil {
		return nil, err
	}
	contract.LogInfo("Cleaned %d records (dropped=%d duplicates=%d)",
		stats.Output, stats.Dropped, stats.Duplicates)

	// --- 2. Aggregation Phase ---
	series := AggregateDaily(records)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// --- 3. Model Phases (parallel, isolated) ---
	result := &schema.RunResult{Stats: stats, Series: series}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		result.Forecast, result.ForecastErr = runForecast(cfg, series)
	}()
	go func() {
		defer wg.Done()
		result.Segments, result.SegmentErr = runSegment(cfg, records)
	}()
	wg.Wait()

	return result, nil
}

// ExecuteForecast runs the cleaning, aggregation and forecasting phases only.
func ExecuteForecast(ctx context.Context, cfg *contract.Config, raw []schema.RawRecord) ([]schema.DailySalesPoint, *schema.ForecastOutput, error) {
	records, stats, err := CleanRecords(raw)
	if err != nil {
		return nil, nil, err
	}
	contract.LogInfo("Cleaned %d records (dropped=%d duplicates=%d)",
		stats.Output, stats.Dropped, stats.Duplicates)

	series := AggregateDaily(records)
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	out, err := runForecast(cfg, series)
	if err != nil {
		return series, nil, err
	}
	return series, out, nil
}

// ExecuteSegment runs the cleaning and segmentation phases only.
func ExecuteSegment(ctx context.Context, cfg *contract.Config, raw []schema.RawRecord) (*schema.SegmentOutput, error) {
	records, stats, err := CleanRecords(raw)
	if err != nil {
		return nil, err
	}
	contract.LogInfo("Cleaned %d records (dropped=%d duplicates=%d)",
		stats.Output, stats.Dropped, stats.Duplicates)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return runSegment(cfg, records)
}

func runForecast(cfg *contract.Config, series []schema.DailySalesPoint) (*schema.ForecastOutput, error) {
	seasonal := forecast.DefaultSeasonalConfig()
	seasonal.MinHistoryDays = cfg.MinHistoryDays
	seasonal.Confidence = cfg.Confidence

	engine := forecast.NewEngine(seasonal, forecast.DefaultAutoConfig())
	return engine.Forecast(series, cfg.HorizonDays)
}

func runSegment(cfg *contract.Config, records []schema.TransactionRecord) (*schema.SegmentOutput, error) {
	return segment.NewSegmenter(cfg.Clusters, cfg.Seed).Run(records, cfg.Snapshot)
}
