package sink

import (
	"errors"
	"fmt"

	"github.com/demandlab/demandcast/internal/parquet"
)

// ExecuteExport performs the actual export of persisted pipeline data to
// Parquet files. Each table becomes one file next to the given path.
func ExecuteExport(store *Store, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get sink status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no pipeline data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total pipeline runs: %d\n", status.TotalRuns)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve pipeline runs: %w", err)
	}
	sales, err := store.GetAllDailySales()
	if err != nil {
		return fmt.Errorf("failed to retrieve daily sales: %w", err)
	}
	forecasts, err := store.GetAllForecasts()
	if err != nil {
		return fmt.Errorf("failed to retrieve forecasts: %w", err)
	}
	segments, err := store.GetAllSegments()
	if err != nil {
		return fmt.Errorf("failed to retrieve segments: %w", err)
	}
	topCustomers, err := store.GetAllTopCustomers()
	if err != nil {
		return fmt.Errorf("failed to retrieve top customers: %w", err)
	}

	runsFile := outputFile + ".pipeline_runs.parquet"
	if err := parquet.WritePipelineRunsParquet(parquet.ConvertPipelineRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write pipeline runs: %w", err)
	}
	fmt.Printf("Exported %d pipeline runs to: %s\n", len(runs), runsFile)

	salesFile := outputFile + ".daily_sales.parquet"
	if err := parquet.WriteDailySalesParquet(parquet.ConvertDailySalesRecords(sales), salesFile); err != nil {
		return fmt.Errorf("failed to write daily sales: %w", err)
	}
	fmt.Printf("Exported %d daily sales rows to: %s\n", len(sales), salesFile)

	forecastsFile := outputFile + ".forecasts.parquet"
	if err := parquet.WriteForecastsParquet(parquet.ConvertForecastRecords(forecasts), forecastsFile); err != nil {
		return fmt.Errorf("failed to write forecasts: %w", err)
	}
	fmt.Printf("Exported %d forecast rows to: %s\n", len(forecasts), forecastsFile)

	segmentsFile := outputFile + ".customer_segments.parquet"
	if err := parquet.WriteSegmentsParquet(parquet.ConvertSegmentRecords(segments), segmentsFile); err != nil {
		return fmt.Errorf("failed to write customer segments: %w", err)
	}
	fmt.Printf("Exported %d segment rows to: %s\n", len(segments), segmentsFile)

	topFile := outputFile + ".top_customers.parquet"
	if err := parquet.WriteTopCustomersParquet(parquet.ConvertTopCustomerRecords(topCustomers), topFile); err != nil {
		return fmt.Errorf("failed to write top customers: %w", err)
	}
	fmt.Printf("Exported %d leaderboard rows to: %s\n", len(topCustomers), topFile)

	return nil
}
