// Package parquet provides data structures and functions for exporting
// pipeline data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/demandlab/demandcast/schema"
	"github.com/parquet-go/parquet-go"
)

// PipelineRun represents a single pipeline run with metadata.
// This struct maps to the demandcast_pipeline_runs database table.
type PipelineRun struct {
	// RunID is the unique identifier for this pipeline run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// InputRecords is the raw record count received by the cleaner (nullable)
	InputRecords *int64 `parquet:"input_records,optional,snappy"`

	// CleanRecords is the canonical record count produced (nullable)
	CleanRecords *int64 `parquet:"clean_records,optional,snappy"`

	// DroppedRecords is the count removed for invalid fields (nullable)
	DroppedRecords *int64 `parquet:"dropped_records,optional,snappy"`

	// DuplicateRecords is the exact duplicate count removed (nullable)
	DuplicateRecords *int64 `parquet:"duplicate_records,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// DailySales represents one aggregated day of revenue with rolling KPIs.
// This struct maps to the demandcast_daily_sales database table.
type DailySales struct {
	RunID         int64   `parquet:"run_id,snappy"`
	SalesDate     string  `parquet:"sales_date,snappy"`
	Revenue       float64 `parquet:"revenue,snappy"`
	RollingAvg7d  float64 `parquet:"rolling_avg_7d,snappy"`
	RollingSum30d float64 `parquet:"rolling_sum_30d,snappy"`
}

// Forecast represents one forecasted day from one model.
// This struct maps to the demandcast_forecasts database table.
type Forecast struct {
	RunID        int64  `parquet:"run_id,snappy"`
	ModelName    string `parquet:"model_name,snappy"`
	ForecastDate string `parquet:"forecast_date,snappy"`

	Revenue float64 `parquet:"revenue,snappy"`

	// LowerBound and UpperBound are nil for the point-only model
	LowerBound *float64 `parquet:"lower_bound,optional,snappy"`
	UpperBound *float64 `parquet:"upper_bound,optional,snappy"`
}

// Segment represents one customer with RFM features and a cluster label.
// This struct maps to the demandcast_customer_segments database table.
type Segment struct {
	RunID       int64   `parquet:"run_id,snappy"`
	CustomerID  string  `parquet:"customer_id,snappy"`
	RecencyDays int64   `parquet:"recency_days,snappy"`
	Frequency   int64   `parquet:"frequency,snappy"`
	Monetary    float64 `parquet:"monetary,snappy"`
	SegmentID   int64   `parquet:"segment,snappy"`
}

// TopCustomer represents one row of the revenue leaderboard.
// This struct maps to the demandcast_top_customers database table.
type TopCustomer struct {
	RunID       int64   `parquet:"run_id,snappy"`
	RevenueRank int64   `parquet:"revenue_rank,snappy"`
	CustomerID  string  `parquet:"customer_id,snappy"`
	Revenue     float64 `parquet:"revenue,snappy"`
}

// writeParquet writes a slice of records to a Parquet file using struct
// schema inference from the type's tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WritePipelineRunsParquet writes a slice of PipelineRun structs to a Parquet file.
func WritePipelineRunsParquet(data []PipelineRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDailySalesParquet writes a slice of DailySales structs to a Parquet file.
func WriteDailySalesParquet(data []DailySales, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteForecastsParquet writes a slice of Forecast structs to a Parquet file.
func WriteForecastsParquet(data []Forecast, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSegmentsParquet writes a slice of Segment structs to a Parquet file.
func WriteSegmentsParquet(data []Segment, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteTopCustomersParquet writes a slice of TopCustomer structs to a Parquet file.
func WriteTopCustomersParquet(data []TopCustomer, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertPipelineRunRecords converts schema.PipelineRunRecord to PipelineRun for Parquet export.
func ConvertPipelineRunRecords(records []schema.PipelineRunRecord) []PipelineRun {
	result := make([]PipelineRun, len(records))
	for i, record := range records {
		result[i] = PipelineRun{
			RunID:            record.RunID,
			StartTime:        record.StartTime,
			EndTime:          record.EndTime,
			RunDurationMs:    record.RunDurationMs,
			InputRecords:     record.InputRecords,
			CleanRecords:     record.CleanRecords,
			DroppedRecords:   record.DroppedRecords,
			DuplicateRecords: record.DuplicateRecords,
			ConfigParams:     record.ConfigParams,
		}
	}
	return result
}

// ConvertDailySalesRecords converts schema.DailySalesRecord to DailySales for Parquet export.
func ConvertDailySalesRecords(records []schema.DailySalesRecord) []DailySales {
	result := make([]DailySales, len(records))
	for i, record := range records {
		result[i] = DailySales{
			RunID:         record.RunID,
			SalesDate:     record.SalesDate,
			Revenue:       record.Revenue,
			RollingAvg7d:  record.RollingAvg7d,
			RollingSum30d: record.RollingSum30d,
		}
	}
	return result
}

// ConvertForecastRecords converts schema.ForecastRecord to Forecast for Parquet export.
func ConvertForecastRecords(records []schema.ForecastRecord) []Forecast {
	result := make([]Forecast, len(records))
	for i, record := range records {
		result[i] = Forecast{
			RunID:        record.RunID,
			ModelName:    record.ModelName,
			ForecastDate: record.ForecastDate,
			Revenue:      record.Revenue,
			LowerBound:   record.LowerBound,
			UpperBound:   record.UpperBound,
		}
	}
	return result
}

// ConvertSegmentRecords converts schema.SegmentRecord to Segment for Parquet export.
func ConvertSegmentRecords(records []schema.SegmentRecord) []Segment {
	result := make([]Segment, len(records))
	for i, record := range records {
		result[i] = Segment{
			RunID:       record.RunID,
			CustomerID:  record.CustomerID,
			RecencyDays: record.RecencyDays,
			Frequency:   record.Frequency,
			Monetary:    record.Monetary,
			SegmentID:   record.Segment,
		}
	}
	return result
}

// ConvertTopCustomerRecords converts schema.TopCustomerRecord to TopCustomer for Parquet export.
func ConvertTopCustomerRecords(records []schema.TopCustomerRecord) []TopCustomer {
	result := make([]TopCustomer, len(records))
	for i, record := range records {
		result[i] = TopCustomer{
			RunID:       record.RunID,
			RevenueRank: record.RevenueRank,
			CustomerID:  record.CustomerID,
			Revenue:     record.Revenue,
		}
	}
	return result
}
