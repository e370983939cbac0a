package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/demandlab/demandcast/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	fileSchema := parquet.SchemaOf(new(PipelineRun))
	require.NotNil(t, fileSchema)

	expectedColumns := []string{
		"run_id",
		"start_time",
		"end_time",
		"run_duration_ms",
		"input_records",
		"clean_records",
		"dropped_records",
		"duplicate_records",
		"config_params",
	}

	for _, colName := range expectedColumns {
		col, ok := fileSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestForecastStructTags(t *testing.T) {
	fileSchema := parquet.SchemaOf(new(Forecast))
	require.NotNil(t, fileSchema)

	expectedColumns := []string{
		"run_id",
		"model_name",
		"forecast_date",
		"revenue",
		"lower_bound",
		"upper_bound",
	}

	for _, colName := range expectedColumns {
		col, ok := fileSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWritePipelineRunsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "pipeline_runs.parquet")

	now := time.Now()
	endTime := now.Add(2 * time.Second)
	durationMs := int64(2000)
	cleanRecords := int64(95)
	config := `{"horizon":90,"clusters":4}`

	data := []PipelineRun{
		// All fields populated
		{
			RunID:         now.UnixMilli(),
			StartTime:     now,
			EndTime:       &endTime,
			RunDurationMs: &durationMs,
			CleanRecords:  &cleanRecords,
			ConfigParams:  &config,
		},
		// Run still in flight, nullable fields are nil
		{
			RunID:     now.UnixMilli() + 1,
			StartTime: now,
		},
	}

	err := WritePipelineRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[PipelineRun](file)
	defer reader.Close()

	readData := make([]PipelineRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	assert.Equal(t, data[0].RunID, readData[0].RunID, "RunID should match")
	assert.WithinDuration(t, data[0].StartTime, readData[0].StartTime, time.Nanosecond)
	require.NotNil(t, readData[0].EndTime, "EndTime should not be nil")
	assert.WithinDuration(t, *data[0].EndTime, *readData[0].EndTime, time.Nanosecond)
	require.NotNil(t, readData[0].RunDurationMs, "RunDurationMs should not be nil")
	assert.Equal(t, durationMs, *readData[0].RunDurationMs)
	require.NotNil(t, readData[0].ConfigParams, "ConfigParams should not be nil")
	assert.Equal(t, config, *readData[0].ConfigParams)

	assert.Nil(t, readData[1].EndTime, "EndTime should be nil")
	assert.Nil(t, readData[1].RunDurationMs, "RunDurationMs should be nil")
	assert.Nil(t, readData[1].CleanRecords, "CleanRecords should be nil")
	assert.Nil(t, readData[1].ConfigParams, "ConfigParams should be nil")
}

func TestWriteForecastsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "forecasts.parquet")

	lower := 90.5
	upper := 130.5
	data := []Forecast{
		{RunID: 1, ModelName: "seasonal", ForecastDate: "2024-04-01", Revenue: 110.5, LowerBound: &lower, UpperBound: &upper},
		{RunID: 1, ModelName: "autoregressive", ForecastDate: "2024-04-01", Revenue: 108.2},
	}

	require.NoError(t, WriteForecastsParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[Forecast](file)
	defer reader.Close()

	readData := make([]Forecast, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	assert.Equal(t, len(data), n)

	assert.Equal(t, "seasonal", readData[0].ModelName)
	require.NotNil(t, readData[0].LowerBound, "LowerBound should not be nil")
	assert.InDelta(t, lower, *readData[0].LowerBound, 1e-9)
	assert.Nil(t, readData[1].LowerBound, "Point-only model should have nil LowerBound")
	assert.Nil(t, readData[1].UpperBound, "Point-only model should have nil UpperBound")
}

func TestWriteSegmentsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "segments.parquet")

	data := []Segment{
		{RunID: 1, CustomerID: "alice", RecencyDays: 3, Frequency: 5, Monetary: 250.5, SegmentID: 1},
		{RunID: 1, CustomerID: "bob", RecencyDays: 40, Frequency: 1, Monetary: 20, SegmentID: 0},
	}

	require.NoError(t, WriteSegmentsParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[Segment](file)
	defer reader.Close()

	readData := make([]Segment, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	assert.Equal(t, len(data), n)

	assert.Equal(t, "alice", readData[0].CustomerID)
	assert.Equal(t, int64(1), readData[0].SegmentID)
	assert.InDelta(t, 250.5, readData[0].Monetary, 1e-9)
}

func TestWriteDailySalesParquet_EmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_daily_sales.parquet")

	err := WriteDailySalesParquet([]DailySales{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteTopCustomersParquet_InvalidPath(t *testing.T) {
	data := []TopCustomer{{RunID: 1, RevenueRank: 1, CustomerID: "alice", Revenue: 250.5}}
	err := WriteTopCustomersParquet(data, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestConvertRecords(t *testing.T) {
	endTime := time.Now()
	cleanRecords := int64(42)
	runs := ConvertPipelineRunRecords([]schema.PipelineRunRecord{
		{RunID: 7, StartTime: endTime.Add(-time.Minute), EndTime: &endTime, CleanRecords: &cleanRecords},
	})
	require.Len(t, runs, 1)
	assert.Equal(t, int64(7), runs[0].RunID)
	assert.Equal(t, &endTime, runs[0].EndTime)
	assert.Equal(t, &cleanRecords, runs[0].CleanRecords)

	sales := ConvertDailySalesRecords([]schema.DailySalesRecord{
		{RunID: 7, SalesDate: "2024-04-01", Revenue: 120, RollingAvg7d: 110, RollingSum30d: 3000},
	})
	require.Len(t, sales, 1)
	assert.Equal(t, "2024-04-01", sales[0].SalesDate)
	assert.InDelta(t, 3000.0, sales[0].RollingSum30d, 1e-9)

	segments := ConvertSegmentRecords([]schema.SegmentRecord{
		{RunID: 7, CustomerID: "alice", RecencyDays: 3, Frequency: 5, Monetary: 250.5, Segment: 2},
	})
	require.Len(t, segments, 1)
	assert.Equal(t, int64(2), segments[0].SegmentID)

	top := ConvertTopCustomerRecords([]schema.TopCustomerRecord{
		{RunID: 7, RevenueRank: 1, CustomerID: "alice", Revenue: 250.5},
	})
	require.Len(t, top, 1)
	assert.Equal(t, int64(1), top[0].RevenueRank)
}
