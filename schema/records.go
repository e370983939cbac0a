package schema

import "time"

// PipelineRunRecord is a pipeline run row read back from the result sink.
// Completion fields are nil for runs that never finished.
type PipelineRunRecord struct {
	RunID            int64
	StartTime        time.Time
	EndTime          *time.Time
	RunDurationMs    *int64
	InputRecords     *int64
	CleanRecords     *int64
	DroppedRecords   *int64
	DuplicateRecords *int64
	ConfigParams     *string
}

// DailySalesRecord is one persisted day of the aggregated series with its
// rolling KPI columns.
type DailySalesRecord struct {
	RunID         int64
	SalesDate     string // YYYY-MM-DD
	Revenue       float64
	RollingAvg7d  float64
	RollingSum30d float64
}

// ForecastRecord is one persisted forecast point. Bounds are nil for the
// point-only model.
type ForecastRecord struct {
	RunID        int64
	ModelName    string
	ForecastDate string // YYYY-MM-DD
	Revenue      float64
	LowerBound   *float64
	UpperBound   *float64
}

// SegmentRecord is one persisted customer with RFM features and its segment.
type SegmentRecord struct {
	RunID       int64
	CustomerID  string
	RecencyDays int64
	Frequency   int64
	Monetary    float64
	Segment     int64
}

// TopCustomerRecord is one persisted leaderboard row.
type TopCustomerRecord struct {
	RunID       int64
	RevenueRank int64
	CustomerID  string
	Revenue     float64
}

// SinkStatus summarizes the state of the result sink.
type SinkStatus struct {
	Backend     string
	Connected   bool
	TotalRuns   int64
	LastRunID   int64
	LastRunTime time.Time
	TableSizes  map[string]int64
}
