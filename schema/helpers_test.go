package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestTruncateToDay normalizes timestamps to UTC midnight.
func TestTruncateToDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	stamp := time.Date(2024, 3, 15, 2, 30, 0, 0, loc) // 2024-03-14 21:30 UTC

	day := TruncateToDay(stamp)
	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), day)
}

// TestDaysBetween counts whole calendar days regardless of time of day.
func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2024, 3, 4, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 3, DaysBetween(a, b))
	assert.Equal(t, -3, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

// TestSeriesHelpers extracts values and spans from a daily series.
func TestSeriesHelpers(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	series := []DailySalesPoint{
		{Date: day, Value: 10},
		{Date: day.AddDate(0, 0, 1), Value: 20},
		{Date: day.AddDate(0, 0, 2), Value: 0},
	}

	assert.Equal(t, []float64{10, 20, 0}, SeriesValues(series))
	assert.Equal(t, 3, SeriesSpanDays(series))
	assert.Equal(t, 0, SeriesSpanDays(nil))
}

// TestErrorMessages checks that domain errors carry actionable context.
func TestErrorMessages(t *testing.T) {
	integrity := &DataIntegrityError{Stats: CleanStats{Input: 5, Dropped: 3, Duplicates: 2}}
	assert.Contains(t, integrity.Error(), "input=5")

	history := &InsufficientHistoryError{HistoryDays: 5, MinDays: 14}
	assert.Contains(t, history.Error(), "history=5")
	assert.Contains(t, history.Error(), "14")

	snapshot := &InvalidSnapshotError{
		CustomerID: "alice",
		Snapshot:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		LastOrder:  time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	assert.Contains(t, snapshot.Error(), "alice")
	assert.Contains(t, snapshot.Error(), "2024-03-05")

	entities := &InsufficientEntitiesError{Entities: 3, Clusters: 8}
	assert.Contains(t, entities.Error(), "entities=3")

	fit := &ModelFitError{Model: AutoregressiveModel, Reason: "optimization diverged"}
	assert.Contains(t, fit.Error(), "autoregressive")
	assert.Contains(t, fit.Error(), "optimization diverged")
}
