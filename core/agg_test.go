package core

import (
	"testing"
	"time"

	"github.com/demandlab/demandcast/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// txn builds a cleaned transaction on the given day offset.
func txn(day int, hour int, total float64) schema.TransactionRecord {
	return schema.TransactionRecord{
		OrderID:    "o",
		CustomerID: "c",
		Timestamp:  time.Date(2024, 3, 1+day, hour, 0, 0, 0, time.UTC),
		Quantity:   1,
		LineTotal:  decimal.NewFromFloat(total),
	}
}

// TestAggregateDailySumsPerDay checks that multiple transactions in one day
// collapse into one bucket.
func TestAggregateDailySumsPerDay(t *testing.T) {
	series := AggregateDaily([]schema.TransactionRecord{
		txn(0, 9, 10.10),
		txn(0, 18, 5.25),
		txn(1, 12, 7),
	})

	require.Len(t, series, 2)
	assert.InDelta(t, 15.35, series[0].Value, 1e-9)
	assert.InDelta(t, 7.0, series[1].Value, 1e-9)
}

// TestAggregateDailyFillsGaps checks that quiet days appear with zero
// revenue so the series stays dense.
func TestAggregateDailyFillsGaps(t *testing.T) {
	series := AggregateDaily([]schema.TransactionRecord{
		txn(0, 10, 100),
		txn(4, 10, 50),
	})

	require.Len(t, series, 5)
	assert.InDelta(t, 100.0, series[0].Value, 1e-9)
	for i := 1; i < 4; i++ {
		assert.Zero(t, series[i].Value)
	}
	assert.InDelta(t, 50.0, series[4].Value, 1e-9)

	// Dates are consecutive UTC midnights.
	for i, p := range series {
		assert.Equal(t, time.Date(2024, 3, 1+i, 0, 0, 0, 0, time.UTC), p.Date)
	}
}

// TestAggregateDailySingleDay checks the one-day edge case.
func TestAggregateDailySingleDay(t *testing.T) {
	series := AggregateDaily([]schema.TransactionRecord{txn(0, 0, 42)})
	require.Len(t, series, 1)
	assert.InDelta(t, 42.0, series[0].Value, 1e-9)
}

// TestAggregateDailyEmpty checks the nil passthrough.
func TestAggregateDailyEmpty(t *testing.T) {
	assert.Nil(t, AggregateDaily(nil))
}
