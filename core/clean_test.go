package core

import (
	"errors"
	"testing"

	"github.com/demandlab/demandcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawRecord builds a raw input line with sane defaults.
func rawRecord(orderID, customerID, date, qty, price string) schema.RawRecord {
	return schema.RawRecord{
		OrderID:    orderID,
		CustomerID: customerID,
		OrderDate:  date,
		Quantity:   qty,
		Price:      price,
	}
}

// TestCleanRecordsHappyPath checks coercion, totals and sorting.
func TestCleanRecordsHappyPath(t *testing.T) {
	raw := []schema.RawRecord{
		rawRecord("o2", "bob", "2024-03-05", "3", "9.99"),
		rawRecord("o1", "alice", "2024-03-01T10:30:00Z", "2", "10.50"),
	}

	records, stats, err := CleanRecords(raw)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, schema.CleanStats{Input: 2, Output: 2}, stats)

	// Sorted by timestamp ascending.
	assert.Equal(t, "o1", records[0].OrderID)
	assert.Equal(t, "o2", records[1].OrderID)

	assert.Equal(t, 2, records[0].Quantity)
	assert.Equal(t, "21", records[0].LineTotal.String())
	assert.Equal(t, "29.97", records[1].LineTotal.String())
}

// TestCleanRecordsDuplicates checks that exact duplicates are removed and
// counted separately from drops.
func TestCleanRecordsDuplicates(t *testing.T) {
	line := rawRecord("o1", "alice", "2024-03-01", "1", "5")
	raw := []schema.RawRecord{line, line, line}

	records, stats, err := CleanRecords(raw)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 2, stats.Duplicates)
	assert.Equal(t, 0, stats.Dropped)
}

// TestCleanRecordsDrops covers every disqualifying field.
func TestCleanRecordsDrops(t *testing.T) {
	tests := []struct {
		name string
		rec  schema.RawRecord
	}{
		{"missing order id", rawRecord("", "alice", "2024-03-01", "1", "5")},
		{"missing customer id", rawRecord("o1", "  ", "2024-03-01", "1", "5")},
		{"missing date", rawRecord("o1", "alice", "", "1", "5")},
		{"unparseable date", rawRecord("o1", "alice", "03/01/2024", "1", "5")},
		{"unparseable quantity", rawRecord("o1", "alice", "2024-03-01", "two", "5")},
		{"zero quantity", rawRecord("o1", "alice", "2024-03-01", "0", "5")},
		{"negative quantity", rawRecord("o1", "alice", "2024-03-01", "-2", "5")},
		{"unparseable price", rawRecord("o1", "alice", "2024-03-01", "1", "$5")},
		{"negative price", rawRecord("o1", "alice", "2024-03-01", "1", "-0.01")},
	}

	keeper := rawRecord("ok", "carol", "2024-03-02", "1", "1")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, stats, err := CleanRecords([]schema.RawRecord{tt.rec, keeper})
			require.NoError(t, err)
			assert.Len(t, records, 1)
			assert.Equal(t, 1, stats.Dropped)
		})
	}
}

// TestCleanRecordsNothingUsable checks the integrity error when every record
// is dropped.
func TestCleanRecordsNothingUsable(t *testing.T) {
	raw := []schema.RawRecord{
		rawRecord("", "", "", "", ""),
		rawRecord("o1", "alice", "bad-date", "1", "5"),
	}

	_, stats, err := CleanRecords(raw)
	require.Error(t, err)

	var integrityErr *schema.DataIntegrityError
	require.True(t, errors.As(err, &integrityErr))
	assert.Equal(t, 2, stats.Input)
	assert.Equal(t, 0, stats.Output)
}

// TestCleanRecordsZeroPriceKept checks that free items survive cleaning;
// only negative prices are invalid.
func TestCleanRecordsZeroPriceKept(t *testing.T) {
	records, _, err := CleanRecords([]schema.RawRecord{
		rawRecord("o1", "alice", "2024-03-01", "2", "0"),
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].LineTotal.IsZero())
}
