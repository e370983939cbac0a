// Package core implements the pipeline phases: cleaning raw transactions,
// aggregating them into a daily revenue series, and running the forecasting
// and segmentation branches.
package core

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/demandlab/demandcast/schema"
	"github.com/shopspring/decimal"
)

// timestampLayouts are accepted order date formats, tried in order.
var timestampLayouts = []string{time.RFC3339, time.DateOnly, "2006-01-02 15:04:05"}

// CleanRecords is the trust boundary between raw input and the pipeline.
// Exact duplicates are removed first, then records with missing or
// uncoercible fields are dropped, and the survivors are coerced into
// canonical transactions sorted by timestamp. Returns DataIntegrityError
// when nothing usable remains.
func CleanRecords(raw []schema.RawRecord) ([]schema.TransactionRecord, schema.CleanStats, error) {
	stats := schema.CleanStats{Input: len(raw)}

	seen := make(map[schema.RawRecord]struct{}, len(raw))
	records := make([]schema.TransactionRecord, 0, len(raw))

	for _, r := range raw {
		if _, dup := seen[r]; dup {
			stats.Duplicates++
			continue
		}
		seen[r] = struct{}{}

		record, ok := coerceRecord(r)
		if !ok {
			stats.Dropped++
			continue
		}
		records = append(records, record)
	}

	stats.Output = len(records)
	if stats.Output == 0 {
		return nil, stats, &schema.DataIntegrityError{Stats: stats}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, stats, nil
}

// coerceRecord parses one raw record into canonical form. Any missing field,
// parse failure, non-positive quantity or negative price disqualifies the
// record.
func coerceRecord(r schema.RawRecord) (schema.TransactionRecord, bool) {
	orderID := strings.TrimSpace(r.OrderID)
	customerID := strings.TrimSpace(r.CustomerID)
	if orderID == "" || customerID == "" {
		return schema.TransactionRecord{}, false
	}

	ts, ok := parseTimestamp(strings.TrimSpace(r.OrderDate))
	if !ok {
		return schema.TransactionRecord{}, false
	}

	qty, err := strconv.Atoi(strings.TrimSpace(r.Quantity))
	if err != nil || qty < 1 {
		return schema.TransactionRecord{}, false
	}

	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil || price.IsNegative() {
		return schema.TransactionRecord{}, false
	}

	return schema.TransactionRecord{
		OrderID:    orderID,
		CustomerID: customerID,
		Timestamp:  ts,
		Quantity:   qty,
		UnitPrice:  price,
		LineTotal:  price.Mul(decimal.NewFromInt(int64(qty))),
	}, true
}

// parseTimestamp tries each accepted layout and normalizes to UTC.
func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
