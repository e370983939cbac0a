package core

import (
	"github.com/demandlab/demandcast/schema"
	"github.com/shopspring/decimal"
)

// AggregateDaily buckets transactions into calendar days and sums revenue
// per day. The result is dense: every day between the first and last
// transaction appears exactly once, with zero revenue for quiet days.
// Summation happens in decimal and converts to float only at the boundary.
func AggregateDaily(records []schema.TransactionRecord) []schema.DailySalesPoint {
	if len(records) == 0 {
		return nil
	}

	totals := make(map[int64]decimal.Decimal)
	first := schema.TruncateToDay(records[0].Timestamp)
	last := first
	for _, r := range records {
		day := schema.TruncateToDay(r.Timestamp)
		if day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
		key := day.Unix()
		totals[key] = totals[key].Add(r.LineTotal)
	}

	days := schema.DaysBetween(first, last) + 1
	series := make([]schema.DailySalesPoint, days)
	for i := range days {
		date := first.AddDate(0, 0, i)
		value, _ := totals[date.Unix()].Float64()
		series[i] = schema.DailySalesPoint{Date: date, Value: value}
	}
	return series
}
