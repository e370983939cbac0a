package schema

import "time"

// TruncateToDay truncates a timestamp to UTC midnight of its calendar day.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from a to b.
// Both inputs are truncated to day boundaries first.
func DaysBetween(a, b time.Time) int {
	a = TruncateToDay(a)
	b = TruncateToDay(b)
	return int(b.Sub(a).Hours() / 24)
}

// SeriesValues extracts the value column of a daily series.
func SeriesValues(series []DailySalesPoint) []float64 {
	values := make([]float64, len(series))
	for i, p := range series {
		values[i] = p.Value
	}
	return values
}

// SeriesSpanDays returns the inclusive day span of a series, or 0 when empty.
func SeriesSpanDays(series []DailySalesPoint) int {
	if len(series) == 0 {
		return 0
	}
	return DaysBetween(series[0].Date, series[len(series)-1].Date) + 1
}
