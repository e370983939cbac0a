package sink

import "github.com/demandlab/demandcast/schema"

// RollingAverage computes the trailing mean of the series over the given
// window, including the current day. Early days average over however many
// days exist so far.
func RollingAverage(series []schema.DailySalesPoint, window int) []float64 {
	sums := RollingSum(series, window)
	out := make([]float64, len(series))
	for i := range series {
		span := min(i+1, window)
		out[i] = sums[i] / float64(span)
	}
	return out
}

// RollingSum computes the trailing sum of the series over the given window,
// including the current day.
func RollingSum(series []schema.DailySalesPoint, window int) []float64 {
	out := make([]float64, len(series))
	running := 0.0
	for i, p := range series {
		running += p.Value
		if i >= window {
			running -= series[i-window].Value
		}
		out[i] = running
	}
	return out
}
