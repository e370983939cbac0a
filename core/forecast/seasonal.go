package forecast

import (
	"math"
	"time"

	"github.com/demandlab/demandcast/schema"
)

// yearlyMinObs is the shortest series that gets a yearly pattern fitted.
// Below two full years the day-of-year buckets are too sparse to average.
const yearlyMinObs = 730

// SeasonalModel is a fitted additive decomposition: a linear trend over the
// observation index, a weekly pattern indexed by weekday, and an optional
// yearly pattern indexed by day of year. Residual spread drives flat
// uncertainty bounds at the configured confidence level.
type SeasonalModel struct {
	lastDate  time.Time
	n         int
	intercept float64
	slope     float64
	weekly    [7]float64
	yearly    []float64 // 365 entries, nil when not fitted
	sigma     float64
	z         float64
}

// FitSeasonal fits the trend + seasonality model on a dense daily series.
// Returns InsufficientHistoryError when the series spans fewer days than the
// configured minimum.
func FitSeasonal(series []schema.DailySalesPoint, cfg SeasonalConfig) (*SeasonalModel, error) {
	span := schema.SeriesSpanDays(series)
	if span < cfg.MinHistoryDays {
		return nil, &schema.InsufficientHistoryError{HistoryDays: span, MinDays: cfg.MinHistoryDays}
	}

	values := schema.SeriesValues(series)
	n := len(values)

	m := &SeasonalModel{
		lastDate: series[n-1].Date,
		n:        n,
		z:        normalQuantile((1 + cfg.Confidence) / 2),
	}
	m.intercept, m.slope = fitTrend(values)

	detrended := make([]float64, n)
	for i, v := range values {
		detrended[i] = v - m.trendAt(i)
	}

	m.weekly = weekdayPattern(series, detrended)
	for i := range detrended {
		detrended[i] -= m.weekly[series[i].Date.Weekday()]
	}

	if cfg.Yearly && n >= yearlyMinObs {
		m.yearly = yearDayPattern(series, detrended)
		for i := range detrended {
			detrended[i] -= m.yearly[yearDayIndex(series[i].Date)]
		}
	}

	sse := 0.0
	for _, r := range detrended {
		sse += r * r
	}
	dof := n - 2
	if dof < 1 {
		dof = 1
	}
	m.sigma = math.Sqrt(sse / float64(dof))

	return m, nil
}

// Forecast projects horizon days past the last observed date. The trend
// continues over the observation index and the seasonal patterns repeat by
// calendar position.
func (m *SeasonalModel) Forecast(horizon int) []schema.ForecastPoint {
	dates := futureDates(m.lastDate, horizon)
	points := make([]schema.ForecastPoint, horizon)
	for h := range horizon {
		date := dates[h]
		value := m.trendAt(m.n+h) + m.weekly[date.Weekday()]
		if m.yearly != nil {
			value += m.yearly[yearDayIndex(date)]
		}
		margin := m.z * m.sigma
		points[h] = schema.ForecastPoint{
			Date:      date,
			Value:     value,
			Lower:     value - margin,
			Upper:     value + margin,
			HasBounds: true,
		}
	}
	return points
}

// Sigma returns the residual standard deviation of the fit.
func (m *SeasonalModel) Sigma() float64 {
	return m.sigma
}

func (m *SeasonalModel) trendAt(idx int) float64 {
	return m.intercept + m.slope*float64(idx)
}

// fitTrend runs ordinary least squares of values against their index.
func fitTrend(values []float64) (intercept, slope float64) {
	n := float64(len(values))
	if n < 2 {
		return mean(values), 0
	}

	var sumT, sumY, sumTY, sumTT float64
	for i, v := range values {
		t := float64(i)
		sumT += t
		sumY += v
		sumTY += t * v
		sumTT += t * t
	}

	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return sumY / n, 0
	}
	slope = (n*sumTY - sumT*sumY) / denom
	intercept = (sumY - slope*sumT) / n
	return intercept, slope
}

// weekdayPattern averages the detrended values per weekday and centers the
// pattern so it sums to zero across the week.
func weekdayPattern(series []schema.DailySalesPoint, detrended []float64) [7]float64 {
	var sums, counts [7]float64
	for i, p := range series {
		w := p.Date.Weekday()
		sums[w] += detrended[i]
		counts[w]++
	}

	var pattern [7]float64
	total := 0.0
	for w := range pattern {
		if counts[w] > 0 {
			pattern[w] = sums[w] / counts[w]
		}
		total += pattern[w]
	}
	center := total / 7
	for w := range pattern {
		pattern[w] -= center
	}
	return pattern
}

// yearDayPattern averages the remaining signal per day of year and centers
// it. Buckets with no observations stay at zero.
func yearDayPattern(series []schema.DailySalesPoint, detrended []float64) []float64 {
	sums := make([]float64, 365)
	counts := make([]float64, 365)
	for i, p := range series {
		idx := yearDayIndex(p.Date)
		sums[idx] += detrended[i]
		counts[idx]++
	}

	pattern := make([]float64, 365)
	total := 0.0
	for i := range pattern {
		if counts[i] > 0 {
			pattern[i] = sums[i] / counts[i]
		}
		total += pattern[i]
	}
	center := total / 365
	for i := range pattern {
		pattern[i] -= center
	}
	return pattern
}

// yearDayIndex maps a date to [0, 364], folding leap day onto its neighbor.
func yearDayIndex(t time.Time) int {
	idx := t.YearDay() - 1
	if idx > 364 {
		idx = 364
	}
	return idx
}
