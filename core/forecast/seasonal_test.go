package forecast

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/demandlab/demandcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFitSeasonalShortHistory checks that series spanning fewer days than
// the minimum are rejected with a typed error.
func TestFitSeasonalShortHistory(t *testing.T) {
	cfg := DefaultSeasonalConfig()
	series := constantSeries(5, 100)

	_, err := FitSeasonal(series, cfg)
	require.Error(t, err)

	var histErr *schema.InsufficientHistoryError
	require.True(t, errors.As(err, &histErr))
	assert.Equal(t, 5, histErr.HistoryDays)
	assert.Equal(t, cfg.MinHistoryDays, histErr.MinDays)
}

// TestFitSeasonalRecoverTrend checks that a purely linear series forecasts
// on the extended trend line.
func TestFitSeasonalRecoverTrend(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = 100 + 2*float64(i)
	}
	series := makeSeries(testStart, values)

	model, err := FitSeasonal(series, DefaultSeasonalConfig())
	require.NoError(t, err)

	points := model.Forecast(5)
	require.Len(t, points, 5)
	for h, p := range points {
		want := 100 + 2*float64(30+h)
		assert.InDelta(t, want, p.Value, 0.5)
	}
}

// TestFitSeasonalRecoverWeekly checks that a weekday spike in the history
// reappears on the same weekday in the forecast.
func TestFitSeasonalRecoverWeekly(t *testing.T) {
	values := make([]float64, 42)
	for i := range values {
		values[i] = 100
		if testStart.AddDate(0, 0, i).Weekday() == time.Saturday {
			values[i] = 170
		}
	}
	series := makeSeries(testStart, values)

	model, err := FitSeasonal(series, DefaultSeasonalConfig())
	require.NoError(t, err)

	points := model.Forecast(14)
	for _, p := range points {
		if p.Date.Weekday() == time.Saturday {
			assert.Greater(t, p.Value, 140.0, "saturday %s", p.Date.Format(time.DateOnly))
		} else {
			assert.Less(t, p.Value, 130.0, "weekday %s", p.Date.Format(time.DateOnly))
		}
	}
}

// TestFitSeasonalBounds checks that bounds bracket the point estimate and
// widen with lower residual fit quality.
func TestFitSeasonalBounds(t *testing.T) {
	noisy := make([]float64, 56)
	for i := range noisy {
		noisy[i] = 100 + 30*math.Sin(float64(i)*1.7)
	}
	series := makeSeries(testStart, noisy)

	model, err := FitSeasonal(series, DefaultSeasonalConfig())
	require.NoError(t, err)
	assert.Greater(t, model.Sigma(), 0.0)

	for _, p := range model.Forecast(10) {
		assert.True(t, p.HasBounds)
		assert.Less(t, p.Lower, p.Value)
		assert.Greater(t, p.Upper, p.Value)
	}

	flat, err := FitSeasonal(constantSeries(56, 100), DefaultSeasonalConfig())
	require.NoError(t, err)
	assert.Less(t, flat.Sigma(), model.Sigma())
}

// TestFitSeasonalConfidenceWidth checks that higher confidence widens the
// bounds.
func TestFitSeasonalConfidenceWidth(t *testing.T) {
	values := make([]float64, 40)
	for i := range values {
		values[i] = 100 + 10*math.Sin(float64(i))
	}
	series := makeSeries(testStart, values)

	narrow := DefaultSeasonalConfig()
	narrow.Confidence = 0.80
	wide := DefaultSeasonalConfig()
	wide.Confidence = 0.99

	narrowModel, err := FitSeasonal(series, narrow)
	require.NoError(t, err)
	wideModel, err := FitSeasonal(series, wide)
	require.NoError(t, err)

	np := narrowModel.Forecast(1)[0]
	wp := wideModel.Forecast(1)[0]
	assert.Greater(t, wp.Upper-wp.Lower, np.Upper-np.Lower)
}
