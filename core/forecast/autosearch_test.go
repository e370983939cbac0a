package forecast

import (
	"errors"
	"testing"

	"github.com/demandlab/demandcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFitAutoregressiveConstant checks that a flat history selects the
// simplest order and forecasts the constant level.
func TestFitAutoregressiveConstant(t *testing.T) {
	model, err := FitAutoregressive(constantSeries(28, 100), DefaultAutoConfig())
	require.NoError(t, err)

	assert.Equal(t, [7]int{0, 0, 0, 0, 0, 0, 7}, model.Order)
	assert.Positive(t, model.Evaluated)

	for _, p := range model.Forecast(10) {
		assert.InDelta(t, 100.0, p.Value, 1e-6)
		assert.False(t, p.HasBounds)
	}
}

// TestFitAutoregressiveTrend checks that a linear history keeps growing at
// the same rate in the forecast.
func TestFitAutoregressiveTrend(t *testing.T) {
	values := make([]float64, 60)
	for i := range values {
		values[i] = 100 + 2*float64(i)
	}
	series := makeSeries(testStart, values)

	model, err := FitAutoregressive(series, DefaultAutoConfig())
	require.NoError(t, err)

	last := values[len(values)-1]
	for h, p := range model.Forecast(7) {
		want := last + 2*float64(h+1)
		assert.InDelta(t, want, p.Value, 0.5)
	}
}

// TestFitAutoregressiveTooShort checks that a series too short for even the
// simplest candidate order surfaces a typed fit error instead of a degraded
// model.
func TestFitAutoregressiveTooShort(t *testing.T) {
	_, err := FitAutoregressive(constantSeries(3, 100), DefaultAutoConfig())
	require.Error(t, err)

	var fitErr *schema.ModelFitError
	require.True(t, errors.As(err, &fitErr))
	assert.Equal(t, schema.AutoregressiveModel, fitErr.Model)
}

// TestChooseDifferencing covers the variance-reduction heuristic.
func TestChooseDifferencing(t *testing.T) {
	flat := make([]float64, 40)
	for i := range flat {
		flat[i] = 100
	}
	assert.Equal(t, 0, chooseDifferencing(flat, 1))

	trending := make([]float64, 40)
	for i := range trending {
		trending[i] = 100 + 5*float64(i)
	}
	assert.Equal(t, 1, chooseDifferencing(trending, 1))

	// Too few observations to difference safely.
	assert.Equal(t, 0, chooseDifferencing(flat[:8], 1))
}

// TestChooseSeasonalDifferencing covers the seasonal lag heuristic.
func TestChooseSeasonalDifferencing(t *testing.T) {
	weekly := make([]float64, 42)
	for i := range weekly {
		weekly[i] = 100
		if i%7 == 6 {
			weekly[i] = 170
		}
	}
	assert.Equal(t, 1, chooseSeasonalDifferencing(weekly, 1, 7))

	// Constant series has no autocorrelation signal at all.
	flat := make([]float64, 42)
	for i := range flat {
		flat[i] = 100
	}
	assert.Equal(t, 0, chooseSeasonalDifferencing(flat, 1, 7))

	// Series shorter than two full periods never gets differenced.
	assert.Equal(t, 0, chooseSeasonalDifferencing(weekly[:10], 1, 7))
}
