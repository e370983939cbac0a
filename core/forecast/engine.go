// Package forecast produces short-horizon demand forecasts from a dense
// daily revenue series using two independent models: an additive
// trend/seasonality decomposition with uncertainty bounds, and an
// auto-order seasonal ARIMA selected by stepwise AICc search.
package forecast

import (
	"fmt"
	"time"

	"github.com/demandlab/demandcast/schema"
)

// SeasonalConfig holds parameters for the trend + seasonality model.
type SeasonalConfig struct {
	MinHistoryDays int     // Shortest acceptable series span
	Confidence     float64 // Coverage of the uncertainty bounds, in (0, 1)
	Yearly         bool    // Fit a yearly pattern when history allows it
}

// DefaultSeasonalConfig returns the default seasonal model configuration.
func DefaultSeasonalConfig() SeasonalConfig {
	return SeasonalConfig{
		MinHistoryDays: schema.DefaultMinHistoryDays,
		Confidence:     schema.DefaultConfidence,
		Yearly:         true,
	}
}

// AutoConfig bounds the autoregressive order search. The search is stepwise,
// not exhaustive, and minimizes AICc; both choices are fixed so repeated
// runs on identical input select the same order.
type AutoConfig struct {
	MaxP  int // Maximum non-seasonal AR order
	MaxQ  int // Maximum non-seasonal MA order
	MaxD  int // Maximum non-seasonal differencing
	MaxSP int // Maximum seasonal AR order
	MaxSQ int // Maximum seasonal MA order
	MaxSD int // Maximum seasonal differencing
	Period int // Seasonal period in days
}

// DefaultAutoConfig returns the default search bounds with a weekly
// seasonal term.
func DefaultAutoConfig() AutoConfig {
	return AutoConfig{
		MaxP:   3,
		MaxQ:   3,
		MaxD:   1,
		MaxSP:  1,
		MaxSQ:  1,
		MaxSD:  1,
		Period: 7,
	}
}

// Engine runs both forecasting models over an aggregated series.
type Engine struct {
	seasonal SeasonalConfig
	auto     AutoConfig
}

// NewEngine creates an Engine with explicit model configurations.
func NewEngine(seasonal SeasonalConfig, auto AutoConfig) *Engine {
	return &Engine{seasonal: seasonal, auto: auto}
}

// Forecast fits both models on the series and projects horizon days past the
// last observed date. The two forecast sequences are returned independently;
// the engine performs no reconciliation or ensembling, so disagreement
// between the models stays visible to the consumer.
func (e *Engine) Forecast(series []schema.DailySalesPoint, horizon int) (*schema.ForecastOutput, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("horizon must be at least 1 day, got %d", horizon)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("cannot forecast an empty series")
	}

	seasonal, err := FitSeasonal(series, e.seasonal)
	if err != nil {
		return nil, err
	}
	auto, err := FitAutoregressive(series, e.auto)
	if err != nil {
		return nil, err
	}

	return &schema.ForecastOutput{
		Seasonal:       seasonal.Forecast(horizon),
		Autoregressive: auto.Forecast(horizon),
	}, nil
}

// futureDates returns horizon consecutive days starting one day after last.
func futureDates(last time.Time, horizon int) []time.Time {
	dates := make([]time.Time, horizon)
	for h := range horizon {
		dates[h] = last.AddDate(0, 0, h+1)
	}
	return dates
}
