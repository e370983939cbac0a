package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/demandlab/demandcast/schema"
)

// AutoModel is the result of the automatic order search: the best fitted
// SARIMA model by AICc, plus enough context to date its projections.
type AutoModel struct {
	model     *sarimaModel
	lastDate  time.Time
	Order     [7]int // p, d, q, P, D, Q, m of the selected model
	AICc      float64
	Evaluated int // Number of candidate models fitted during the search
}

// FitAutoregressive selects and fits the best SARIMA order for the series
// using a stepwise AICc search. Differencing orders are fixed up front by
// heuristics and not searched, which keeps the candidate space small.
func FitAutoregressive(series []schema.DailySalesPoint, cfg AutoConfig) (*AutoModel, error) {
	if len(series) == 0 {
		return nil, &schema.ModelFitError{Model: schema.AutoregressiveModel, Reason: "empty series"}
	}

	values := schema.SeriesValues(series)
	d := chooseDifferencing(values, cfg.MaxD)
	sd := chooseSeasonalDifferencing(values, cfg.MaxSD, cfg.Period)

	best, evaluated := stepwiseSearch(values, d, sd, cfg)
	if best == nil {
		return nil, &schema.ModelFitError{
			Model:  schema.AutoregressiveModel,
			Reason: fmt.Sprintf("no candidate order could be fitted on %d observations", len(values)),
		}
	}

	o := best.order
	return &AutoModel{
		model:     best,
		lastDate:  series[len(series)-1].Date,
		Order:     [7]int{o.p, o.d, o.q, o.sp, o.sd, o.sq, o.m},
		AICc:      best.aicc,
		Evaluated: evaluated,
	}, nil
}

// Forecast projects horizon days past the last observed date. The
// autoregressive model emits point forecasts only.
func (a *AutoModel) Forecast(horizon int) []schema.ForecastPoint {
	values, err := a.model.predict(horizon)
	if err != nil {
		return nil
	}
	dates := futureDates(a.lastDate, horizon)
	points := make([]schema.ForecastPoint, horizon)
	for h := range horizon {
		points[h] = schema.ForecastPoint{Date: dates[h], Value: values[h]}
	}
	return points
}

// chooseDifferencing picks the non-seasonal differencing order. A first
// difference is applied only when it strictly reduces sample variance,
// which leaves constant and already-stationary series undifferenced.
func chooseDifferencing(values []float64, maxD int) int {
	current := values
	for d := 0; d < maxD; d++ {
		differenced := diff(current)
		if len(differenced) < 10 {
			return d
		}
		if sampleVariance(differenced) >= sampleVariance(current) {
			return d
		}
		current = differenced
	}
	return maxD
}

// chooseSeasonalDifferencing applies one seasonal difference when the
// autocorrelation at the seasonal lag is strong.
func chooseSeasonalDifferencing(values []float64, maxSD, period int) int {
	if maxSD < 1 || period < 2 || len(values) < 2*period {
		return 0
	}
	corr := acf(values, period)
	if corr == nil || len(corr) <= period {
		return 0
	}
	if math.Abs(corr[period]) > 0.5 {
		return 1
	}
	return 0
}

// stepwiseSearch evaluates a set of starting orders and then walks to
// neighboring orders while the AICc improves. Candidates that fail to fit
// are skipped.
func stepwiseSearch(values []float64, d, sd int, cfg AutoConfig) (*sarimaModel, int) {
	type candidate struct {
		p, q, sp, sq int
	}

	starts := []candidate{
		{0, 0, 0, 0},
		{1, 0, 1, 0},
		{0, 1, 0, 1},
		{1, 1, 1, 1},
		{2, 2, 1, 1},
	}

	inBounds := func(s candidate) bool {
		return s.p >= 0 && s.p <= cfg.MaxP &&
			s.q >= 0 && s.q <= cfg.MaxQ &&
			s.sp >= 0 && s.sp <= cfg.MaxSP &&
			s.sq >= 0 && s.sq <= cfg.MaxSQ
	}

	tryFit := func(s candidate) *sarimaModel {
		m := newSARIMA(sarimaOrder{
			p: s.p, d: d, q: s.q,
			sp: s.sp, sd: sd, sq: s.sq,
			m: cfg.Period,
		})
		if err := m.fit(values); err != nil {
			return nil
		}
		return m
	}

	var best *sarimaModel
	bestCand := candidate{}
	bestAICc := math.Inf(1)
	evaluated := 0

	for _, s := range starts {
		if !inBounds(s) {
			continue
		}
		m := tryFit(s)
		if m == nil {
			continue
		}
		evaluated++
		if m.aicc < bestAICc {
			bestAICc = m.aicc
			bestCand = s
			best = m
		}
	}
	if best == nil {
		return nil, evaluated
	}

	improved := true
	for improved {
		improved = false
		neighbors := []candidate{
			{bestCand.p + 1, bestCand.q, bestCand.sp, bestCand.sq},
			{bestCand.p - 1, bestCand.q, bestCand.sp, bestCand.sq},
			{bestCand.p, bestCand.q + 1, bestCand.sp, bestCand.sq},
			{bestCand.p, bestCand.q - 1, bestCand.sp, bestCand.sq},
			{bestCand.p, bestCand.q, bestCand.sp + 1, bestCand.sq},
			{bestCand.p, bestCand.q, bestCand.sp - 1, bestCand.sq},
			{bestCand.p, bestCand.q, bestCand.sp, bestCand.sq + 1},
			{bestCand.p, bestCand.q, bestCand.sp, bestCand.sq - 1},
		}
		for _, s := range neighbors {
			if !inBounds(s) {
				continue
			}
			m := tryFit(s)
			if m == nil {
				continue
			}
			evaluated++
			if m.aicc < bestAICc {
				bestAICc = m.aicc
				bestCand = s
				best = m
				improved = true
			}
		}
	}

	return best, evaluated
}
