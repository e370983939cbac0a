package forecast

import (
	"errors"
	"math"
)

// varianceFloor keeps the log-likelihood finite when a model fits the data
// exactly, as happens with constant series.
const varianceFloor = 1e-12

// sarimaOrder is a SARIMA specification (p, d, q) x (P, D, Q, m).
type sarimaOrder struct {
	p, d, q    int
	sp, sd, sq int
	m          int
}

// params counts estimated coefficients including the intercept.
func (o sarimaOrder) params() int {
	return o.p + o.q + o.sp + o.sq + 1
}

// sarimaModel holds a fitted SARIMA model. Coefficients are estimated by
// conditional sum of squares with a momentum gradient descent.
type sarimaModel struct {
	order     sarimaOrder
	arCoef    []float64
	maCoef    []float64
	sarCoef   []float64
	smaCoef   []float64
	intercept float64
	variance  float64
	aicc      float64
	logLik    float64

	original  []float64 // Series before differencing
	diffed    []float64 // Series after d and sd differencing
	residuals []float64
	fitted    bool
}

// newSARIMA creates an unfitted model with the given order.
func newSARIMA(order sarimaOrder) *sarimaModel {
	return &sarimaModel{
		order:   order,
		arCoef:  make([]float64, order.p),
		maCoef:  make([]float64, order.q),
		sarCoef: make([]float64, order.sp),
		smaCoef: make([]float64, order.sq),
	}
}

// fit estimates the model coefficients on values. The series must cover the
// longest lag implied by the order and leave a few residual degrees of
// freedom past the estimated coefficients, so the simplest orders stay
// fittable on short histories.
func (m *sarimaModel) fit(values []float64) error {
	o := m.order
	minLen := o.p + o.q + o.d + (o.sp+o.sd+o.sq)*o.m + o.params() + 3
	if len(values) < minLen {
		return errors.New("insufficient observations for the specified order")
	}

	m.original = values

	diffed := values
	for range o.d {
		diffed = diff(diffed)
		if len(diffed) == 0 {
			return errors.New("differencing produced an empty series")
		}
	}
	for range o.sd {
		diffed = seasonalDiff(diffed, o.m)
		if len(diffed) == 0 {
			return errors.New("seasonal differencing produced an empty series")
		}
	}
	m.diffed = diffed

	if err := m.estimate(); err != nil {
		return err
	}
	m.scoreIC()
	m.fitted = true
	return nil
}

// estimate runs the CSS optimization: coefficients start from scaled
// autocorrelations, then a momentum gradient descent refines them while
// tracking the best sum of squares seen.
func (m *sarimaModel) estimate() error {
	y := m.diffed
	n := len(y)
	o := m.order

	m.intercept = mean(y)

	if o.p > 0 {
		if corr := acf(y, o.p); corr != nil {
			for i := 0; i < o.p && i+1 < len(corr); i++ {
				m.arCoef[i] = corr[i+1] * 0.5
			}
		}
	}
	if o.sp > 0 {
		if corr := acf(y, o.sp*o.m); corr != nil {
			for i := range o.sp {
				if idx := (i + 1) * o.m; idx < len(corr) {
					m.sarCoef[i] = corr[idx] * 0.5
				}
			}
		}
	}
	for i := range m.maCoef {
		m.maCoef[i] = 0.1
	}
	for i := range m.smaCoef {
		m.smaCoef[i] = 0.1
	}

	const (
		maxIter   = 200
		tolerance = 1e-8
		momentum  = 0.9
		decay     = 0.99
	)
	learningRate := 0.005

	arVel := make([]float64, o.p)
	maVel := make([]float64, o.q)
	sarVel := make([]float64, o.sp)
	smaVel := make([]float64, o.sq)

	startIdx := max(max(o.p, o.q), max(o.sp*o.m, o.sq*o.m))
	if startIdx >= n-10 {
		startIdx = 0
	}

	bestSSE := math.Inf(1)
	bestAR := make([]float64, o.p)
	bestMA := make([]float64, o.q)
	bestSAR := make([]float64, o.sp)
	bestSMA := make([]float64, o.sq)
	noImprove := 0

	for iter := range maxIter {
		residuals := make([]float64, n)
		currentSSE := 0.0

		for t := startIdx; t < n; t++ {
			residuals[t] = y[t] - m.predictOne(y, residuals, t, n)
			currentSSE += residuals[t] * residuals[t]
		}
		if math.IsNaN(currentSSE) || math.IsInf(currentSSE, 0) {
			return errors.New("optimization diverged")
		}

		if currentSSE < bestSSE {
			bestSSE = currentSSE
			copy(bestAR, m.arCoef)
			copy(bestMA, m.maCoef)
			copy(bestSAR, m.sarCoef)
			copy(bestSMA, m.smaCoef)
			noImprove = 0
		} else {
			noImprove++
		}
		if noImprove > 20 {
			break
		}

		arGrad := make([]float64, o.p)
		maGrad := make([]float64, o.q)
		sarGrad := make([]float64, o.sp)
		smaGrad := make([]float64, o.sq)

		for t := startIdx; t < n; t++ {
			for i := 0; i < o.p && t-i-1 >= 0; i++ {
				arGrad[i] -= 2 * residuals[t] * (y[t-i-1] - m.intercept)
			}
			for i := range o.sp {
				if lag := (i + 1) * o.m; t-lag >= 0 {
					sarGrad[i] -= 2 * residuals[t] * (y[t-lag] - m.intercept)
				}
			}
			for i := 0; i < o.q && t-i-1 >= 0; i++ {
				maGrad[i] -= 2 * residuals[t] * residuals[t-i-1]
			}
			for i := range o.sq {
				if lag := (i + 1) * o.m; t-lag >= 0 {
					smaGrad[i] -= 2 * residuals[t] * residuals[t-lag]
				}
			}
		}

		for i := range o.p {
			arVel[i] = momentum*arVel[i] + learningRate*arGrad[i]/float64(n)
			m.arCoef[i] = clamp(m.arCoef[i]-arVel[i], -0.99, 0.99)
		}
		for i := range o.sp {
			sarVel[i] = momentum*sarVel[i] + learningRate*sarGrad[i]/float64(n)
			m.sarCoef[i] = clamp(m.sarCoef[i]-sarVel[i], -0.99, 0.99)
		}
		for i := range o.q {
			maVel[i] = momentum*maVel[i] + learningRate*maGrad[i]/float64(n)
			m.maCoef[i] = clamp(m.maCoef[i]-maVel[i], -0.99, 0.99)
		}
		for i := range o.sq {
			smaVel[i] = momentum*smaVel[i] + learningRate*smaGrad[i]/float64(n)
			m.smaCoef[i] = clamp(m.smaCoef[i]-smaVel[i], -0.99, 0.99)
		}

		learningRate *= decay

		if iter > 0 && math.Abs(currentSSE-bestSSE) < tolerance {
			break
		}
	}

	copy(m.arCoef, bestAR)
	copy(m.maCoef, bestMA)
	copy(m.sarCoef, bestSAR)
	copy(m.smaCoef, bestSMA)

	m.residuals = make([]float64, n)
	for t := range n {
		m.residuals[t] = y[t] - m.predictOne(y, m.residuals, t, n)
	}

	sse := 0.0
	count := 0
	for t := startIdx; t < n; t++ {
		sse += m.residuals[t] * m.residuals[t]
		count++
	}
	if count > o.params() {
		m.variance = sse / float64(count-o.params())
	} else {
		m.variance = sse / float64(count)
	}
	if math.IsNaN(m.variance) || math.IsInf(m.variance, 0) {
		return errors.New("residual variance is not finite")
	}
	return nil
}

// predictOne computes the one-step prediction at index t. Residuals past
// histLen are treated as zero, which makes the same routine usable for both
// in-sample fitting and out-of-sample forecasting.
func (m *sarimaModel) predictOne(y, residuals []float64, t, histLen int) float64 {
	o := m.order
	pred := m.intercept

	for i := 0; i < o.p && t-i-1 >= 0; i++ {
		pred += m.arCoef[i] * (y[t-i-1] - m.intercept)
	}
	for i := range o.sp {
		if lag := (i + 1) * o.m; t-lag >= 0 {
			pred += m.sarCoef[i] * (y[t-lag] - m.intercept)
		}
	}
	for i := 0; i < o.q && t-i-1 >= 0 && t-i-1 < histLen; i++ {
		pred += m.maCoef[i] * residuals[t-i-1]
	}
	for i := range o.sq {
		if lag := (i + 1) * o.m; t-lag >= 0 && t-lag < histLen {
			pred += m.smaCoef[i] * residuals[t-lag]
		}
	}
	return pred
}

// scoreIC computes log-likelihood and AICc. Variance is floored so that a
// perfect fit scores as strongly preferred rather than undefined.
func (m *sarimaModel) scoreIC() {
	n := len(m.residuals)
	k := m.order.params()

	sse := 0.0
	for _, r := range m.residuals {
		sse += r * r
	}

	variance := m.variance
	if variance < varianceFloor {
		variance = varianceFloor
	}
	m.logLik = -float64(n)/2*math.Log(2*math.Pi) - float64(n)/2*math.Log(variance) - sse/(2*variance)

	aic := -2*m.logLik + 2*float64(k)
	kf, nf := float64(k), float64(n)
	if nf-kf-1 > 0 {
		m.aicc = aic + 2*kf*(kf+1)/(nf-kf-1)
	} else {
		m.aicc = math.Inf(1)
	}
}

// predict generates point forecasts for steps periods ahead on the original
// scale.
func (m *sarimaModel) predict(steps int) ([]float64, error) {
	if !m.fitted {
		return nil, errors.New("model must be fitted before prediction")
	}
	if steps < 1 {
		return nil, errors.New("steps must be at least 1")
	}

	y := m.diffed
	n := len(y)

	extY := make([]float64, n+steps)
	copy(extY, y)
	extRes := make([]float64, n+steps)
	copy(extRes, m.residuals)

	for h := range steps {
		t := n + h
		extY[t] = m.predictOne(extY, extRes, t, n)
	}

	forecasts := make([]float64, steps)
	copy(forecasts, extY[n:])
	return m.integrate(forecasts), nil
}

// integrate undoes differencing. Fit applies non-seasonal differencing first
// and seasonal second, so integration undoes seasonal first.
func (m *sarimaModel) integrate(forecasts []float64) []float64 {
	o := m.order
	original := m.original

	result := make([]float64, len(forecasts))
	copy(result, forecasts)

	nonSeasonal := original
	for range o.d {
		if len(nonSeasonal) <= 1 {
			break
		}
		nonSeasonal = diff(nonSeasonal)
	}

	if o.sd > 0 && o.m > 0 {
		nDiff := len(nonSeasonal)
		for range o.sd {
			for j := range result {
				if j < o.m {
					if idx := nDiff - o.m + j; idx >= 0 && idx < nDiff {
						result[j] += nonSeasonal[idx]
					}
				} else {
					result[j] += result[j-o.m]
				}
			}
		}
	}

	for range o.d {
		last := original[len(original)-1]
		for j := range result {
			if j == 0 {
				result[j] += last
			} else {
				result[j] += result[j-1]
			}
		}
	}

	return result
}
