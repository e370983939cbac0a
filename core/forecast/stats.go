package forecast

import "math"

// mean returns the arithmetic mean of values, or 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleVariance returns the unbiased sample variance, or 0 when fewer than
// two values are present.
func sampleVariance(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(n-1)
}

// acf computes the autocorrelation function up to maxLag. Returns nil when
// the series has no variance or is shorter than maxLag.
func acf(values []float64, maxLag int) []float64 {
	n := len(values)
	if n == 0 || maxLag < 0 || maxLag >= n {
		return nil
	}

	m := mean(values)
	variance := 0.0
	for _, v := range values {
		d := v - m
		variance += d * d
	}
	if variance == 0 {
		return nil
	}

	result := make([]float64, maxLag+1)
	result[0] = 1
	for k := 1; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (values[i] - m) * (values[i-k] - m)
		}
		result[k] = sum / variance
	}
	return result
}

// diff returns the lag-1 differenced series.
func diff(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i] - values[i-1]
	}
	return out
}

// seasonalDiff returns the lag-period differenced series.
func seasonalDiff(values []float64, period int) []float64 {
	if period < 1 || len(values) <= period {
		return nil
	}
	out := make([]float64, len(values)-period)
	for i := period; i < len(values); i++ {
		out[i-period] = values[i] - values[i-period]
	}
	return out
}

// normalQuantile returns the z-value for a given probability using the
// Abramowitz and Stegun rational approximation.
func normalQuantile(p float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	if p < 0.5 {
		return -normalQuantile(1 - p)
	}

	t := math.Sqrt(-2 * math.Log(1-p))
	c0, c1, c2 := 2.515517, 0.802853, 0.010328
	d1, d2, d3 := 1.432788, 0.189269, 0.001308

	return t - (c0+c1*t+c2*t*t)/(1+d1*t+d2*t*t+d3*t*t*t)
}

// clamp restricts v to the closed interval [lower, upper].
func clamp(v, lower, upper float64) float64 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}
