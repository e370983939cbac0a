package segment

import (
	"math"

	"github.com/demandlab/demandcast/schema"
)

// featureMatrix turns RFM features into clustering vectors. Recency and
// monetary are log-transformed first to tame their heavy right tails, then
// every column is standardized to zero mean and unit variance. A column with
// zero spread maps to all zeros instead of dividing by zero.
func featureMatrix(features []schema.RFMFeatures) [][]float64 {
	n := len(features)
	matrix := make([][]float64, n)
	for i, f := range features {
		matrix[i] = []float64{
			math.Log1p(float64(f.RecencyDays)),
			float64(f.Frequency),
			math.Log1p(f.Monetary),
		}
	}
	standardize(matrix)
	return matrix
}

// standardize z-scores each column of the matrix in place.
func standardize(matrix [][]float64) {
	if len(matrix) == 0 {
		return
	}
	cols := len(matrix[0])
	n := float64(len(matrix))

	for c := range cols {
		sum := 0.0
		for _, row := range matrix {
			sum += row[c]
		}
		mean := sum / n

		sumSq := 0.0
		for _, row := range matrix {
			d := row[c] - mean
			sumSq += d * d
		}
		std := math.Sqrt(sumSq / n)

		for _, row := range matrix {
			if std == 0 {
				row[c] = 0
			} else {
				row[c] = (row[c] - mean) / std
			}
		}
	}
}
