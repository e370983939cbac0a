package segment

import (
	"math"
	"math/rand"
)

const kMeansMaxIter = 100

// kMeans clusters points into k groups using k-means++ seeding and Lloyd
// iterations. The explicit source makes the result a pure function of
// points, k and seed. Empty clusters are allowed; their centroids simply
// stop moving.
func kMeans(points [][]float64, k int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	centroids := seedCentroids(points, k, rng)
	assignments := make([]int, len(points))

	for range kMeansMaxIter {
		changed := false
		for i, p := range points {
			best := nearestCentroid(p, centroids)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
		recomputeCentroids(points, assignments, centroids)
	}
	return assignments
}

// seedCentroids picks k initial centroids with k-means++: the first uniformly
// at random, each next one weighted by squared distance to the nearest
// already-chosen centroid. When all remaining distances are zero, as with
// fully identical points, the choice falls back to uniform.
func seedCentroids(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	first := points[rng.Intn(len(points))]
	centroids = append(centroids, cloneVec(first))

	dist := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			dist[i] = squaredDistance(p, centroids[nearestCentroid(p, centroids)])
			total += dist[i]
		}

		var next []float64
		if total == 0 {
			next = points[rng.Intn(len(points))]
		} else {
			target := rng.Float64() * total
			cum := 0.0
			next = points[len(points)-1]
			for i, d := range dist {
				cum += d
				if cum >= target {
					next = points[i]
					break
				}
			}
		}
		centroids = append(centroids, cloneVec(next))
	}
	return centroids
}

// nearestCentroid returns the index of the closest centroid, preferring the
// lowest index on ties.
func nearestCentroid(p []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		if d := squaredDistance(p, centroid); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// recomputeCentroids moves each centroid to the mean of its members.
// A cluster with no members keeps its previous centroid.
func recomputeCentroids(points [][]float64, assignments []int, centroids [][]float64) {
	dims := len(points[0])
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for c := range sums {
		sums[c] = make([]float64, dims)
	}

	for i, p := range points {
		c := assignments[i]
		counts[c]++
		for d, v := range p {
			sums[c][d] += v
		}
	}

	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		for d := range centroids[c] {
			centroids[c][d] = sums[c][d] / float64(counts[c])
		}
	}
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func cloneVec(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
