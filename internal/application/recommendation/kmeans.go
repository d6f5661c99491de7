package recommendation

import (
	"math"
	"math/rand"
)

// KMeans clusters vectors with k-means++ seeding. Deterministic for a
// given seed. Returns the per-vector cluster assignment and the final
// centroids. k is capped at the number of vectors.
func KMeans(vectors [][]float64, k, maxIterations int, seed int64) ([]int, [][]float64) {
	if len(vectors) == 0 || k <= 0 {
		return nil, nil
	}
	if k > len(vectors) {
		k = len(vectors)
	}

	rng := rand.New(rand.NewSource(seed))
	centroids := seedCentroids(vectors, k, rng)
	assignments := make([]int, len(vectors))

	for iteration := 0; iteration < maxIterations; iteration++ {
		changed := false
		for i, vector := range vectors {
			nearest := nearestCentroid(vector, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed = true
			}
		}
		if !changed && iteration > 0 {
			break
		}
		centroids = recomputeCentroids(vectors, assignments, centroids)
	}

	return assignments, centroids
}

// seedCentroids picks initial centroids with k-means++: the first at
// random, each next weighted by squared distance to the nearest chosen one.
func seedCentroids(vectors [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, cloneVector(vectors[rng.Intn(len(vectors))]))

	distances := make([]float64, len(vectors))
	for len(centroids) < k {
		var sum float64
		for i, vector := range vectors {
			d := squaredDistance(vector, centroids[nearestCentroid(vector, centroids)])
			distances[i] = d
			sum += d
		}

		if sum == 0 {
			// all remaining points coincide with a centroid
			centroids = append(centroids, cloneVector(vectors[rng.Intn(len(vectors))]))
			continue
		}

		target := rng.Float64() * sum
		var cumulative float64
		chosen := len(vectors) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, cloneVector(vectors[chosen]))
	}
	return centroids
}

func nearestCentroid(vector []float64, centroids [][]float64) int {
	best := 0
	bestDistance := math.Inf(1)
	for i, centroid := range centroids {
		if d := squaredDistance(vector, centroid); d < bestDistance {
			bestDistance = d
			best = i
		}
	}
	return best
}

// recomputeCentroids averages each cluster's members. Empty clusters
// keep their previous centroid.
func recomputeCentroids(vectors [][]float64, assignments []int, previous [][]float64) [][]float64 {
	k := len(previous)
	dimensions := len(vectors[0])
	centroids := make([][]float64, k)
	counts := make([]int, k)
	for i := range centroids {
		centroids[i] = make([]float64, dimensions)
	}

	for i, vector := range vectors {
		cluster := assignments[i]
		counts[cluster]++
		for d, x := range vector {
			centroids[cluster][d] += x
		}
	}
	for cluster := range centroids {
		if counts[cluster] == 0 {
			centroids[cluster] = cloneVector(previous[cluster])
			continue
		}
		for d := range centroids[cluster] {
			centroids[cluster][d] /= float64(counts[cluster])
		}
	}
	return centroids
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func cloneVector(v []float64) []float64 {
	clone := make([]float64, len(v))
	copy(clone, v)
	return clone
}
