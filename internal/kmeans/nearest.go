package kmeans

import "github.com/hupe1980/lloyd/internal/geom"

// Nearest returns the index of the centroid closest to p and the squared
// distance to it. Ties go to the lowest index.
//
// Nearest panics if centroids is empty.
func Nearest[T geom.Float](p []T, centroids *Centroids[T]) (int, T) {
	k := centroids.Len()
	if k == 0 {
		panic("kmeans: nearest centroid of an empty centroid list")
	}

	best := 0
	bestDist := geom.SquaredL2(p, centroids.At(0))
	for i := 1; i < k; i++ {
		if d := geom.SquaredL2(p, centroids.At(i)); d < bestDist {
			best, bestDist = i, d
		}
	}

	return best, bestDist
}
