package kmeans

import (
	"fmt"

	"github.com/hupe1980/lloyd/internal/geom"
)

// Rand is the random source used for seeding. *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// SeedStats describes a seeding run.
type SeedStats struct {
	// Fallbacks counts centroids chosen by the uniform fallback because the
	// weighted scan ran out of points before the threshold reached zero.
	Fallbacks int
}

// Seed picks k initial centroids with D²-weighted sampling.
//
// The first centroid is a uniformly chosen point. Every further centroid is
// chosen with probability proportional to the squared distance from the
// point to its nearest already chosen centroid. Points are scanned in store
// order, so a fixed random source gives a reproducible result.
//
// u runs the assignment passes; it leaves the store's PointInfo reflecting
// the first k-1 centroids.
func Seed[T geom.Float](s *Store[T], k int, u Updater[T], rng Rand) (*Centroids[T], SeedStats, error) {
	var stats SeedStats

	n := s.Len()
	if k < 1 || k > n {
		return nil, stats, fmt.Errorf("%w: k=%d, points=%d", ErrInvalidK, k, n)
	}

	centroids := NewCentroids[T](s.Dim(), k)
	centroids.Append(s.Point(rng.Intn(n)))

	for centroids.Len() < k {
		_, total := u.Update(s, centroids)

		// (0, 1] keeps the threshold positive whenever total is, so a point
		// that already coincides with a centroid can never be picked.
		threshold := total * T(1-rng.Float64())

		idx := weightedScan(s, threshold)
		if idx < 0 {
			idx = uniformFallback(s, rng)
			stats.Fallbacks++
		}

		centroids.Append(s.Point(idx))
	}

	return centroids, stats, nil
}

// weightedScan subtracts each point's squared distance from threshold in
// store order and returns the first index where it drops to zero or below,
// or -1 if rounding kept it positive through the whole scan.
func weightedScan[T geom.Float](s *Store[T], threshold T) int {
	for i, pi := range s.infos {
		threshold -= pi.SqrDist
		if threshold <= 0 {
			return i
		}
	}
	return -1
}

// uniformFallback picks uniformly among points not yet covered by a
// centroid, or among all points if every point is covered.
func uniformFallback[T geom.Float](s *Store[T], rng Rand) int {
	candidates := 0
	for _, pi := range s.infos {
		if pi.SqrDist > 0 {
			candidates++
		}
	}
	if candidates == 0 {
		return rng.Intn(s.Len())
	}

	target := rng.Intn(candidates)
	for i, pi := range s.infos {
		if pi.SqrDist > 0 {
			if target == 0 {
				return i
			}
			target--
		}
	}

	return s.Len() - 1
}
