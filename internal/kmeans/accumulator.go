package kmeans

import "github.com/hupe1980/lloyd/internal/geom"

// Accumulators hold the per-cluster point count and coordinate sum of one
// update step.
type Accumulators[T geom.Float] struct {
	dim    int
	counts []int
	sums   []T
}

// NewAccumulators returns zeroed accumulators for k clusters.
func NewAccumulators[T geom.Float](k, dim int) *Accumulators[T] {
	return &Accumulators[T]{
		dim:    dim,
		counts: make([]int, k),
		sums:   make([]T, k*dim),
	}
}

// Len returns the number of clusters.
func (a *Accumulators[T]) Len() int {
	return len(a.counts)
}

// Count returns the number of points folded into cluster c.
func (a *Accumulators[T]) Count(c int) int {
	return a.counts[c]
}

// Sum returns the coordinate sum of cluster c. The slice aliases a.
func (a *Accumulators[T]) Sum(c int) []T {
	lo := c * a.dim
	return a.sums[lo : lo+a.dim : lo+a.dim]
}

// Add folds point p into cluster c.
func (a *Accumulators[T]) Add(c int, p []T) {
	geom.AddInPlace(a.Sum(c), p)
	a.counts[c]++
}

// Merge adds every count and sum of o into a. Both must have the same shape.
func (a *Accumulators[T]) Merge(o *Accumulators[T]) {
	for i, n := range o.counts {
		a.counts[i] += n
	}
	geom.AddInPlace(a.sums, o.sums)
}

// Reset zeroes all counts and sums.
func (a *Accumulators[T]) Reset() {
	clear(a.counts)
	geom.Zero(a.sums)
}

func (a *Accumulators[T]) fits(k, dim int) bool {
	return len(a.counts) == k && a.dim == dim
}
