package kmeans

import "github.com/hupe1980/lloyd/internal/geom"

// Centroids is an ordered list of cluster representatives. The index of a
// centroid is its cluster id.
type Centroids[T geom.Float] struct {
	dim  int
	data []T
}

// NewCentroids returns an empty list with room for capacity centroids.
func NewCentroids[T geom.Float](dim, capacity int) *Centroids[T] {
	return &Centroids[T]{
		dim:  dim,
		data: make([]T, 0, dim*capacity),
	}
}

// CentroidsFrom builds a list from explicit rows. Every row must have
// length dim.
func CentroidsFrom[T geom.Float](dim int, rows [][]T) *Centroids[T] {
	c := NewCentroids[T](dim, len(rows))
	for _, r := range rows {
		c.Append(r)
	}
	return c
}

// Len returns the number of centroids.
func (c *Centroids[T]) Len() int {
	if c.dim == 0 {
		return 0
	}
	return len(c.data) / c.dim
}

// Dim returns the centroid dimension.
func (c *Centroids[T]) Dim() int {
	return c.dim
}

// At returns centroid i. The returned slice aliases the list.
func (c *Centroids[T]) At(i int) []T {
	lo := i * c.dim
	return c.data[lo : lo+c.dim : lo+c.dim]
}

// Append copies p to the end of the list.
func (c *Centroids[T]) Append(p []T) {
	c.data = append(c.data, p[:c.dim]...)
}

// Set overwrites centroid i with p.
func (c *Centroids[T]) Set(i int, p []T) {
	copy(c.At(i), p)
}

// Rows returns a deep copy of the list as one slice per centroid.
func (c *Centroids[T]) Rows() [][]T {
	rows := make([][]T, c.Len())
	for i := range rows {
		rows[i] = append([]T(nil), c.At(i)...)
	}
	return rows
}
