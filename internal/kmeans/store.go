package kmeans

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/lloyd/internal/geom"
)

// Unassigned marks a point that has not been through an assignment pass.
const Unassigned = -1

// PointInfo is the mutable assignment state of one point.
type PointInfo[T geom.Float] struct {
	// Centroid is the index of the nearest centroid, or Unassigned.
	Centroid int
	// SqrDist is the squared distance to Centroid, or -1 while unassigned.
	SqrDist T
}

// Store holds n points of a fixed dimension in one flat slice.
//
// Coordinates never change after construction. Assignment state may be
// written concurrently as long as the writers target disjoint indices.
type Store[T geom.Float] struct {
	dim    int
	coords []T
	infos  []PointInfo[T]
}

// NewStore builds a store over coords, which holds len(coords)/dim points
// laid out row by row. The slice is used as-is and must not be modified
// afterwards.
func NewStore[T geom.Float](dim int, coords []T) (*Store[T], error) {
	if dim < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, dim)
	}
	if len(coords) == 0 {
		return nil, ErrNoPoints
	}
	if len(coords)%dim != 0 {
		return nil, fmt.Errorf("%w: %d coordinates, dimension %d", ErrRaggedCoordinates, len(coords), dim)
	}

	n := len(coords) / dim
	infos := make([]PointInfo[T], n)
	for i := range infos {
		infos[i] = PointInfo[T]{Centroid: Unassigned, SqrDist: -1}
	}

	return &Store[T]{
		dim:    dim,
		coords: coords,
		infos:  infos,
	}, nil
}

// Len returns the number of points.
func (s *Store[T]) Len() int {
	return len(s.infos)
}

// Dim returns the point dimension.
func (s *Store[T]) Dim() int {
	return s.dim
}

// Point returns a read-only view of point i.
func (s *Store[T]) Point(i int) []T {
	lo := i * s.dim
	return s.coords[lo : lo+s.dim : lo+s.dim]
}

// Info returns the assignment state of point i.
func (s *Store[T]) Info(i int) PointInfo[T] {
	return s.infos[i]
}

// Assignments copies every point's centroid index into a new slice.
func (s *Store[T]) Assignments() []int {
	out := make([]int, len(s.infos))
	for i, pi := range s.infos {
		out[i] = pi.Centroid
	}
	return out
}

// SizeBytes estimates the memory held by the store.
func (s *Store[T]) SizeBytes() int64 {
	var zero PointInfo[T]
	elem := int64(unsafe.Sizeof(zero.SqrDist))
	return int64(len(s.coords))*elem + int64(len(s.infos))*int64(unsafe.Sizeof(zero))
}
