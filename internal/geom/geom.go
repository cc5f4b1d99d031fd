package geom

import (
	"github.com/viterin/vek"
	"github.com/viterin/vek/vek32"
)

// Float is the set of coordinate element types supported by the engine.
type Float interface {
	~float32 | ~float64
}

// AddInPlace adds src to dst element-wise: dst[i] += src[i].
func AddInPlace[T Float](dst, src []T) {
	if useSIMD {
		switch d := any(dst).(type) {
		case []float32:
			vek32.Add_Inplace(d, any(src).([]float32))
			return
		case []float64:
			vek.Add_Inplace(d, any(src).([]float64))
			return
		}
	}
	addGeneric(dst, src)
}

// Divide writes src[i] / scalar into dst[i].
// The caller guarantees scalar != 0.
func Divide[T Float](dst, src []T, scalar T) {
	if useSIMD {
		switch d := any(dst).(type) {
		case []float32:
			vek32.DivNumber_Into(d, any(src).([]float32), float32(scalar))
			return
		case []float64:
			vek.DivNumber_Into(d, any(src).([]float64), float64(scalar))
			return
		}
	}
	divideGeneric(dst, src, scalar)
}

// SquaredL2 returns the squared Euclidean distance between a and b.
//
// This is always the scalar loop so that every caller, sequential or
// parallel, sees bit-identical distances for the same pair of points.
func SquaredL2[T Float](a, b []T) T {
	var dist T
	for i := range a {
		diff := a[i] - b[i]
		dist += diff * diff
	}
	return dist
}

// Zero sets every element of v to 0.
func Zero[T Float](v []T) {
	clear(v)
}

func addGeneric[T Float](dst, src []T) {
	for i := range dst {
		dst[i] += src[i]
	}
}

func divideGeneric[T Float](dst, src []T, scalar T) {
	for i := range dst {
		dst[i] = src[i] / scalar
	}
}
