package kmeans

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd/internal/geom"
)

func newTestStore[T geom.Float](t *testing.T, dim int, coords []T) *Store[T] {
	t.Helper()
	s, err := NewStore(dim, coords)
	require.NoError(t, err)
	return s
}

// randomCoords draws n points around a handful of blob centres.
func randomCoords[T geom.Float](rng *rand.Rand, n, dim int) []T {
	const blobs = 5
	centres := make([]float64, blobs*dim)
	for i := range centres {
		centres[i] = rng.Float64() * 200
	}

	coords := make([]T, n*dim)
	for i := 0; i < n; i++ {
		b := rng.Intn(blobs)
		for d := 0; d < dim; d++ {
			coords[i*dim+d] = T(centres[b*dim+d] + rng.NormFloat64()*15)
		}
	}
	return coords
}

// fixedRand returns scripted values.
type fixedRand struct {
	ints   []int
	floats []float64
}

func (r *fixedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *fixedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}
