package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	s, err := NewStore(2, []float32{0, 0, 0, 1, 10, 0})
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.Dim())
	assert.Equal(t, []float32{10, 0}, s.Point(2))

	for i := 0; i < s.Len(); i++ {
		pi := s.Info(i)
		assert.Equal(t, Unassigned, pi.Centroid)
		assert.Equal(t, float32(-1), pi.SqrDist)
	}
	assert.Equal(t, []int{Unassigned, Unassigned, Unassigned}, s.Assignments())
	assert.Positive(t, s.SizeBytes())
}

func TestNewStore_Errors(t *testing.T) {
	_, err := NewStore(0, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = NewStore[float64](2, nil)
	assert.ErrorIs(t, err, ErrNoPoints)

	_, err = NewStore(2, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrRaggedCoordinates)
}

func TestStore_PointIsBounded(t *testing.T) {
	s := newTestStore(t, 2, []float64{1, 2, 3, 4})
	p := s.Point(0)
	assert.Equal(t, 2, cap(p))

	// Appending to the view must not clobber the next point.
	_ = append(p, 99)
	assert.Equal(t, []float64{3, 4}, s.Point(1))
}

func TestCentroids(t *testing.T) {
	c := NewCentroids[float64](2, 2)
	assert.Equal(t, 0, c.Len())

	c.Append([]float64{1, 2})
	c.Append([]float64{3, 4})
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []float64{3, 4}, c.At(1))

	c.Set(0, []float64{5, 6})
	rows := c.Rows()
	assert.Equal(t, [][]float64{{5, 6}, {3, 4}}, rows)

	rows[0][0] = 42
	assert.Equal(t, []float64{5, 6}, c.At(0), "Rows must copy")

	from := CentroidsFrom(2, [][]float64{{0, 0}, {10, 0}})
	assert.Equal(t, 2, from.Len())
	assert.Equal(t, 2, from.Dim())
}

func TestAccumulators(t *testing.T) {
	a := NewAccumulators[float64](2, 2)
	a.Add(0, []float64{1, 1})
	a.Add(0, []float64{2, 3})
	a.Add(1, []float64{5, 5})

	assert.Equal(t, 2, a.Count(0))
	assert.Equal(t, []float64{3, 4}, a.Sum(0))

	b := NewAccumulators[float64](2, 2)
	b.Add(1, []float64{1, 1})
	a.Merge(b)

	assert.Equal(t, 2, a.Count(1))
	assert.Equal(t, []float64{6, 6}, a.Sum(1))

	a.Reset()
	assert.Equal(t, 0, a.Count(0))
	assert.Equal(t, []float64{0, 0}, a.Sum(1))
	assert.True(t, a.fits(2, 2))
	assert.False(t, a.fits(3, 2))
}
