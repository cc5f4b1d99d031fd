package testutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestUniformPoints(t *testing.T) {
	rng := NewRNG(4711)

	p := UniformPoints[float32](rng, 8, 32)

	assert.Equal(t, 8, len(p))
	assert.Equal(t, 32, len(p[0]))
	assert.Equal(t, 32, cap(p[0]))
	for _, v := range p[3] {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	p1 := UniformPoints[float64](rng, 1, 10)

	rng.Reset()
	p2 := UniformPoints[float64](rng, 1, 10)

	assert.Equal(t, p1, p2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestRNG_IntnFloat64(t *testing.T) {
	rng := NewRNG(1)
	for range 100 {
		assert.Less(t, rng.Intn(5), 5)
		f := rng.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestBlobs(t *testing.T) {
	cfg := BlobConfig{
		Clusters:    3,
		PerCluster:  2000,
		CenterMeans: []float64{0, 50},
		CenterDevs:  []float64{100, 100},
		PointDevs:   []float64{1, 2},
	}
	require.NoError(t, cfg.Validate())

	points, centers := Blobs(NewRNG(7), cfg)
	require.Len(t, points, 6000)
	require.Len(t, centers, 3)

	// Points are emitted cluster after cluster around their center.
	second := points[2000:4000]
	xs := make([]float64, len(second))
	for i, p := range second {
		xs[i] = p[0]
	}
	mean, std := stat.MeanStdDev(xs, nil)
	assert.InDelta(t, centers[1][0], mean, 0.2)
	assert.InDelta(t, 1.0, std, 0.1)
}

func TestBlobConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultBlobConfig().Validate())
	assert.Equal(t, 3, DefaultBlobConfig().Dim())

	bad := DefaultBlobConfig()
	bad.PointDevs = bad.PointDevs[:2]
	assert.Error(t, bad.Validate())

	bad = DefaultBlobConfig()
	bad.Clusters = 0
	assert.Error(t, bad.Validate())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, [][]float64{{1, 2.5}, {-3, 4}}))
	assert.Equal(t, "c0,c1\n1,2.5\n-3,4\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteCSV[float32](&buf, nil))
	assert.Empty(t, strings.TrimSpace(buf.String()))
}
