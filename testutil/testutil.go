package testutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"sync"

	"github.com/hupe1980/lloyd/internal/geom"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe and satisfies lloyd.Rand.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints generates num points with coordinates in [0, 1).
// Uses a single backing array for efficiency.
func UniformPoints[T geom.Float](r *RNG, num, dim int) [][]T {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]T, num*dim)
	points := make([][]T, num)

	for i := range num {
		p := data[i*dim : (i+1)*dim : (i+1)*dim]
		for j := range p {
			p[j] = T(r.rand.Float64())
		}
		points[i] = p
	}

	return points
}

// BlobConfig describes a Gaussian mixture. Cluster centers are drawn
// per dimension from N(CenterMeans[d], CenterDevs[d]); points from
// N(center[d], PointDevs[d]).
type BlobConfig struct {
	Clusters    int
	PerCluster  int
	CenterMeans []float64
	CenterDevs  []float64
	PointDevs   []float64
}

// DefaultBlobConfig returns five three-dimensional blobs of 1000 points.
func DefaultBlobConfig() BlobConfig {
	return BlobConfig{
		Clusters:    5,
		PerCluster:  1000,
		CenterMeans: []float64{100, 100, 100},
		CenterDevs:  []float64{80, 30, 70},
		PointDevs:   []float64{40, 15, 50},
	}
}

// Dim returns the dimension of the generated points.
func (c BlobConfig) Dim() int {
	return len(c.CenterMeans)
}

// Validate checks that every per-dimension slice has the same length.
func (c BlobConfig) Validate() error {
	if c.Clusters < 1 || c.PerCluster < 1 {
		return fmt.Errorf("testutil: clusters and points per cluster must be positive, got %d and %d", c.Clusters, c.PerCluster)
	}
	if c.Dim() == 0 || len(c.CenterDevs) != c.Dim() || len(c.PointDevs) != c.Dim() {
		return fmt.Errorf("testutil: means, center and point deviations must have the same non-zero length")
	}
	return nil
}

// Blobs draws the points of cfg, cluster after cluster, and returns them
// with the cluster centers.
func Blobs(r *RNG, cfg BlobConfig) (points, centers [][]float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dim := cfg.Dim()
	centers = make([][]float64, cfg.Clusters)
	for c := range centers {
		centers[c] = make([]float64, dim)
		for d := range dim {
			centers[c][d] = cfg.CenterMeans[d] + r.rand.NormFloat64()*cfg.CenterDevs[d]
		}
	}

	data := make([]float64, cfg.Clusters*cfg.PerCluster*dim)
	points = make([][]float64, 0, cfg.Clusters*cfg.PerCluster)
	for _, center := range centers {
		for range cfg.PerCluster {
			i := len(points)
			p := data[i*dim : (i+1)*dim : (i+1)*dim]
			for d := range dim {
				p[d] = center[d] + r.rand.NormFloat64()*cfg.PointDevs[d]
			}
			points = append(points, p)
		}
	}

	return points, centers
}

// WriteCSV writes a "c0,c1,..." header followed by one record per point.
func WriteCSV[T geom.Float](w io.Writer, points [][]T) error {
	cw := csv.NewWriter(w)

	if len(points) > 0 {
		header := make([]string, len(points[0]))
		for i := range header {
			header[i] = "c" + strconv.Itoa(i)
		}
		if err := cw.Write(header); err != nil {
			return err
		}
	}

	var record []string
	for _, p := range points {
		record = record[:0]
		for _, v := range p {
			record = append(record, strconv.FormatFloat(float64(v), 'g', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
