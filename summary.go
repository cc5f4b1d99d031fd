package lloyd

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/lloyd/internal/geom"
)

// ClusterSummary describes one cluster.
type ClusterSummary struct {
	Size int `json:"size"`
	// Inertia is the sum of squared distances from the members to the
	// cluster's current centroid.
	Inertia float64 `json:"inertia"`
}

// Summary describes the current partition.
type Summary struct {
	Points     int              `json:"points"`
	Generation int              `json:"generation"`
	Objective  float64          `json:"objective"`
	Clusters   []ClusterSummary `json:"clusters"`
	Empty      int              `json:"empty"`

	// SizeMean and SizeStdDev are the mean and sample standard deviation of
	// the cluster sizes.
	SizeMean   float64 `json:"size_mean"`
	SizeStdDev float64 `json:"size_stddev"`

	// Inertia is the sum of all cluster inertias.
	Inertia float64 `json:"inertia"`
}

// Summary computes cluster sizes and inertia for the current assignment.
func (c *Clusterer[T]) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	parts := c.partition()
	store := c.engine.Store()
	centroids := c.engine.Centroids()

	sizes := make([]float64, len(parts))
	inertia := make([]float64, len(parts))
	clusters := make([]ClusterSummary, len(parts))
	empty := 0

	for cl, bm := range parts {
		centroid := centroids.At(cl)
		it := bm.Iterator()
		for it.HasNext() {
			p := store.Point(int(it.Next()))
			inertia[cl] += float64(geom.SquaredL2(p, centroid))
		}

		size := int(bm.GetCardinality())
		if size == 0 {
			empty++
		}
		sizes[cl] = float64(size)
		clusters[cl] = ClusterSummary{Size: size, Inertia: inertia[cl]}
	}

	mean, std := stat.MeanStdDev(sizes, nil)
	if len(sizes) < 2 {
		std = 0
	}

	return Summary{
		Points:     store.Len(),
		Generation: c.engine.Generation(),
		Objective:  float64(c.engine.Objective()),
		Clusters:   clusters,
		Empty:      empty,
		SizeMean:   mean,
		SizeStdDev: std,
		Inertia:    floats.Sum(inertia),
	}
}
