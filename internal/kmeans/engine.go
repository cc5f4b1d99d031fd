package kmeans

import (
	"context"
	"fmt"

	"github.com/hupe1980/lloyd/internal/geom"
)

// EmptyClusterPolicy decides what happens to a centroid that attracted no
// points in a generation.
type EmptyClusterPolicy int

const (
	// RetainCentroid leaves the centroid at its previous position.
	RetainCentroid EmptyClusterPolicy = iota
	// ReseedFarthest moves the centroid onto the point farthest from its
	// own centroid. Each point is used at most once per generation, and a
	// cluster never gives up its last member.
	ReseedFarthest
)

func (p EmptyClusterPolicy) String() string {
	switch p {
	case RetainCentroid:
		return "retain"
	case ReseedFarthest:
		return "reseed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// GenerationStats describes one completed generation.
type GenerationStats[T geom.Float] struct {
	Generation int
	Objective  T
	Empty      int
	Reseeded   int
}

// Engine is the clustering driver. It owns the centroids and moves them
// after every update step.
type Engine[T geom.Float] struct {
	store      *Store[T]
	centroids  *Centroids[T]
	updater    Updater[T]
	policy     EmptyClusterPolicy
	generation int
	objective  T
	last       *Accumulators[T]
}

// NewEngine returns a driver over store starting from centroids.
func NewEngine[T geom.Float](store *Store[T], centroids *Centroids[T], u Updater[T], policy EmptyClusterPolicy) (*Engine[T], error) {
	if k := centroids.Len(); k < 1 || k > store.Len() {
		return nil, fmt.Errorf("%w: k=%d, points=%d", ErrInvalidK, k, store.Len())
	}
	if centroids.Dim() != store.Dim() {
		return nil, fmt.Errorf("%w: centroids have dimension %d, points %d", ErrInvalidDimension, centroids.Dim(), store.Dim())
	}

	return &Engine[T]{
		store:     store,
		centroids: centroids,
		updater:   u,
		policy:    policy,
	}, nil
}

// Step runs one generation: an update step followed by the centroid
// recomputation. The returned objective is the total squared distance of the
// assignment pass, measured against the centroids the pass started from.
func (e *Engine[T]) Step() GenerationStats[T] {
	acc, sum := e.updater.Update(e.store, e.centroids)

	stats := GenerationStats[T]{Objective: sum}

	var (
		used   map[int]struct{}
		donors []int
	)
	for c := 0; c < acc.Len(); c++ {
		if n := acc.Count(c); n > 0 {
			geom.Divide(e.centroids.At(c), acc.Sum(c), T(n))
			continue
		}

		stats.Empty++
		if e.policy != ReseedFarthest {
			continue
		}
		if used == nil {
			used = make(map[int]struct{})
			donors = make([]int, acc.Len())
			for i := range donors {
				donors[i] = acc.Count(i)
			}
		}
		if idx := e.farthest(used, donors); idx >= 0 {
			used[idx] = struct{}{}
			donors[e.store.infos[idx].Centroid]--
			e.centroids.Set(c, e.store.Point(idx))
			stats.Reseeded++
		}
	}

	e.generation++
	e.objective = sum
	e.last = acc
	stats.Generation = e.generation

	return stats
}

// Run executes generations steps and returns the objective of the last one,
// or 0 if generations is 0. ctx is checked between generations; a running
// step is never interrupted. observe, if non-nil, is called after each step.
func (e *Engine[T]) Run(ctx context.Context, generations int, observe func(GenerationStats[T])) (T, error) {
	var sum T
	for gen := 0; gen < generations; gen++ {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		stats := e.Step()
		sum = stats.Objective
		if observe != nil {
			observe(stats)
		}
	}
	return sum, nil
}

// farthest returns the index of the point with the largest positive squared
// distance that is not in used and whose cluster keeps at least one other
// member according to donors, or -1.
func (e *Engine[T]) farthest(used map[int]struct{}, donors []int) int {
	best := -1
	var bestDist T
	for i, pi := range e.store.infos {
		if _, ok := used[i]; ok {
			continue
		}
		if donors[pi.Centroid] < 2 {
			continue
		}
		if pi.SqrDist > bestDist {
			best, bestDist = i, pi.SqrDist
		}
	}
	return best
}

// Store returns the point store.
func (e *Engine[T]) Store() *Store[T] { return e.store }

// Centroids returns the live centroid list.
func (e *Engine[T]) Centroids() *Centroids[T] { return e.centroids }

// Generation returns the number of completed generations.
func (e *Engine[T]) Generation() int { return e.generation }

// Objective returns the objective of the last completed generation.
func (e *Engine[T]) Objective() T { return e.objective }

// Accumulators returns the accumulators of the last generation, or nil.
func (e *Engine[T]) Accumulators() *Accumulators[T] { return e.last }
