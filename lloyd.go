package lloyd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/lloyd/internal/kmeans"
)

// PointSource yields points in order. Read returns io.EOF after the last
// point. *pointio.CSVReader satisfies it.
type PointSource[T Float] interface {
	Read() ([]T, error)
}

// ResultSink receives every point with its cluster index, in the order the
// points were loaded. *pointio.CSVWriter satisfies it.
type ResultSink[T Float] interface {
	Write(point []T, cluster int) error
}

// Clusterer partitions a fixed set of points into k clusters with Lloyd's
// algorithm. Centroids are seeded once, at construction; Run then moves them
// for a given number of generations and may be called repeatedly.
//
// All methods are safe for concurrent use; calls are serialized.
type Clusterer[T Float] struct {
	mu       sync.Mutex
	engine   *kmeans.Engine[T]
	updater  kmeans.Updater[T]
	seed     kmeans.SeedStats
	opts     options
	logger   *Logger
	reserved int64
	assigned bool
	closed   bool
}

// New reads every point from src and seeds k centroids.
func New[T Float](ctx context.Context, src PointSource[T], k int, optFns ...Option) (*Clusterer[T], error) {
	o := applyOptions(optFns)

	start := time.Now()
	coords, dim, n, err := load(src, o.dimension)
	elapsed := time.Since(start)

	o.metricsCollector.RecordLoad(n, elapsed, err)
	o.logger.LogLoad(ctx, n, dim, elapsed, err)

	if err != nil {
		return nil, err
	}

	return build(ctx, coords, dim, k, o)
}

// NewFromPoints clusters points held in memory. The coordinates are copied.
func NewFromPoints[T Float](ctx context.Context, points [][]T, k int, optFns ...Option) (*Clusterer[T], error) {
	o := applyOptions(optFns)

	if len(points) == 0 {
		return nil, ErrNoPoints
	}

	dim := o.dimension
	if dim == 0 {
		dim = len(points[0])
	}

	coords := make([]T, 0, len(points)*dim)
	for i, p := range points {
		if len(p) != dim {
			return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(p), Index: i}
		}
		coords = append(coords, p...)
	}

	return build(ctx, coords, dim, k, o)
}

func load[T Float](src PointSource[T], fixedDim int) ([]T, int, int, error) {
	dim := fixedDim
	var (
		coords []T
		n      int
	)

	for {
		p, err := src.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, dim, n, &ErrLoad{Point: n, cause: err}
		}

		if dim == 0 {
			dim = len(p)
		}
		if len(p) != dim {
			return nil, dim, n, &ErrDimensionMismatch{Expected: dim, Actual: len(p), Index: n}
		}

		coords = append(coords, p...)
		n++
	}

	if n == 0 {
		return nil, dim, 0, ErrNoPoints
	}
	return coords, dim, n, nil
}

func build[T Float](ctx context.Context, coords []T, dim, k int, o options) (*Clusterer[T], error) {
	if o.workers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, o.workers)
	}

	store, err := kmeans.NewStore(dim, coords)
	if err != nil {
		return nil, err
	}
	if k < 1 || k > store.Len() {
		return nil, fmt.Errorf("%w: k=%d, points=%d", ErrInvalidK, k, store.Len())
	}

	reserved := store.SizeBytes()
	if err := o.resource.AcquireMemory(ctx, reserved); err != nil {
		return nil, fmt.Errorf("reserve point store: %w", err)
	}

	c, err := seed(ctx, store, k, o)
	if err != nil {
		o.resource.ReleaseMemory(reserved)
		return nil, err
	}
	c.reserved = reserved
	return c, nil
}

func seed[T Float](ctx context.Context, store *kmeans.Store[T], k int, o options) (*Clusterer[T], error) {
	updater, err := kmeans.NewUpdater[T](o.strategy, o.workers)
	if err != nil {
		return nil, err
	}

	logger := o.logger.WithK(k).WithDimension(store.Dim()).WithStrategy(o.strategy, updater.Workers())

	var (
		centroids *kmeans.Centroids[T]
		stats     kmeans.SeedStats
	)

	if o.initial != nil {
		centroids, err = initialCentroids[T](o.initial, k, store.Dim())
	} else {
		start := time.Now()
		centroids, stats, err = kmeans.Seed(store, k, updater, o.rng)
		if err == nil {
			elapsed := time.Since(start)
			o.metricsCollector.RecordSeed(k, stats.Fallbacks, elapsed)
			logger.LogSeed(ctx, k, stats.Fallbacks, elapsed)
		}
	}
	if err != nil {
		_ = updater.Close()
		return nil, err
	}

	engine, err := kmeans.NewEngine(store, centroids, updater, o.policy)
	if err != nil {
		_ = updater.Close()
		return nil, err
	}

	return &Clusterer[T]{
		engine:  engine,
		updater: updater,
		seed:    stats,
		opts:    o,
		logger:  logger,
	}, nil
}

func initialCentroids[T Float](rows [][]float64, k, dim int) (*kmeans.Centroids[T], error) {
	if len(rows) != k {
		return nil, fmt.Errorf("%w: got %d, k=%d", ErrCentroidCount, len(rows), k)
	}

	centroids := kmeans.NewCentroids[T](dim, k)
	p := make([]T, dim)
	for i, r := range rows {
		if len(r) != dim {
			return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(r), Index: i}
		}
		for j, v := range r {
			p[j] = T(v)
		}
		centroids.Append(p)
	}
	return centroids, nil
}

// Run executes generations generations and returns the objective of the
// last one: the total squared distance of every point to the centroid it was
// assigned to in that generation's assignment pass. Run returns 0 for
// generations == 0.
//
// ctx is checked between generations. On cancellation the generations
// completed so far are kept and ctx.Err() is returned.
func (c *Clusterer[T]) Run(ctx context.Context, generations int) (T, error) {
	if generations < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidGenerations, generations)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, ErrClosed
	}

	rc := c.opts.resource
	if err := rc.AcquireRun(ctx); err != nil {
		return 0, err
	}
	defer rc.ReleaseRun()

	start := time.Now()
	last := start
	objective, err := c.engine.Run(ctx, generations, func(s kmeans.GenerationStats[T]) {
		now := time.Now()
		elapsed := now.Sub(last)
		last = now

		c.opts.metricsCollector.RecordGeneration(s.Generation, float64(s.Objective), s.Empty, elapsed)
		c.logger.LogGeneration(ctx, s.Generation, float64(s.Objective), s.Empty, s.Reseeded, elapsed)
	})
	if c.engine.Generation() > 0 {
		c.assigned = true
	}

	c.logger.LogRun(ctx, generations, float64(objective), time.Since(start), err)
	return objective, err
}

// ensureAssigned makes PointInfo reflect the current centroids when no
// generation has run yet. Seeding leaves it reflecting only the first k-1
// centroids.
func (c *Clusterer[T]) ensureAssigned() {
	if c.assigned || c.closed {
		return
	}
	c.updater.Update(c.engine.Store(), c.engine.Centroids())
	c.assigned = true
}

// K returns the number of clusters.
func (c *Clusterer[T]) K() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Centroids().Len()
}

// Dim returns the point dimension.
func (c *Clusterer[T]) Dim() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Store().Dim()
}

// Len returns the number of points.
func (c *Clusterer[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Store().Len()
}

// Centroids returns a copy of the current centroids, indexed by cluster.
func (c *Clusterer[T]) Centroids() [][]T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Centroids().Rows()
}

// Assignments returns the cluster index of every point, in load order.
func (c *Clusterer[T]) Assignments() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureAssigned()
	return c.engine.Store().Assignments()
}

// Objective returns the objective of the last generation, or 0 before the
// first one.
func (c *Clusterer[T]) Objective() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Objective()
}

// Generation returns the number of completed generations.
func (c *Clusterer[T]) Generation() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Generation()
}

// SeedFallbacks returns how many initial centroids were chosen by the
// uniform fallback instead of the weighted scan.
func (c *Clusterer[T]) SeedFallbacks() int {
	return c.seed.Fallbacks
}

// Members returns the indices of the points assigned to cluster. An unknown
// cluster yields an empty bitmap.
func (c *Clusterer[T]) Members(cluster int) *roaring.Bitmap {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureAssigned()

	bm := roaring.New()
	if cluster < 0 || cluster >= c.engine.Centroids().Len() {
		return bm
	}

	store := c.engine.Store()
	for i := 0; i < store.Len(); i++ {
		if store.Info(i).Centroid == cluster {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// partition returns one membership bitmap per cluster. c.mu must be held.
func (c *Clusterer[T]) partition() []*roaring.Bitmap {
	c.ensureAssigned()

	parts := make([]*roaring.Bitmap, c.engine.Centroids().Len())
	for i := range parts {
		parts[i] = roaring.New()
	}

	store := c.engine.Store()
	for i := 0; i < store.Len(); i++ {
		if cl := store.Info(i).Centroid; cl >= 0 {
			parts[cl].Add(uint32(i))
		}
	}
	for _, bm := range parts {
		bm.RunOptimize()
	}
	return parts
}

// Export writes every point with its cluster index to sink, in load order.
func (c *Clusterer[T]) Export(ctx context.Context, sink ResultSink[T]) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	c.ensureAssigned()

	store := c.engine.Store()
	for i := 0; i < store.Len(); i++ {
		if err := sink.Write(store.Point(i), store.Info(i).Centroid); err != nil {
			err = fmt.Errorf("export point %d: %w", i, err)
			c.logger.LogExport(ctx, i, err)
			return err
		}
	}

	c.logger.LogExport(ctx, store.Len(), nil)
	return nil
}

// Close stops the worker pool and releases the memory reservation.
// Close is idempotent.
func (c *Clusterer[T]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	c.opts.resource.ReleaseMemory(c.reserved)
	return c.updater.Close()
}
