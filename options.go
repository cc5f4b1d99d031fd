package lloyd

import (
	"math/rand"
	"runtime"

	"github.com/hupe1980/lloyd/internal/geom"
	"github.com/hupe1980/lloyd/internal/kmeans"
	"github.com/hupe1980/lloyd/resource"
)

// Float is the set of supported coordinate types.
type Float = geom.Float

// Strategy selects how the update step runs.
type Strategy = kmeans.Strategy

const (
	// StrategySequential runs every update step on the calling goroutine.
	StrategySequential = kmeans.StrategySequential
	// StrategyWorkerPool runs update steps on a fixed goroutine pool owned by
	// the Clusterer.
	StrategyWorkerPool = kmeans.StrategyWorkerPool
	// StrategyDataParallel fans each update step out over an errgroup.
	StrategyDataParallel = kmeans.StrategyDataParallel
)

// ParseStrategy maps "sequential", "pool" or "parallel" to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	return kmeans.ParseStrategy(name)
}

// EmptyClusterPolicy decides what happens to a centroid without members.
type EmptyClusterPolicy = kmeans.EmptyClusterPolicy

const (
	// RetainCentroid keeps an empty cluster's centroid where it was.
	RetainCentroid = kmeans.RetainCentroid
	// ReseedFarthest moves an empty cluster's centroid onto the point
	// farthest from its own centroid, taken only from clusters that keep
	// another member.
	ReseedFarthest = kmeans.ReseedFarthest
)

// Rand is the random source used for seeding. *math/rand.Rand satisfies it.
type Rand = kmeans.Rand

type options struct {
	workers          int
	strategy         Strategy
	rng              Rand
	seed             int64
	seeded           bool
	dimension        int
	policy           EmptyClusterPolicy
	initial          [][]float64
	logger           *Logger
	metricsCollector MetricsCollector
	resource         *resource.Controller
}

// Option configures a Clusterer.
type Option func(*options)

func defaultOptions() options {
	return options{
		workers:          runtime.GOMAXPROCS(0),
		strategy:         StrategyWorkerPool,
		policy:           RetainCentroid,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

func applyOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	if o.rng == nil {
		seed := o.seed
		if !o.seeded {
			seed = rand.Int63()
		}
		o.rng = rand.New(rand.NewSource(seed))
	}

	return o
}

// WithWorkers sets the number of goroutines used by the parallel strategies.
// Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithStrategy selects the update strategy. Defaults to StrategyWorkerPool.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithSeed makes seeding reproducible. Results are only bit-for-bit
// repeatable with StrategySequential, because the parallel strategies merge
// partial sums in scheduling order.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithRand sets the random source used for seeding. It takes precedence
// over WithSeed.
func WithRand(r Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithDimension fixes the point dimension instead of inferring it from the
// first point.
func WithDimension(dim int) Option {
	return func(o *options) {
		o.dimension = dim
	}
}

// WithEmptyClusterPolicy selects the handling of clusters without members.
// Defaults to RetainCentroid.
func WithEmptyClusterPolicy(p EmptyClusterPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithInitialCentroids skips seeding and starts from rows, for example the
// centroids of a saved Model. len(rows) must equal k.
func WithInitialCentroids[T Float](rows [][]T) Option {
	cp := make([][]float64, len(rows))
	for i, r := range rows {
		cp[i] = make([]float64, len(r))
		for j, v := range r {
			cp[i][j] = float64(v)
		}
	}
	return func(o *options) {
		o.initial = cp
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector. If nil is passed,
// NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithResourceController bounds the memory held by point stores and the
// number of concurrently running Clusterers.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resource = rc
	}
}
