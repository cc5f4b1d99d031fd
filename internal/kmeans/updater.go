package kmeans

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/lloyd/internal/geom"
)

// Strategy selects how the update step is executed.
type Strategy int

const (
	// StrategySequential runs the update step on the calling goroutine.
	StrategySequential Strategy = iota
	// StrategyWorkerPool runs the update step on a fixed goroutine pool
	// created once per Updater.
	StrategyWorkerPool
	// StrategyDataParallel fans the update step out with one errgroup task
	// per point range.
	StrategyDataParallel
)

func (s Strategy) String() string {
	switch s {
	case StrategySequential:
		return "sequential"
	case StrategyWorkerPool:
		return "pool"
	case StrategyDataParallel:
		return "parallel"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// ParseStrategy maps a strategy name ("sequential", "pool", "parallel") to
// its Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sequential", "single", "seq":
		return StrategySequential, nil
	case "pool", "tp", "threadpool":
		return StrategyWorkerPool, nil
	case "parallel", "omp", "data-parallel":
		return StrategyDataParallel, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Updater runs one assignment/aggregation pass.
//
// Update assigns every point of s to its nearest centroid, writes the
// result into the point's PointInfo and folds the point into fresh
// accumulators. It returns the accumulators and the total squared distance.
// Update blocks until the whole pass is done and must not be called
// concurrently on the same store.
type Updater[T geom.Float] interface {
	Update(s *Store[T], centroids *Centroids[T]) (*Accumulators[T], T)
	Strategy() Strategy
	Workers() int
	Close() error
}

// NewUpdater returns the Updater for strategy. workers is ignored by the
// sequential strategy but must still be at least 1.
func NewUpdater[T geom.Float](strategy Strategy, workers int) (Updater[T], error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}

	switch strategy {
	case StrategySequential:
		return sequential[T]{}, nil
	case StrategyWorkerPool:
		return newWorkerPool[T](workers), nil
	case StrategyDataParallel:
		return newDataParallel[T](workers), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, strategy)
	}
}

// updateRange is the per-point kernel shared by every strategy. It writes
// PointInfo only for indices in [lo, hi).
func updateRange[T geom.Float](s *Store[T], centroids *Centroids[T], lo, hi int, acc *Accumulators[T]) T {
	var sum T
	for i := lo; i < hi; i++ {
		p := s.Point(i)
		c, d := Nearest(p, centroids)
		s.infos[i] = PointInfo[T]{Centroid: c, SqrDist: d}
		acc.Add(c, p)
		sum += d
	}
	return sum
}

type sequential[T geom.Float] struct{}

func (sequential[T]) Update(s *Store[T], centroids *Centroids[T]) (*Accumulators[T], T) {
	acc := NewAccumulators[T](centroids.Len(), s.Dim())
	sum := updateRange(s, centroids, 0, s.Len(), acc)
	return acc, sum
}

func (sequential[T]) Strategy() Strategy { return StrategySequential }
func (sequential[T]) Workers() int       { return 1 }
func (sequential[T]) Close() error       { return nil }

// reducer is the shared side of the two-level reduction. Workers fold into
// private accumulators and call merge exactly once.
type reducer[T geom.Float] struct {
	mu  sync.Mutex
	acc *Accumulators[T]
	sum T
}

func (r *reducer[T]) merge(local *Accumulators[T], localSum T) {
	r.mu.Lock()
	r.acc.Merge(local)
	r.sum += localSum
	r.mu.Unlock()
}

// scratch recycles worker-private accumulators between passes.
type scratch[T geom.Float] struct {
	pool sync.Pool
}

func (s *scratch[T]) get(k, dim int) *Accumulators[T] {
	if v := s.pool.Get(); v != nil {
		acc := v.(*Accumulators[T])
		if acc.fits(k, dim) {
			acc.Reset()
			return acc
		}
	}
	return NewAccumulators[T](k, dim)
}

func (s *scratch[T]) put(acc *Accumulators[T]) {
	s.pool.Put(acc)
}

// process runs one worker's share of a parallel pass: private accumulation
// over [lo, hi) followed by a single guarded merge.
func (s *scratch[T]) process(st *Store[T], centroids *Centroids[T], lo, hi int, r *reducer[T]) {
	local := s.get(centroids.Len(), st.Dim())
	sum := updateRange(st, centroids, lo, hi, local)
	r.merge(local, sum)
	s.put(local)
}
