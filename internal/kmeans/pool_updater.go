package kmeans

import (
	"github.com/hupe1980/lloyd/internal/geom"
	"github.com/hupe1980/lloyd/internal/pool"
)

type workerPool[T geom.Float] struct {
	pool    *pool.Pool
	scratch scratch[T]
}

func newWorkerPool[T geom.Float](workers int) *workerPool[T] {
	return &workerPool[T]{pool: pool.New(workers)}
}

func (u *workerPool[T]) Update(s *Store[T], centroids *Centroids[T]) (*Accumulators[T], T) {
	r := &reducer[T]{acc: NewAccumulators[T](centroids.Len(), s.Dim())}

	err := u.pool.ParallelizeLoop(0, s.Len(), func(lo, hi int) {
		u.scratch.process(s, centroids, lo, hi, r)
	})
	if err != nil {
		panic("kmeans: update on a closed worker pool")
	}

	return r.acc, r.sum
}

func (u *workerPool[T]) Strategy() Strategy { return StrategyWorkerPool }
func (u *workerPool[T]) Workers() int       { return u.pool.Size() }
func (u *workerPool[T]) Close() error       { return u.pool.Close() }
