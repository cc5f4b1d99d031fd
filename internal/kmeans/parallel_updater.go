package kmeans

import (
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/lloyd/internal/geom"
	"github.com/hupe1980/lloyd/internal/pool"
)

type dataParallel[T geom.Float] struct {
	workers int
	scratch scratch[T]
}

func newDataParallel[T geom.Float](workers int) *dataParallel[T] {
	return &dataParallel[T]{workers: workers}
}

func (u *dataParallel[T]) Update(s *Store[T], centroids *Centroids[T]) (*Accumulators[T], T) {
	r := &reducer[T]{acc: NewAccumulators[T](centroids.Len(), s.Dim())}

	var g errgroup.Group
	g.SetLimit(u.workers)

	for _, block := range pool.Partition(0, s.Len(), u.workers) {
		g.Go(func() error {
			u.scratch.process(s, centroids, block.Lo, block.Hi, r)
			return nil
		})
	}
	_ = g.Wait()

	return r.acc, r.sum
}

func (u *dataParallel[T]) Strategy() Strategy { return StrategyDataParallel }
func (u *dataParallel[T]) Workers() int       { return u.workers }
func (u *dataParallel[T]) Close() error       { return nil }
