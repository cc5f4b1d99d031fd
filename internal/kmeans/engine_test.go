package kmeans

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

func newTestEngine(t *testing.T, s *Store[float64], rows [][]float64, strategy Strategy, workers int, policy EmptyClusterPolicy) *Engine[float64] {
	t.Helper()
	e, err := NewEngine(s, CentroidsFrom(s.Dim(), rows), newTestUpdater(t, strategy, workers), policy)
	require.NoError(t, err)
	return e
}

func TestEngine_FourPoints(t *testing.T) {
	for _, strategy := range allStrategies {
		t.Run(strategy.String(), func(t *testing.T) {
			s := newTestStore(t, 2, []float64{0, 0, 0, 1, 10, 0, 10, 1})
			e := newTestEngine(t, s, [][]float64{{0, 0}, {10, 0}}, strategy, 4, RetainCentroid)

			// The first pass measures against the seeded centroids; the 0.5 of
			// the worked example is per-cluster inertia (see DESIGN.md).
			sum, err := e.Run(context.Background(), 1, nil)
			require.NoError(t, err)
			assert.Equal(t, 2.0, sum)

			assert.Equal(t, [][]float64{{0, 0.5}, {10, 0.5}}, e.Centroids().Rows())
			assert.Equal(t, []int{0, 0, 1, 1}, s.Assignments())
			assert.Equal(t, 1, e.Generation())

			// Against the recomputed centroids every point is 0.25 away.
			stats := e.Step()
			assert.Equal(t, 1.0, stats.Objective)
			assert.Equal(t, 2, stats.Generation)
			for i := 0; i < s.Len(); i++ {
				assert.Equal(t, 0.25, s.Info(i).SqrDist)
			}
			assert.Equal(t, [][]float64{{0, 0.5}, {10, 0.5}}, e.Centroids().Rows())
		})
	}
}

func TestEngine_KEqualsN(t *testing.T) {
	coords := []float64{0, 0, 3, 1, -2, 5, 7, 7, 1, -9}
	s := newTestStore(t, 2, coords)
	u := newTestUpdater(t, StrategyDataParallel, 2)

	centroids, _, err := Seed(s, s.Len(), u, rand.New(rand.NewSource(8)))
	require.NoError(t, err)

	e, err := NewEngine(s, centroids, u, RetainCentroid)
	require.NoError(t, err)

	for gen := 0; gen < 3; gen++ {
		stats := e.Step()
		assert.Zero(t, stats.Objective)
		assert.Zero(t, stats.Empty)
	}
	for c := 0; c < e.Accumulators().Len(); c++ {
		assert.Equal(t, 1, e.Accumulators().Count(c))
	}
}

func TestEngine_EmptyCluster(t *testing.T) {
	// The centroid at 100 never wins a point.
	rows := [][]float64{{0}, {1}, {100}}

	t.Run("Retain", func(t *testing.T) {
		s := newTestStore(t, 1, []float64{0, 1, 10})
		e := newTestEngine(t, s, rows, StrategySequential, 1, RetainCentroid)

		stats := e.Step()
		assert.Equal(t, 1, stats.Empty)
		assert.Zero(t, stats.Reseeded)
		assert.Equal(t, [][]float64{{0}, {5.5}, {100}}, e.Centroids().Rows())
	})

	t.Run("Reseed", func(t *testing.T) {
		s := newTestStore(t, 1, []float64{0, 1, 10})
		e := newTestEngine(t, s, rows, StrategySequential, 1, ReseedFarthest)

		stats := e.Step()
		assert.Equal(t, 1, stats.Empty)
		assert.Equal(t, 1, stats.Reseeded)
		assert.Equal(t, [][]float64{{0}, {5.5}, {10}}, e.Centroids().Rows())

		// The reseeded centroid now owns the point at 10.
		e.Step()
		assert.Equal(t, []int{0, 0, 2}, s.Assignments())
	})

	t.Run("ReseedUsesEachPointOnce", func(t *testing.T) {
		s := newTestStore(t, 1, []float64{0, 0, 4, 9})
		e := newTestEngine(t, s, [][]float64{{0}, {50}, {60}}, StrategySequential, 1, ReseedFarthest)

		stats := e.Step()
		assert.Equal(t, 2, stats.Empty)
		assert.Equal(t, 2, stats.Reseeded)
		assert.Equal(t, [][]float64{{3.25}, {9}, {4}}, e.Centroids().Rows())
	})

	t.Run("ReseedKeepsSingletons", func(t *testing.T) {
		// The point at 10 is the only member of cluster 1.
		s := newTestStore(t, 1, []float64{0, 0, 10})
		e := newTestEngine(t, s, [][]float64{{0}, {9}, {100}}, StrategySequential, 1, ReseedFarthest)

		for gen := 0; gen < 3; gen++ {
			stats := e.Step()
			assert.Equal(t, 1, stats.Empty)
			assert.Zero(t, stats.Reseeded)
		}
		assert.Equal(t, [][]float64{{0}, {10}, {100}}, e.Centroids().Rows())
		assert.Equal(t, []int{0, 0, 1}, s.Assignments())
	})

	t.Run("ReseedDrainsDonorOnce", func(t *testing.T) {
		// Cluster 0 owns two points and can give up only one of them.
		s := newTestStore(t, 1, []float64{0, 2})
		e := newTestEngine(t, s, [][]float64{{0}, {50}, {60}}, StrategySequential, 1, ReseedFarthest)

		stats := e.Step()
		assert.Equal(t, 2, stats.Empty)
		assert.Equal(t, 1, stats.Reseeded)
		assert.Equal(t, [][]float64{{1}, {2}, {60}}, e.Centroids().Rows())
	})
}

func TestEngine_WorkerCountsConverge(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	coords := randomCoords[float64](rng, 10000, 2)

	seedStore := newTestStore(t, 2, coords)
	seeded, _, err := Seed(seedStore, 5, newTestUpdater(t, StrategySequential, 1), rand.New(rand.NewSource(12)))
	require.NoError(t, err)
	rows := seeded.Rows()

	run := func(strategy Strategy, workers int) float64 {
		e := newTestEngine(t, newTestStore(t, 2, coords), rows, strategy, workers, RetainCentroid)
		sum, err := e.Run(context.Background(), 20, nil)
		require.NoError(t, err)
		return sum
	}

	single := run(StrategySequential, 1)
	assert.True(t, scalar.EqualWithinRel(single, run(StrategyWorkerPool, 4), 1e-6))
	assert.True(t, scalar.EqualWithinRel(single, run(StrategyDataParallel, 4), 1e-6))
	assert.True(t, scalar.EqualWithinRel(single, run(StrategyWorkerPool, 1), 1e-6))
}

func TestEngine_RunObservesAndCancels(t *testing.T) {
	s := newTestStore(t, 1, []float64{0, 1, 10, 11})
	e := newTestEngine(t, s, [][]float64{{0}, {10}}, StrategySequential, 1, RetainCentroid)

	var seen []int
	sum, err := e.Run(context.Background(), 3, func(st GenerationStats[float64]) {
		seen = append(seen, st.Generation)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.Equal(t, 1.0, sum)
	assert.Equal(t, 1.0, e.Objective())

	zero, err := e.Run(context.Background(), 0, nil)
	require.NoError(t, err)
	assert.Zero(t, zero)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Run(ctx, 5, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, e.Generation())
}

func TestNewEngine_Errors(t *testing.T) {
	s := newTestStore(t, 2, []float64{0, 0, 1, 1})
	u := newTestUpdater(t, StrategySequential, 1)

	_, err := NewEngine(s, NewCentroids[float64](2, 0), u, RetainCentroid)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = NewEngine(s, CentroidsFrom(2, [][]float64{{0, 0}, {1, 1}, {2, 2}}), u, RetainCentroid)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = NewEngine(s, CentroidsFrom(1, [][]float64{{0}}), u, RetainCentroid)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestEmptyClusterPolicy_String(t *testing.T) {
	assert.Equal(t, "retain", RetainCentroid.String())
	assert.Equal(t, "reseed", ReseedFarthest.String())
	assert.Equal(t, "Unknown(5)", EmptyClusterPolicy(5).String())
}
