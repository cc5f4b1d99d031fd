package lloyd

import (
	"math"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    generations prometheus.Counter
//	    objective   prometheus.Gauge
//	}
//
//	func (p *PrometheusCollector) RecordGeneration(gen int, objective float64, empty int, d time.Duration) {
//	    p.generations.Inc()
//	    p.objective.Set(objective)
//	}
type MetricsCollector interface {
	// RecordLoad is called after the point source was read.
	// points is the number of points read, err is nil if successful.
	RecordLoad(points int, duration time.Duration, err error)

	// RecordSeed is called after the initial centroids were chosen.
	// fallbacks counts centroids picked by the uniform fallback.
	RecordSeed(k, fallbacks int, duration time.Duration)

	// RecordGeneration is called after every generation.
	// empty is the number of clusters that attracted no points.
	RecordGeneration(generation int, objective float64, empty int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)              {}
func (NoopMetricsCollector) RecordSeed(int, int, time.Duration)                {}
func (NoopMetricsCollector) RecordGeneration(int, float64, int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount            atomic.Int64
	LoadErrors           atomic.Int64
	PointsLoaded         atomic.Int64
	LoadTotalNanos       atomic.Int64
	SeedCount            atomic.Int64
	SeedFallbacks        atomic.Int64
	SeedTotalNanos       atomic.Int64
	GenerationCount      atomic.Int64
	EmptyClusters        atomic.Int64
	GenerationTotalNanos atomic.Int64
	lastObjective        atomic.Uint64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(points int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.PointsLoaded.Add(int64(points))
}

// RecordSeed implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSeed(_ int, fallbacks int, duration time.Duration) {
	b.SeedCount.Add(1)
	b.SeedFallbacks.Add(int64(fallbacks))
	b.SeedTotalNanos.Add(duration.Nanoseconds())
}

// RecordGeneration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGeneration(_ int, objective float64, empty int, duration time.Duration) {
	b.GenerationCount.Add(1)
	b.EmptyClusters.Add(int64(empty))
	b.GenerationTotalNanos.Add(duration.Nanoseconds())
	b.lastObjective.Store(math.Float64bits(objective))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:          b.LoadCount.Load(),
		LoadErrors:         b.LoadErrors.Load(),
		PointsLoaded:       b.PointsLoaded.Load(),
		SeedCount:          b.SeedCount.Load(),
		SeedFallbacks:      b.SeedFallbacks.Load(),
		GenerationCount:    b.GenerationCount.Load(),
		EmptyClusters:      b.EmptyClusters.Load(),
		GenerationAvgNanos: avgNanos(b.GenerationTotalNanos.Load(), b.GenerationCount.Load()),
		LastObjective:      math.Float64frombits(b.lastObjective.Load()),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount          int64
	LoadErrors         int64
	PointsLoaded       int64
	SeedCount          int64
	SeedFallbacks      int64
	GenerationCount    int64
	EmptyClusters      int64
	GenerationAvgNanos int64
	LastObjective      float64
}
