// Package kmeans implements Lloyd's algorithm with D²-weighted seeding.
//
// The package is organised around three pieces of state:
//
//   - Store holds the immutable input coordinates and the mutable per-point
//     assignment (PointInfo).
//   - Centroids holds the current cluster representatives. Only the Engine
//     mutates them, and only between update steps.
//   - Accumulators hold per-cluster coordinate sums and counts for one
//     update step.
//
// The update step is pluggable through the Updater interface. Sequential,
// worker-pool and data-parallel implementations produce the same
// assignments and counts; coordinate sums and the objective agree up to
// floating point summation order.
package kmeans
