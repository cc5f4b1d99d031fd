// Package lloyd clusters points with Lloyd's algorithm (k-means).
//
// Initial centroids are chosen with D²-weighted sampling (k-means++). Each
// generation then assigns every point to its nearest centroid and moves
// every centroid to the mean of its members. The number of generations is
// fixed by the caller; there is no convergence test.
//
// # Quick Start
//
//	src, _ := pointio.OpenBlob[float32](ctx, blobstore.NewLocalStore("./data"), "points.csv")
//	defer src.Close()
//
//	c, _ := lloyd.New[float32](ctx, src, 5, lloyd.WithWorkers(8), lloyd.WithSeed(42))
//	defer c.Close()
//
//	objective, _ := c.Run(ctx, 20)
//	fmt.Println(objective, c.Centroids())
//
// # Update Strategies
//
// The assignment/aggregation step runs in one of three ways:
//
//   - StrategySequential: one goroutine.
//   - StrategyWorkerPool: a fixed goroutine pool (the default), created once
//     per Clusterer and reused by every generation.
//   - StrategyDataParallel: one errgroup task per point range.
//
// The parallel strategies give every worker a private set of accumulators
// and merge them under a mutex when the worker is done. All strategies
// produce the same assignments; summed coordinates may differ in the last
// bits because the merge order is not fixed.
//
// # Results
//
// Assignments, Members (as roaring bitmaps), Summary and Export expose the
// partition. Snapshot captures the centroids as a Model that can be saved to
// any blobstore.BlobStore and used to seed a later run.
package lloyd
