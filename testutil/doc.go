// Package testutil generates point sets for tests, benchmarks and the
// lloyd generate command.
//
// # Random Points
//
//	rng := testutil.NewRNG(seed)
//	points := testutil.UniformPoints[float32](rng, 1000, 3)
//
// # Gaussian Blobs
//
//	points, centers := testutil.Blobs(rng, testutil.DefaultBlobConfig())
//	_ = testutil.WriteCSV(w, points)
package testutil
