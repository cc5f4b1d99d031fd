// Package geom provides the fixed-dimension vector arithmetic used by the
// clustering engine.
//
// Points and centroids are plain slices of a floating point element type.
// All functions assume equal slice lengths; that is the caller's
// responsibility.
package geom
