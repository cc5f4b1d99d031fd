package kmeans

import "errors"

var (
	// ErrInvalidK is returned when the centroid count is zero or exceeds the
	// number of points.
	ErrInvalidK = errors.New("k must be between 1 and the number of points")

	// ErrInvalidWorkers is returned when fewer than one worker is requested.
	ErrInvalidWorkers = errors.New("worker count must be at least 1")

	// ErrInvalidDimension is returned for a non-positive dimension.
	ErrInvalidDimension = errors.New("dimension must be positive")

	// ErrNoPoints is returned when a store is built from zero points.
	ErrNoPoints = errors.New("no points")

	// ErrRaggedCoordinates is returned when the coordinate count is not a
	// multiple of the dimension.
	ErrRaggedCoordinates = errors.New("coordinate count is not a multiple of the dimension")

	// ErrUnknownStrategy is returned for an unsupported update strategy.
	ErrUnknownStrategy = errors.New("unknown update strategy")
)
