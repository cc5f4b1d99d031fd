package lloyd

import (
	"errors"
	"fmt"

	"github.com/hupe1980/lloyd/internal/kmeans"
)

var (
	// ErrInvalidK is returned when k is zero or exceeds the number of points.
	ErrInvalidK = kmeans.ErrInvalidK

	// ErrInvalidWorkers is returned when fewer than one worker is configured.
	ErrInvalidWorkers = kmeans.ErrInvalidWorkers

	// ErrInvalidDimension is returned for a non-positive dimension.
	ErrInvalidDimension = kmeans.ErrInvalidDimension

	// ErrNoPoints is returned when the point source yields nothing.
	ErrNoPoints = kmeans.ErrNoPoints

	// ErrUnknownStrategy is returned for an unsupported update strategy.
	ErrUnknownStrategy = kmeans.ErrUnknownStrategy

	// ErrInvalidGenerations is returned for a negative generation count.
	ErrInvalidGenerations = errors.New("generations must not be negative")

	// ErrCentroidCount is returned when the initial centroids given with
	// WithInitialCentroids do not number k.
	ErrCentroidCount = errors.New("initial centroid count does not match k")

	// ErrClosed is returned when using a closed Clusterer.
	ErrClosed = errors.New("clusterer is closed")

	// ErrUnknownCodec is returned when a model names a codec that is not
	// built in.
	ErrUnknownCodec = errors.New("unknown model codec")

	// ErrInvalidModel is returned for a malformed model.
	ErrInvalidModel = errors.New("invalid model")
)

// ErrDimensionMismatch indicates a point or centroid whose length differs
// from the configured dimension.
//
// Index is the position of the offending point in its source.
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	Index    int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch at index %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrLoad wraps a failure while reading the point source.
//
// Point is the number of points read successfully before the failure.
type ErrLoad struct {
	Point int
	cause error
}

func (e *ErrLoad) Error() string {
	return fmt.Sprintf("load points: after %d points: %v", e.Point, e.cause)
}

func (e *ErrLoad) Unwrap() error { return e.cause }
