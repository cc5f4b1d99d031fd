package pointio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"unsafe"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/internal/geom"
)

// CSVWriter writes one "coords...,cluster" record per point.
type CSVWriter[T geom.Float] struct {
	w       *csv.Writer
	record  []string
	bits    int
	dim     int
	written int

	closers []io.Closer
	blob    blobstore.WritableBlob
}

// NewCSVWriter writes records to w. Call Flush (or Close when opened with
// CreateBlob) after the last point.
func NewCSVWriter[T geom.Float](w io.Writer) *CSVWriter[T] {
	var zero T
	return &CSVWriter[T]{
		w:    csv.NewWriter(w),
		bits: int(unsafe.Sizeof(zero)) * 8,
	}
}

// Write appends one record for point with its cluster index.
func (w *CSVWriter[T]) Write(point []T, cluster int) error {
	if w.dim == 0 {
		w.dim = len(point)
		w.record = make([]string, w.dim+1)
	}
	if len(point) != w.dim {
		return fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, w.dim, len(point))
	}

	for i, v := range point {
		w.record[i] = strconv.FormatFloat(float64(v), 'g', -1, w.bits)
	}
	w.record[w.dim] = strconv.Itoa(cluster)

	if err := w.w.Write(w.record); err != nil {
		return err
	}
	w.written++
	return nil
}

// Written returns the number of records written.
func (w *CSVWriter[T]) Written() int {
	return w.written
}

// Flush writes buffered records to the underlying writer.
func (w *CSVWriter[T]) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// Close flushes, finishes compression and commits the blob.
func (w *CSVWriter[T]) Close() error {
	if err := w.Flush(); err != nil {
		_ = w.Abort()
		return err
	}

	for _, c := range w.closers {
		if err := c.Close(); err != nil {
			_ = w.Abort()
			return err
		}
	}
	w.closers = nil

	if w.blob != nil {
		err := w.blob.Close()
		w.blob = nil
		return err
	}
	return nil
}

// Abort discards the output blob. It is a no-op for writers created with
// NewCSVWriter.
func (w *CSVWriter[T]) Abort() error {
	w.closers = nil
	if w.blob == nil {
		return nil
	}
	err := w.blob.Abort()
	w.blob = nil
	return err
}
