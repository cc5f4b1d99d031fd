package pointio

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"unsafe"

	"github.com/hupe1980/lloyd/internal/geom"
)

// ReaderOption configures a CSVReader.
type ReaderOption func(*readerOptions)

type readerOptions struct {
	comma     rune
	dimension int
	header    bool
}

// WithComma sets the field delimiter (default ',').
func WithComma(r rune) ReaderOption {
	return func(o *readerOptions) { o.comma = r }
}

// WithFixedDimension rejects records whose field count differs from dim
// instead of inferring it from the first record.
func WithFixedDimension(dim int) ReaderOption {
	return func(o *readerOptions) { o.dimension = dim }
}

// WithoutHeaderDetection treats the first record as data unconditionally.
func WithoutHeaderDetection() ReaderOption {
	return func(o *readerOptions) { o.header = false }
}

// CSVReader yields one point per record.
type CSVReader[T geom.Float] struct {
	r       *csv.Reader
	closers []io.Closer
	bits    int
	dim     int
	first   bool
	header  bool
	records int
}

// NewCSVReader reads points from r.
func NewCSVReader[T geom.Float](r io.Reader, optFns ...ReaderOption) *CSVReader[T] {
	opts := readerOptions{comma: ',', header: true}
	for _, fn := range optFns {
		fn(&opts)
	}

	cr := csv.NewReader(r)
	cr.Comma = opts.comma
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var zero T
	return &CSVReader[T]{
		r:      cr,
		bits:   int(unsafe.Sizeof(zero)) * 8,
		dim:    opts.dimension,
		first:  true,
		header: opts.header,
	}
}

// Dim returns the point dimension, or 0 before the first point was read.
func (r *CSVReader[T]) Dim() int {
	return r.dim
}

// Records returns the number of points read so far.
func (r *CSVReader[T]) Records() int {
	return r.records
}

// Read returns the next point. It returns io.EOF after the last record and
// a *ParseError for malformed input.
func (r *CSVReader[T]) Read() ([]T, error) {
	for {
		rec, err := r.r.Read()
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, &ParseError{Line: perr.Line, Field: perr.Column, Err: perr.Err}
			}
			return nil, err
		}

		line, _ := r.r.FieldPos(0)

		if r.first {
			r.first = false
			if r.header && isHeader(rec) {
				continue
			}
		}

		return r.parse(rec, line)
	}
}

func (r *CSVReader[T]) parse(rec []string, line int) ([]T, error) {
	if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
		return nil, &ParseError{Line: line, Err: ErrEmptyRecord}
	}

	if r.dim == 0 {
		r.dim = len(rec)
	}
	if len(rec) != r.dim {
		return nil, &ParseError{Line: line, Err: ErrFieldCount}
	}

	p := make([]T, r.dim)
	for i, field := range rec {
		field = strings.TrimSpace(field)
		v, err := strconv.ParseFloat(field, r.bits)
		if err != nil {
			var nerr *strconv.NumError
			if errors.As(err, &nerr) {
				err = nerr.Err
			}
			return nil, &ParseError{Line: line, Field: i + 1, Value: field, Err: err}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &ParseError{Line: line, Field: i + 1, Value: field, Err: ErrNotFinite}
		}
		p[i] = T(v)
	}

	r.records++
	return p, nil
}

// Close releases the underlying blob and decompressor, if any.
func (r *CSVReader[T]) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	r.closers = nil
	return first
}

// isHeader reports whether no field of rec parses as a number.
func isHeader(rec []string) bool {
	for _, field := range rec {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err == nil {
			return false
		}
	}
	return true
}
