package pointio

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll[T float32 | float64](t *testing.T, r *CSVReader[T]) ([][]T, error) {
	t.Helper()
	var out [][]T
	for {
		p, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
}

func TestCSVReader_SkipsHeader(t *testing.T) {
	r := NewCSVReader[float64](strings.NewReader("c0,c1\n1,2\n3.5, -4\n"))

	points, err := readAll(t, r)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3.5, -4}}, points)
	assert.Equal(t, 2, r.Dim())
	assert.Equal(t, 2, r.Records())
}

func TestCSVReader_NoHeader(t *testing.T) {
	r := NewCSVReader[float32](strings.NewReader("0,0\n0,1\n"))

	points, err := readAll(t, r)
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0, 0}, {0, 1}}, points)
}

func TestCSVReader_HeaderDetectionDisabled(t *testing.T) {
	r := NewCSVReader[float64](strings.NewReader("x,y\n1,2\n"), WithoutHeaderDetection())

	_, err := r.Read()
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
	assert.Equal(t, 1, perr.Field)
	assert.Equal(t, "x", perr.Value)
}

func TestCSVReader_OnlyFirstRecordMayBeHeader(t *testing.T) {
	r := NewCSVReader[float64](strings.NewReader("1,2\nx,y\n"))

	_, err := readAll(t, r)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}

func TestCSVReader_FieldCount(t *testing.T) {
	r := NewCSVReader[float64](strings.NewReader("1,2\n3,4,5\n"))

	points, err := readAll(t, r)
	assert.Len(t, points, 1)
	assert.ErrorIs(t, err, ErrFieldCount)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, 0, perr.Field)
}

func TestCSVReader_FixedDimension(t *testing.T) {
	r := NewCSVReader[float64](strings.NewReader("1,2\n"), WithFixedDimension(3))

	_, err := r.Read()
	assert.ErrorIs(t, err, ErrFieldCount)
}

func TestCSVReader_MixedFirstRecordIsError(t *testing.T) {
	r := NewCSVReader[float64](strings.NewReader("1,abc\n"))

	_, err := r.Read()
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Field)
}

func TestCSVReader_RejectsNonFinite(t *testing.T) {
	for _, in := range []string{"1,NaN\n", "Inf,1\n"} {
		r := NewCSVReader[float64](strings.NewReader(in))
		_, err := r.Read()
		assert.ErrorIs(t, err, ErrNotFinite, in)
	}
}

func TestCSVReader_Float32Overflow(t *testing.T) {
	r := NewCSVReader[float32](strings.NewReader("1e39,1\n"))

	_, err := r.Read()
	assert.ErrorIs(t, err, strconv.ErrRange)
}

func TestCSVReader_CommentsAndDelimiter(t *testing.T) {
	r := NewCSVReader[float64](strings.NewReader("# generated\n1;2\n3;4\n"), WithComma(';'))

	points, err := readAll(t, r)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, points)
}

func TestCSVReader_ReturnsFreshSlices(t *testing.T) {
	r := NewCSVReader[float64](strings.NewReader("1,2\n3,4\n"))

	a, err := r.Read()
	require.NoError(t, err)
	b, err := r.Read()
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2}, a)
	assert.Equal(t, []float64{3, 4}, b)
}

func TestCSVReader_Empty(t *testing.T) {
	r := NewCSVReader[float64](strings.NewReader(""))

	_, err := r.Read()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 0, r.Dim())
	assert.NoError(t, r.Close())
}

func TestParseError_Message(t *testing.T) {
	err := &ParseError{Line: 3, Field: 2, Value: "x", Err: strconv.ErrSyntax}
	assert.Equal(t, `line 3, field 2 ("x"): invalid syntax`, err.Error())

	err = &ParseError{Line: 4, Err: ErrFieldCount}
	assert.Equal(t, "line 4: wrong number of fields", err.Error())
}
