package lloyd

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/codec"
)

// modelMagic starts the header line of an encoded model:
// "lloyd-model <codec>\n" followed by the codec's encoding of the Model.
const modelMagic = "lloyd-model"

// Model is a point-in-time copy of a clustering result. Its centroids can
// seed a new Clusterer through WithInitialCentroids.
type Model[T Float] struct {
	Dimension  int    `json:"dimension"`
	Points     int    `json:"points"`
	Generation int    `json:"generation"`
	Objective  T      `json:"objective"`
	Strategy   string `json:"strategy,omitempty"`
	Centroids  [][]T  `json:"centroids"`
}

// K returns the number of centroids.
func (m Model[T]) K() int {
	return len(m.Centroids)
}

// Validate checks that the model has centroids of its declared dimension.
func (m Model[T]) Validate() error {
	if m.Dimension < 1 {
		return fmt.Errorf("%w: dimension %d", ErrInvalidModel, m.Dimension)
	}
	if len(m.Centroids) == 0 {
		return fmt.Errorf("%w: no centroids", ErrInvalidModel)
	}
	for i, c := range m.Centroids {
		if len(c) != m.Dimension {
			return fmt.Errorf("%w: %w", ErrInvalidModel, &ErrDimensionMismatch{Expected: m.Dimension, Actual: len(c), Index: i})
		}
	}
	return nil
}

// Snapshot copies the current state into a Model.
func (c *Clusterer[T]) Snapshot() Model[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Model[T]{
		Dimension:  c.engine.Store().Dim(),
		Points:     c.engine.Store().Len(),
		Generation: c.engine.Generation(),
		Objective:  c.engine.Objective(),
		Strategy:   c.opts.strategy.String(),
		Centroids:  c.engine.Centroids().Rows(),
	}
}

// EncodeModel encodes m with c, or codec.Default if c is nil.
func EncodeModel[T Float](m Model[T], c codec.Codec) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if c == nil {
		c = codec.Default
	}

	body, err := c.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode model with %s: %w", c.Name(), err)
	}

	var buf bytes.Buffer
	buf.Grow(len(modelMagic) + len(c.Name()) + 2 + len(body))
	buf.WriteString(modelMagic)
	buf.WriteByte(' ')
	buf.WriteString(c.Name())
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes(), nil
}

// DecodeModel decodes data written by EncodeModel, selecting the codec
// named in its header.
func DecodeModel[T Float](data []byte) (Model[T], error) {
	var m Model[T]

	header, body, ok := bytes.Cut(data, []byte{'\n'})
	if !ok {
		return m, fmt.Errorf("%w: missing header", ErrInvalidModel)
	}
	magic, name, ok := bytes.Cut(header, []byte{' '})
	if !ok || string(magic) != modelMagic {
		return m, fmt.Errorf("%w: bad header %q", ErrInvalidModel, header)
	}

	c, ok := codec.ByName(string(name))
	if !ok {
		return m, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	if err := c.Unmarshal(body, &m); err != nil {
		return m, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	if err := m.Validate(); err != nil {
		return m, err
	}
	return m, nil
}

// SaveModel encodes m and writes it to store under name.
func SaveModel[T Float](ctx context.Context, store blobstore.BlobStore, name string, m Model[T], c codec.Codec) error {
	data, err := EncodeModel(m, c)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("save model %s: %w", name, err)
	}
	return nil
}

// LoadModel reads and decodes the model stored under name.
func LoadModel[T Float](ctx context.Context, store blobstore.BlobStore, name string) (Model[T], error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return Model[T]{}, fmt.Errorf("load model %s: %w", name, err)
	}

	r, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		_ = blob.Close()
		return Model[T]{}, fmt.Errorf("load model %s: %w", name, err)
	}
	defer func() { _ = r.Close() }()

	data, err := io.ReadAll(r)
	if err != nil {
		return Model[T]{}, fmt.Errorf("load model %s: %w", name, err)
	}
	return DecodeModel[T](data)
}
