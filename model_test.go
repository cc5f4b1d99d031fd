package lloyd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/codec"
)

func TestModel_EncodeDecode(t *testing.T) {
	c := newFourPoints(t, WithStrategy(StrategySequential))
	_, err := c.Run(context.Background(), 2)
	require.NoError(t, err)

	m := c.Snapshot()
	assert.Equal(t, Model[float64]{
		Dimension:  2,
		Points:     4,
		Generation: 2,
		Objective:  1,
		Strategy:   "sequential",
		Centroids:  [][]float64{{0, 0.5}, {10, 0.5}},
	}, m)
	assert.Equal(t, 2, m.K())

	for _, cd := range []codec.Codec{codec.JSON{}, codec.GoJSON{}, nil} {
		data, err := EncodeModel(m, cd)
		require.NoError(t, err)

		name := codec.Default.Name()
		if cd != nil {
			name = cd.Name()
		}
		assert.True(t, len(data) > 0)
		assert.Equal(t, "lloyd-model "+name+"\n", string(data[:len("lloyd-model ")+len(name)+1]))

		got, err := DecodeModel[float64](data)
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestDecodeModel_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"no header", `{"dimension":1}`, ErrInvalidModel},
		{"bad magic", "other json\n{}", ErrInvalidModel},
		{"unknown codec", "lloyd-model msgpack\n{}", ErrUnknownCodec},
		{"bad body", "lloyd-model json\n{", ErrInvalidModel},
		{"no centroids", "lloyd-model json\n{\"dimension\":2,\"centroids\":[]}", ErrInvalidModel},
		{"ragged", "lloyd-model json\n{\"dimension\":2,\"centroids\":[[1]]}", ErrInvalidModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeModel[float32]([]byte(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEncodeModel_Validates(t *testing.T) {
	_, err := EncodeModel(Model[float64]{Dimension: 0}, nil)
	assert.ErrorIs(t, err, ErrInvalidModel)

	_, err = EncodeModel(Model[float64]{Dimension: 2, Centroids: [][]float64{{1}}}, nil)
	var dm *ErrDimensionMismatch
	assert.ErrorAs(t, err, &dm)
}

func TestModel_SaveLoadWarmStart(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	c := newFourPoints(t)
	_, err := c.Run(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, SaveModel(ctx, store, "models/four.model", c.Snapshot(), codec.JSON{}))

	m, err := LoadModel[float64](ctx, store, "models/four.model")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Generation)

	warm, err := NewFromPoints(ctx, fourPoints, m.K(), WithInitialCentroids(m.Centroids))
	require.NoError(t, err)
	defer func() { _ = warm.Close() }()

	obj, err := warm.Run(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, obj)
}

func TestLoadModel_NotFound(t *testing.T) {
	_, err := LoadModel[float64](context.Background(), blobstore.NewMemoryStore(), "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
