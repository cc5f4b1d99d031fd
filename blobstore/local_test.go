package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)

	ctx := context.Background()

	// 1. Create a blob
	blobName := "runs/points-001.csv"
	data := []byte("0,0\n0,1\n10,0\n10,1\n")

	w, err := store.Create(ctx, blobName)
	require.NoError(t, err)

	n, err := w.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	require.NoError(t, w.Close())

	_, err = os.Stat(filepath.Join(tmpDir, "runs", "points-001.csv"))
	require.NoError(t, err)

	// 2. Open and ReadAt
	blob, err := store.Open(ctx, blobName)
	require.NoError(t, err)

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 4)
	n, err = blob.ReadAt(ctx, buf, 8)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	assert.Equal(t, "10,0", string(buf))

	rc, err := blob.ReadRange(ctx, 4, 4)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "0,1\n", string(got))
	require.NoError(t, blob.Close())

	// 3. Sequential reader
	blob, err = store.Open(ctx, blobName)
	require.NoError(t, err)
	r, err := NewReader(ctx, blob)
	require.NoError(t, err)
	all, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, all)
	require.NoError(t, r.Close())

	// 4. Put and List
	require.NoError(t, store.Put(ctx, "runs/model.json", []byte(`{}`)))
	require.NoError(t, store.Put(ctx, "other.csv", []byte("1\n")))

	names, err := store.List(ctx, "runs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"runs/model.json", "runs/points-001.csv"}, names)

	// 5. Delete
	require.NoError(t, store.Delete(ctx, "runs/model.json"))
	require.NoError(t, store.Delete(ctx, "runs/model.json"))
	_, err = store.Open(ctx, "runs/model.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalBlobStore_Abort(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	w, err := store.Create(ctx, "partial.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte("1,2\n"))
	require.NoError(t, err)
	require.NoError(t, w.Abort())

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = w.Write([]byte("x"))
	assert.Error(t, err)
}

func TestLocalBlobStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalBlobStore_EmptyBlob(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "empty.csv", nil))

	blob, err := store.Open(ctx, "empty.csv")
	require.NoError(t, err)
	r, err := NewReader(ctx, blob)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, data)
}
