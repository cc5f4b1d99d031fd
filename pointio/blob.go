package pointio

import (
	"context"
	"io"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/internal/geom"
	"github.com/hupe1980/lloyd/resource"
)

// BlobOptions configures OpenBlob and CreateBlob.
type BlobOptions struct {
	// Resource throttles blob IO. Nil disables throttling.
	Resource *resource.Controller
	// Reader options for OpenBlob.
	Reader []ReaderOption
}

// OpenBlob opens name in store and returns a reader over its points,
// decompressing by extension. Close the reader to release the blob.
func OpenBlob[T geom.Float](ctx context.Context, store blobstore.BlobStore, name string, optFns ...func(*BlobOptions)) (*CSVReader[T], error) {
	var opts BlobOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	body, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		_ = blob.Close()
		return nil, err
	}

	dec, err := NewDecompressor(resource.NewRateLimitedReader(ctx, body, opts.Resource), CompressionFor(name))
	if err != nil {
		_ = body.Close()
		return nil, err
	}

	r := NewCSVReader[T](dec, opts.Reader...)
	r.closers = []io.Closer{dec, body}
	return r, nil
}

// CreateBlob creates name in store and returns a writer for assignments,
// compressing by extension. Close commits the blob; Abort discards it.
func CreateBlob[T geom.Float](ctx context.Context, store blobstore.BlobStore, name string, optFns ...func(*BlobOptions)) (*CSVWriter[T], error) {
	var opts BlobOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	blob, err := store.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	enc, err := NewCompressor(resource.NewRateLimitedWriter(ctx, blob, opts.Resource), CompressionFor(name))
	if err != nil {
		_ = blob.Abort()
		return nil, err
	}

	w := NewCSVWriter[T](enc)
	w.closers = []io.Closer{enc}
	w.blob = blob
	return w, nil
}
