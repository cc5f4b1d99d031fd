// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "clustering/")
//
//	src, _ := pointio.OpenBlob[float32](ctx, store, "points.csv.zst")
//
// # Features
//
//   - Range reads for efficient partial fetches
//   - Multipart uploads for large result files
//   - CRC32C integrity checks on uploads
//   - Automatic pagination for listing
package s3
