// Package minio provides a BlobStore implementation using the MinIO client.
//
// Any S3-compatible endpoint works (MinIO, Ceph, Garage, SeaweedFS). Unlike
// the s3 package it needs no AWS configuration, which makes it the usual
// choice for on-prem point files.
//
// # Basic Usage
//
//	store, err := minioblob.Dial(minioblob.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	    Bucket:    "points",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	src, err := pointio.OpenBlob[float64](ctx, store, "blobs.csv")
package minio
