// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the small Client interface the
// object-storage bundle delegates need. This supports both AWS S3 and
// self-hosted MinIO instances.
//
// # Operations
//
//   - BucketExists: Verifies access to the bucket bundles are read from.
//   - ListObjects: Lists objects under a bundle directory prefix.
//   - GetObject: Retrieves a config file as a stream.
//
// The interface is mocked in core/storage/mocks for unit tests.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "bundles")
package storage
