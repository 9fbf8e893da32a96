// Package objectstore provides bundle delegates that read category
// directories from an S3 or MinIO bucket.
//
// Bundles are published to a bucket with the same layout they have on disk.
// A category directory such as /bundles/blog/api/models is read as the key
// prefix "bundles/blog/api/models/", and every object below it is registered
// under its key relative to the prefix, minus the extension. Config objects
// (YAML, JSON, TOML) are fetched and merged into the host config store.
//
// Check should be called once before loading so that a missing bucket fails
// fast instead of looking like an empty bundle.
package objectstore
