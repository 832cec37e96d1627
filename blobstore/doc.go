// Package blobstore provides storage abstraction for slot vector snapshots.
//
// Store is the interface for writing, reading and listing named blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: files below a root directory, written via temp file + rename
//   - MemoryStore: in-process map, for tests and ephemeral caches
//   - RateLimitedStore: wraps any Store with a token bucket
//   - s3.Store: Amazon S3 with multipart uploads
//   - minio.Store: MinIO and other S3-compatible servers
//
// # Custom Implementations
//
// Implement the Store interface to support custom storage backends:
//
//	type Store interface {
//	    Put(ctx, name, data) error         // Atomic write
//	    Get(ctx, name) ([]byte, error)
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Get must return an error matching ErrNotFound for missing blobs.
package blobstore
