package blobstore

import (
	"context"
	"fmt"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store holds named, immutable blobs.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put writes a blob atomically, replacing any blob with the same name.
	Put(ctx context.Context, name string, data []byte) error

	// Get returns the full contents of a blob.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all blobs starting with prefix, in no
	// particular order.
	List(ctx context.Context, prefix string) ([]string, error)
}

// NotFound wraps ErrNotFound with the blob name.
func NotFound(name string) error {
	return fmt.Errorf("blob %q: %w", name, ErrNotFound)
}
