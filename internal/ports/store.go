package ports

import (
	"context"
	"errors"
)

// ErrBlobNotFound is returned by BlobStore.Get when no value is stored under the key
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is a local key-value store holding opaque serialized blobs.
// Every Put overwrites the previous value for the key.
type BlobStore interface {
	// Get returns the value stored under key, or ErrBlobNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value stored under key
	Put(ctx context.Context, key string, value []byte) error

	// Close releases the backend
	Close() error
}
