// Package storage provides the key-value blob stores the task list persists
// into. A store holds opaque byte blobs addressed by string keys.
package storage

import (
	"fmt"
	"strings"
)

// BlobStore is a local key-value blob store.
// Get reports ok=false when no blob exists under key.
type BlobStore interface {
	Get(key string) (blob []byte, ok bool, err error)
	Set(key string, blob []byte) error
	Close() error
}

// Open returns the store for the named backend rooted at dir.
func Open(backend, dir string) (BlobStore, error) {
	switch strings.ToLower(backend) {
	case "", "file":
		return NewFileStore(dir)
	case "sqlite":
		return NewSQLiteStore(dir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
