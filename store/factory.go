package store

import (
	"context"
	"fmt"

	"github.com/etnz/stockkeeper"
)

// Store is a key/value backend that must be closed after use.
type Store interface {
	stockkeeper.KeyValueStore
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Open opens the backend named kind rooted at path.
func Open(kind, path string) (Store, error) {
	switch kind {
	case "", BackendFile:
		return NewFile(path)
	case BackendBadger:
		return NewBadger(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want %q, %q or %q)", kind, BackendFile, BackendBadger, BackendMemory)
	}
}
