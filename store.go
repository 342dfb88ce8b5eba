package invest

import (
	"context"
	"errors"
)

// PositionsKey is the key of the ledger in the Store.
const PositionsKey = "positions"

// ErrNotFound is returned by a Store for a key that has no value.
var ErrNotFound = errors.New("not found")

// Store is an opaque key/value store.
//
// Values are whole documents, written and read at once.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
