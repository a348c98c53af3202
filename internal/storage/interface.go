package storage

import "context"

// KeyValueStore is the string-keyed substrate match state is persisted to.
// Every operation may fail with an I/O error; callers decide whether to surface it.
type KeyValueStore interface {
	// SetItem stores value under key, replacing any previous value
	SetItem(ctx context.Context, key, value string) error

	// GetItem returns the value under key; found is false when the key is absent
	GetItem(ctx context.Context, key string) (value string, found bool, err error)

	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(ctx context.Context, key string) error

	// Clear deletes every key owned by this store
	Clear(ctx context.Context) error

	// Close releases any underlying connection
	Close() error
}
