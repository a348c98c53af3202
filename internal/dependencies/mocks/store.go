package mocks

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/mcoot/timeu6/internal/storage"
	"github.com/mcoot/timeu6/internal/storage/memory"
)

// ErrStoreUnavailable is returned by FailingStore operations that are switched to fail
var ErrStoreUnavailable = errors.New("store unavailable")

// FailingStore wraps an in-memory store and fails selected operations on demand
type FailingStore struct {
	*memory.Storage

	mu         sync.Mutex
	FailSet    bool
	FailGet    bool
	FailRemove bool
	SetCalls   int
}

// Ensure FailingStore implements KeyValueStore
var _ storage.KeyValueStore = (*FailingStore)(nil)

// NewFailingStore creates a FailingStore with every operation succeeding
func NewFailingStore() *FailingStore {
	return &FailingStore{Storage: memory.New()}
}

func (f *FailingStore) SetItem(ctx context.Context, key, value string) error {
	f.mu.Lock()
	f.SetCalls++
	fail := f.FailSet
	f.mu.Unlock()
	if fail {
		return ErrStoreUnavailable
	}
	return f.Storage.SetItem(ctx, key, value)
}

func (f *FailingStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	fail := f.FailGet
	f.mu.Unlock()
	if fail {
		return "", false, ErrStoreUnavailable
	}
	return f.Storage.GetItem(ctx, key)
}

func (f *FailingStore) RemoveItem(ctx context.Context, key string) error {
	f.mu.Lock()
	fail := f.FailRemove
	f.mu.Unlock()
	if fail {
		return ErrStoreUnavailable
	}
	return f.Storage.RemoveItem(ctx, key)
}

// Calls returns how many times SetItem was attempted
func (f *FailingStore) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.SetCalls
}
