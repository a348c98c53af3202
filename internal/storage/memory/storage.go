package memory

import (
	"context"
	"sync"

	"github.com/mcoot/timeu6/internal/storage"
)

// Storage is an in-memory implementation of the key-value store.
// Contents live only as long as the process.
type Storage struct {
	mu    sync.RWMutex
	items map[string]string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		items: make(map[string]string),
	}
}

// Ensure Storage implements the interface
var _ storage.KeyValueStore = (*Storage)(nil)

func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *Storage) GetItem(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	return value, ok, nil
}

func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *Storage) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]string)
	return nil
}

func (s *Storage) Close() error {
	return nil
}
