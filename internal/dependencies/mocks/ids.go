package mocks

import (
	"fmt"

	"github.com/mcoot/timeu6/internal/dependencies/ids"
	"github.com/mcoot/timeu6/internal/model"
)

// MockIDs is a mock implementation of ids.Generator for testing.
// Queued IDs are returned first; after that it counts up "player-1", "player-2", ...
type MockIDs struct {
	Queued []model.PlayerID
	index  int
	seq    int
}

// Ensure MockIDs implements Generator
var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates a new MockIDs
func NewMockIDs() *MockIDs {
	return &MockIDs{}
}

// NewPlayerID returns the next queued ID, or the next sequential one if none remain
func (m *MockIDs) NewPlayerID() model.PlayerID {
	if m.index < len(m.Queued) {
		id := m.Queued[m.index]
		m.index++
		return id
	}
	m.seq++
	return model.PlayerID(fmt.Sprintf("player-%d", m.seq))
}

// Queue adds IDs to the result queue
func (m *MockIDs) Queue(values ...model.PlayerID) {
	m.Queued = append(m.Queued, values...)
}

// Reset clears queued IDs and restarts the sequence
func (m *MockIDs) Reset() {
	m.Queued = nil
	m.index = 0
	m.seq = 0
}
