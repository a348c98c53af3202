package factory

import (
	"context"
	"time"

	"github.com/mcoot/timeu6/internal/dependencies/mocks"
	"github.com/mcoot/timeu6/internal/model"
	"github.com/mcoot/timeu6/internal/storage"
	"github.com/mcoot/timeu6/internal/storage/memory"
	"github.com/mcoot/timeu6/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDs   *mocks.MockIDs
}

// NewTestApp creates an App configured for testing with mocked dependencies
// and a fresh in-memory store
func NewTestApp() *TestApp {
	return NewTestAppWithStore(memory.New())
}

// NewTestAppWithStore creates a test App over an existing store,
// so a second App can pick up what a first one saved
func NewTestAppWithStore(store storage.KeyValueStore) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewMockIDs()

	app, err := newWithDependencies(store, mockClock, mockIDs, model.DefaultMatchDuration, testutil.NopLogger())
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDs:   mockIDs,
	}
}

// AddPlayers adds players by name and returns their IDs in order
func (t *TestApp) AddPlayers(ctx context.Context, names ...string) ([]model.PlayerID, error) {
	added := make([]model.PlayerID, 0, len(names))
	for _, name := range names {
		p, err := t.RosterService.AddPlayer(ctx, name)
		if err != nil {
			return nil, err
		}
		added = append(added, p.ID)
	}
	return added, nil
}
