package matchstate

import (
	"sync"

	"github.com/mcoot/timeu6/internal/model"
)

// Handle is the single owner of the live MatchState aggregate.
// Every service receives the same Handle at wiring time; all reads and
// writes of the aggregate go through it so that mutations are serialized.
type Handle struct {
	mu       sync.Mutex
	state    *model.MatchState
	revision uint64
}

// New wraps state. The pointer is retained and mutated in place for the process lifetime.
func New(state *model.MatchState) *Handle {
	return &Handle{state: state}
}

// Mutate runs fn with exclusive access to the aggregate.
// fn reports whether it changed anything; if so, a deep snapshot taken
// before the lock is released is returned for persistence. Each returned
// snapshot carries a Revision greater than every earlier one.
func (h *Handle) Mutate(fn func(s *model.MatchState) (bool, error)) (*model.MatchState, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	changed, err := fn(h.state)
	if err != nil || !changed {
		return nil, err
	}
	h.revision++
	snapshot := h.state.Clone()
	snapshot.Revision = h.revision
	return snapshot, nil
}

// Read runs fn with exclusive access to the aggregate. fn must not retain
// pointers into the state after returning.
func (h *Handle) Read(fn func(s *model.MatchState)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.state)
}

// Snapshot returns a deep copy of the aggregate
func (h *Handle) Snapshot() *model.MatchState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Clone()
}

// Replace overwrites the aggregate's fields in place with a copy of other
func (h *Handle) Replace(other *model.MatchState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.ReplaceWith(other)
}
