package mocks

import (
	"context"
	"sync"

	"github.com/mcoot/timeu6/internal/model"
	"github.com/mcoot/timeu6/internal/services/persistence"
)

// RecordingSaver is a mock Saver that keeps every enqueued snapshot
type RecordingSaver struct {
	mu        sync.Mutex
	snapshots []*model.MatchState
}

// Ensure RecordingSaver implements Saver
var _ persistence.Saver = (*RecordingSaver)(nil)

// NewRecordingSaver creates a new RecordingSaver
func NewRecordingSaver() *RecordingSaver {
	return &RecordingSaver{}
}

// Enqueue records the snapshot
func (r *RecordingSaver) Enqueue(ctx context.Context, snapshot *model.MatchState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, snapshot)
}

// Count returns the number of snapshots enqueued so far
func (r *RecordingSaver) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snapshots)
}

// Last returns the most recent snapshot, or nil if none
func (r *RecordingSaver) Last() *model.MatchState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snapshots) == 0 {
		return nil
	}
	return r.snapshots[len(r.snapshots)-1]
}

// Reset forgets recorded snapshots
func (r *RecordingSaver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = nil
}
