package persistence

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"

	"github.com/mcoot/timeu6/internal/model"
)

// Saver accepts snapshots to persist after a command commits in memory.
// Enqueue never blocks on storage and never reports failure to the caller.
type Saver interface {
	Enqueue(ctx context.Context, snapshot *model.MatchState)
}

// SnapshotWriter is the write half of the Gateway
type SnapshotWriter interface {
	Save(ctx context.Context, snapshot *model.MatchState) error
}

// BackgroundSaver runs saves on a single pooled worker.
// Snapshots queued while a save is in flight are coalesced: only the newest is written next.
// A snapshot whose Revision is not above the last accepted one is dropped.
type BackgroundSaver struct {
	writer SnapshotWriter
	pool   *ants.Pool
	logger *slog.Logger

	mu         sync.Mutex
	pending    *model.MatchState
	pendingCtx context.Context
	accepted   uint64
	running    bool
	wg         sync.WaitGroup
}

// Ensure BackgroundSaver implements Saver
var _ Saver = (*BackgroundSaver)(nil)

// NewBackgroundSaver creates a saver writing through writer
func NewBackgroundSaver(writer SnapshotWriter, logger *slog.Logger) (*BackgroundSaver, error) {
	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, errors.Wrap(err, "create save worker pool")
	}
	return &BackgroundSaver{
		writer: writer,
		pool:   pool,
		logger: logger,
	}, nil
}

// Enqueue schedules snapshot to be written. The save outlives ctx's cancellation.
func (s *BackgroundSaver) Enqueue(ctx context.Context, snapshot *model.MatchState) {
	if snapshot == nil {
		return
	}

	s.mu.Lock()
	if snapshot.Revision != 0 {
		if snapshot.Revision <= s.accepted {
			s.mu.Unlock()
			s.logger.Debug("dropped stale match state snapshot", slog.Uint64("revision", snapshot.Revision))
			return
		}
		s.accepted = snapshot.Revision
	}
	s.pending = snapshot
	s.pendingCtx = context.WithoutCancel(ctx)
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.wg.Add(1)
	s.mu.Unlock()

	if err := s.pool.Submit(s.drain); err != nil {
		s.logger.Error("failed to schedule match state save", slog.String("error", err.Error()))
		s.mu.Lock()
		s.pending = nil
		s.pendingCtx = nil
		s.running = false
		s.mu.Unlock()
		s.wg.Done()
	}
}

// drain writes pending snapshots until none remain
func (s *BackgroundSaver) drain() {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		snapshot, ctx := s.pending, s.pendingCtx
		s.pending, s.pendingCtx = nil, nil
		if snapshot == nil {
			s.running = false
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.write(ctx, snapshot)
	}
}

func (s *BackgroundSaver) write(ctx context.Context, snapshot *model.MatchState) {
	var catcher panics.Catcher
	catcher.Try(func() {
		if err := s.writer.Save(ctx, snapshot); err != nil {
			s.logger.Warn("background save failed", slog.String("error", err.Error()))
		}
	})
	if r := catcher.Recovered(); r != nil {
		s.logger.Error("background save panicked", slog.String("error", r.AsError().Error()))
	}
}

// Wait blocks until every enqueued snapshot has been handled
func (s *BackgroundSaver) Wait() {
	s.wg.Wait()
}

// Close drains outstanding saves and releases the worker
func (s *BackgroundSaver) Close() {
	s.Wait()
	s.pool.Release()
}
