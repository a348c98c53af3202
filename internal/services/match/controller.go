package match

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/timeu6/internal/dependencies/clock"
	"github.com/mcoot/timeu6/internal/matchstate"
	"github.com/mcoot/timeu6/internal/model"
	"github.com/mcoot/timeu6/internal/services/persistence"
)

// Controller runs the match clock, accrues playing time and enforces field rules.
//
// Clock states, derived from IsMatchActive and MatchStartTime:
//
//	not started --Start--> running --Pause--> paused --Resume--> running
//	any --Reset--> not started
//
// A player has an open session exactly while they are on the field and the clock
// is running. Every transition that ends a session settles it into PlayingTime.
type Controller struct {
	state  *matchstate.Handle
	saver  persistence.Saver
	clock  clock.Clock
	logger *slog.Logger
}

// NewController creates a new match Controller
func NewController(
	state *matchstate.Handle,
	saver persistence.Saver,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		state:  state,
		saver:  saver,
		clock:  clock,
		logger: logger,
	}
}

// Start starts the match clock. Players already on the field begin a session.
// It is a no-op while the clock is running.
func (c *Controller) Start(ctx context.Context) {
	now := c.clock.Now()
	if !c.commit(ctx, func(m *model.MatchState) (bool, error) {
		return startClock(m, now), nil
	}) {
		return
	}
	c.logger.Info("match started", slog.Time("start_time", now))
}

// Pause stops the clock and settles every open session. No-op unless running.
func (c *Controller) Pause(ctx context.Context) {
	now := c.clock.Now()
	if !c.commit(ctx, func(m *model.MatchState) (bool, error) {
		return pauseClock(m, now), nil
	}) {
		return
	}
	c.logger.Info("match paused")
}

// Resume restarts a paused clock; players on the field begin fresh sessions.
// No-op if the match never started or is already running.
func (c *Controller) Resume(ctx context.Context) {
	now := c.clock.Now()
	if !c.commit(ctx, func(m *model.MatchState) (bool, error) {
		return resumeClock(m, now), nil
	}) {
		return
	}
	c.logger.Info("match resumed")
}

// Reset returns to not started and wipes all field and time data from the roster
func (c *Controller) Reset(ctx context.Context) {
	c.commit(ctx, func(m *model.MatchState) (bool, error) {
		resetMatch(m)
		return true, nil
	})
	c.logger.Info("match reset")
}

// UpdatePlayingTimes rolls every open session forward to now without ending it.
// Meant for periodic refresh; it does not persist on its own.
func (c *Controller) UpdatePlayingTimes(ctx context.Context) {
	now := c.clock.Now()
	_, _ = c.state.Mutate(func(m *model.MatchState) (bool, error) {
		rollSessions(m, now)
		return false, nil
	})
}

// SetMatchDuration changes the configured match length
func (c *Controller) SetMatchDuration(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return model.ErrInvalidDuration
	}
	c.commit(ctx, func(m *model.MatchState) (bool, error) {
		m.MatchDuration = d
		return true, nil
	})
	c.logger.Info("match duration updated", slog.Duration("duration", d))
	return nil
}

// ElapsedTime returns time since the match started, zero if not started
func (c *Controller) ElapsedTime(ctx context.Context) time.Duration {
	now := c.clock.Now()
	var elapsed time.Duration
	c.state.Read(func(m *model.MatchState) {
		elapsed = m.ElapsedTime(now)
	})
	return elapsed
}

// RemainingTime returns the match time left, floored at zero
func (c *Controller) RemainingTime(ctx context.Context) time.Duration {
	now := c.clock.Now()
	var remaining time.Duration
	c.state.Read(func(m *model.MatchState) {
		remaining = m.RemainingTime(now)
	})
	return remaining
}

// commit applies fn under the state lock and enqueues a save if it changed anything.
// It reports whether a change was committed.
func (c *Controller) commit(ctx context.Context, fn func(m *model.MatchState) (bool, error)) bool {
	snapshot, err := c.state.Mutate(fn)
	if err != nil || snapshot == nil {
		return false
	}
	c.saver.Enqueue(ctx, snapshot)
	return true
}

func startClock(m *model.MatchState, now time.Time) bool {
	if m.IsMatchActive {
		return false
	}
	start := now
	m.MatchStartTime = &start
	m.IsMatchActive = true
	for _, p := range m.PlayingPlayers() {
		if !p.InSession() {
			p.StartSession(now)
		}
	}
	return true
}

func pauseClock(m *model.MatchState, now time.Time) bool {
	if !m.IsMatchActive {
		return false
	}
	m.IsMatchActive = false
	for _, p := range m.PlayingPlayers() {
		p.FlushSession(now)
	}
	return true
}

func resumeClock(m *model.MatchState, now time.Time) bool {
	if m.IsMatchActive || m.MatchStartTime == nil {
		return false
	}
	m.IsMatchActive = true
	for _, p := range m.PlayingPlayers() {
		p.StartSession(now)
	}
	return true
}

func resetMatch(m *model.MatchState) {
	m.IsMatchActive = false
	m.MatchStartTime = nil
	for _, p := range m.AllPlayers {
		p.IsPlaying = false
		p.PlayingTime = 0
		p.PlayingStartTime = nil
	}
}

func rollSessions(m *model.MatchState, now time.Time) {
	if !m.IsMatchActive {
		return
	}
	for _, p := range m.PlayingPlayers() {
		p.RollSession(now)
	}
}
