package match

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/mcoot/timeu6/internal/model"
)

// CanAddPlayerToField reports whether fewer than MaxPlayersOnField are playing
func (c *Controller) CanAddPlayerToField(ctx context.Context) bool {
	var ok bool
	c.state.Read(func(m *model.MatchState) {
		ok = m.CanAddPlayerToField()
	})
	return ok
}

// MaxPlayersOnField returns the field cap
func (c *Controller) MaxPlayersOnField() int {
	return model.MaxPlayersOnField
}

// AddPlayerToField puts a present bench player on the field.
// If the clock is running their session starts now.
func (c *Controller) AddPlayerToField(ctx context.Context, id model.PlayerID) error {
	now := c.clock.Now()
	snapshot, err := c.state.Mutate(func(m *model.MatchState) (bool, error) {
		return true, addToField(m, id, now)
	})
	if err != nil {
		return err
	}
	c.saver.Enqueue(ctx, snapshot)

	c.logger.Info("player added to field", slog.String("player_id", string(id)))
	return nil
}

// RemovePlayerFromField sends a player to the bench, settling any open session
func (c *Controller) RemovePlayerFromField(ctx context.Context, id model.PlayerID) error {
	now := c.clock.Now()
	snapshot, err := c.state.Mutate(func(m *model.MatchState) (bool, error) {
		return true, removeFromField(m, id, now)
	})
	if err != nil {
		return err
	}
	c.saver.Enqueue(ctx, snapshot)

	c.logger.Info("player removed from field", slog.String("player_id", string(id)))
	return nil
}

// SubstitutePlayer swaps playerOut for playerIn as one step.
// All preconditions are checked before anything changes.
func (c *Controller) SubstitutePlayer(ctx context.Context, playerIn, playerOut model.PlayerID) error {
	now := c.clock.Now()
	snapshot, err := c.state.Mutate(func(m *model.MatchState) (bool, error) {
		in := m.GetPlayer(playerIn)
		if in == nil {
			return false, errors.Wrap(model.ErrPlayerNotFound, "incoming player")
		}
		out := m.GetPlayer(playerOut)
		if out == nil {
			return false, errors.Wrap(model.ErrPlayerNotFound, "outgoing player")
		}
		if !in.IsPresent {
			return false, errors.Wrap(model.ErrPlayerAbsent, "incoming player")
		}
		if in.IsPlaying {
			return false, errors.Wrap(model.ErrAlreadyPlaying, "incoming player")
		}
		if !out.IsPlaying {
			return false, errors.Wrap(model.ErrNotPlaying, "outgoing player")
		}

		// Preconditions above guarantee neither step can fail
		if err := removeFromField(m, playerOut, now); err != nil {
			return false, err
		}
		if err := addToField(m, playerIn, now); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return err
	}
	c.saver.Enqueue(ctx, snapshot)

	c.logger.Info("player substituted",
		slog.String("player_in", string(playerIn)),
		slog.String("player_out", string(playerOut)),
	)
	return nil
}

// InitializeMatch resets the match and starts the clock, optionally filling the
// field with the first present players in roster order. It needs at least
// MinPlayersToStart present players and changes nothing otherwise.
func (c *Controller) InitializeMatch(ctx context.Context, startWithPlayers bool) error {
	now := c.clock.Now()
	var starters int
	snapshot, err := c.state.Mutate(func(m *model.MatchState) (bool, error) {
		present := m.PresentPlayers()
		if len(present) < model.MinPlayersToStart {
			return false, model.ErrInsufficientPlayers
		}

		resetMatch(m)

		if startWithPlayers {
			for _, p := range present {
				if starters == model.MaxPlayersOnField {
					break
				}
				if err := addToField(m, p.ID, now); err != nil {
					return false, err
				}
				starters++
			}
		}

		startClock(m, now)
		return true, nil
	})
	if err != nil {
		return err
	}
	c.saver.Enqueue(ctx, snapshot)

	c.logger.Info("match initialized",
		slog.Int("starters", starters),
		slog.Time("start_time", now),
	)
	return nil
}

func addToField(m *model.MatchState, id model.PlayerID, now time.Time) error {
	player := m.GetPlayer(id)
	switch {
	case player == nil:
		return model.ErrPlayerNotFound
	case !player.IsPresent:
		return model.ErrPlayerAbsent
	case player.IsPlaying:
		return model.ErrAlreadyPlaying
	case !m.CanAddPlayerToField():
		return model.ErrFieldFull
	}

	player.IsPlaying = true
	if m.IsMatchActive {
		player.StartSession(now)
	}
	return nil
}

func removeFromField(m *model.MatchState, id model.PlayerID, now time.Time) error {
	player := m.GetPlayer(id)
	switch {
	case player == nil:
		return model.ErrPlayerNotFound
	case !player.IsPlaying:
		return model.ErrNotPlaying
	}

	if m.IsMatchActive {
		player.FlushSession(now)
	}
	player.IsPlaying = false
	player.PlayingStartTime = nil
	return nil
}
