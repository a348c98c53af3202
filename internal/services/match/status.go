package match

import (
	"context"
	"time"

	"github.com/mcoot/timeu6/internal/model"
)

// PlayerTime is a roster entry with its playing time as of the status instant
type PlayerTime struct {
	model.Player
	CurrentPlayingTime time.Duration
}

// Status is a point-in-time view of the match for display
type Status struct {
	Phase          model.MatchPhase
	MatchStartTime *time.Time
	Elapsed        time.Duration
	Remaining      time.Duration
	Duration       time.Duration
	OnField        int
	MaxOnField     int
	Players        []PlayerTime // roster order
}

// Status reports the clock and every player's live playing time without changing state
func (c *Controller) Status(ctx context.Context) Status {
	now := c.clock.Now()
	var status Status
	c.state.Read(func(m *model.MatchState) {
		status = Status{
			Phase:      m.Phase(),
			Elapsed:    m.ElapsedTime(now),
			Remaining:  m.RemainingTime(now),
			Duration:   m.MatchDuration,
			OnField:    len(m.PlayingPlayers()),
			MaxOnField: model.MaxPlayersOnField,
			Players:    make([]PlayerTime, 0, len(m.AllPlayers)),
		}
		if m.MatchStartTime != nil {
			start := *m.MatchStartTime
			status.MatchStartTime = &start
		}
		for _, p := range m.AllPlayers {
			status.Players = append(status.Players, PlayerTime{
				Player:             p.Clone(),
				CurrentPlayingTime: p.CurrentPlayingTime(now),
			})
		}
	})
	return status
}
