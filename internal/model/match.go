package model

import "time"

const (
	// MaxPlayersOnField is the U6 field cap
	MaxPlayersOnField = 6
	// MinPlayersToStart is the number of present players needed to initialize a match
	MinPlayersToStart = 3
	// DefaultMatchDuration is the configured length of a match
	DefaultMatchDuration = 30 * time.Minute
)

// MatchPhase describes where the match clock is in its lifecycle
type MatchPhase string

const (
	MatchPhaseNotStarted MatchPhase = "not_started" // No start time recorded
	MatchPhaseRunning    MatchPhase = "running"     // Clock running
	MatchPhasePaused     MatchPhase = "paused"      // Start time recorded, clock stopped
)

// MatchState is the single aggregate describing the match in progress.
// It is created once and mutated in place; holders of a pointer observe every change.
type MatchState struct {
	AllPlayers     []*Player // roster order
	MatchStartTime *time.Time
	IsMatchActive  bool // true only while the clock is running
	MatchDuration  time.Duration

	// Revision orders snapshots taken by the owning handle. Zero means unordered. Not persisted.
	Revision uint64
}

// NewMatchState returns an empty match with the given duration
func NewMatchState(duration time.Duration) *MatchState {
	if duration <= 0 {
		duration = DefaultMatchDuration
	}
	return &MatchState{
		AllPlayers:    []*Player{},
		MatchDuration: duration,
	}
}

// Phase derives the clock phase from the active flag and start time
func (m *MatchState) Phase() MatchPhase {
	switch {
	case m.IsMatchActive:
		return MatchPhaseRunning
	case m.MatchStartTime != nil:
		return MatchPhasePaused
	default:
		return MatchPhaseNotStarted
	}
}

// GetPlayer returns the roster entry with the given ID, or nil if not found
func (m *MatchState) GetPlayer(id PlayerID) *Player {
	for _, p := range m.AllPlayers {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayingPlayers returns the players currently on the field
func (m *MatchState) PlayingPlayers() []*Player {
	var players []*Player
	for _, p := range m.AllPlayers {
		if p.IsPlaying {
			players = append(players, p)
		}
	}
	return players
}

// BenchPlayers returns present players who are not on the field
func (m *MatchState) BenchPlayers() []*Player {
	var players []*Player
	for _, p := range m.AllPlayers {
		if p.IsPresent && !p.IsPlaying {
			players = append(players, p)
		}
	}
	return players
}

// PresentPlayers returns every player marked present, in roster order
func (m *MatchState) PresentPlayers() []*Player {
	var players []*Player
	for _, p := range m.AllPlayers {
		if p.IsPresent {
			players = append(players, p)
		}
	}
	return players
}

// CanAddPlayerToField reports whether a field slot is free
func (m *MatchState) CanAddPlayerToField() bool {
	return len(m.PlayingPlayers()) < MaxPlayersOnField
}

// ElapsedTime is the time since the match started, or zero if it has not.
// Pauses do not stop it.
func (m *MatchState) ElapsedTime(now time.Time) time.Duration {
	if m.MatchStartTime == nil {
		return 0
	}
	return sessionDelta(*m.MatchStartTime, now)
}

// RemainingTime is the match duration minus elapsed time, floored at zero
func (m *MatchState) RemainingTime(now time.Time) time.Duration {
	remaining := m.MatchDuration - m.ElapsedTime(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ReplaceWith copies other's fields into m, keeping m's identity
func (m *MatchState) ReplaceWith(other *MatchState) {
	clone := other.Clone()
	m.AllPlayers = clone.AllPlayers
	m.MatchStartTime = clone.MatchStartTime
	m.IsMatchActive = clone.IsMatchActive
	m.MatchDuration = clone.MatchDuration
}

// Clone returns a deep copy of the match state
func (m *MatchState) Clone() *MatchState {
	players := make([]*Player, len(m.AllPlayers))
	for i, p := range m.AllPlayers {
		cp := p.Clone()
		players[i] = &cp
	}

	var start *time.Time
	if m.MatchStartTime != nil {
		t := *m.MatchStartTime
		start = &t
	}

	return &MatchState{
		AllPlayers:     players,
		MatchStartTime: start,
		IsMatchActive:  m.IsMatchActive,
		MatchDuration:  m.MatchDuration,
		Revision:       m.Revision,
	}
}
