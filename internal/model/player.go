package model

import "time"

// PlayerID uniquely identifies a player on the roster
type PlayerID string

// Player represents a team member and their match-day bookkeeping
type Player struct {
	ID        PlayerID
	Name      string
	Number    int  // jersey number, unique across the roster
	IsPresent bool // absent players can never be on the field
	IsPlaying bool // true while occupying a field slot

	// PlayingTime holds closed sessions only
	PlayingTime time.Duration
	// PlayingStartTime is set iff the player is on the field and the clock is running
	PlayingStartTime *time.Time
}

// NewPlayer creates a present bench player with no playing time
func NewPlayer(id PlayerID, name string, number int) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		Number:    number,
		IsPresent: true,
	}
}

// InSession reports whether the player has an open playing session
func (p *Player) InSession() bool {
	return p.PlayingStartTime != nil
}

// CurrentPlayingTime returns closed playing time plus the open session, if any
func (p *Player) CurrentPlayingTime(now time.Time) time.Duration {
	if p.PlayingStartTime == nil {
		return p.PlayingTime
	}
	return p.PlayingTime + sessionDelta(*p.PlayingStartTime, now)
}

// StartSession opens a playing session at now
func (p *Player) StartSession(now time.Time) {
	start := now
	p.PlayingStartTime = &start
}

// FlushSession settles the open session into PlayingTime and closes it.
// It is a no-op when no session is open.
func (p *Player) FlushSession(now time.Time) {
	if p.PlayingStartTime == nil {
		return
	}
	p.PlayingTime += sessionDelta(*p.PlayingStartTime, now)
	p.PlayingStartTime = nil
}

// RollSession settles the open session and immediately reopens it at now
func (p *Player) RollSession(now time.Time) {
	if p.PlayingStartTime == nil {
		return
	}
	p.FlushSession(now)
	p.StartSession(now)
}

// Clone returns a deep copy of the player
func (p Player) Clone() Player {
	if p.PlayingStartTime != nil {
		start := *p.PlayingStartTime
		p.PlayingStartTime = &start
	}
	return p
}

// sessionDelta clamps to zero so clock skew never subtracts playing time
func sessionDelta(start, now time.Time) time.Duration {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return d
}
