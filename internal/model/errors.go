package model

import "github.com/cockroachdb/errors"

// Common errors used across the application
var (
	// Roster errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrInvalidName     = errors.New("player name cannot be empty")
	ErrInvalidNumber   = errors.New("player number must be positive")
	ErrNumberTaken     = errors.New("player number is already taken")
	ErrInvalidDuration = errors.New("match duration must be positive")

	// Field errors
	ErrPlayerAbsent        = errors.New("player is not present")
	ErrAlreadyPlaying      = errors.New("player is already on the field")
	ErrNotPlaying          = errors.New("player is not on the field")
	ErrFieldFull           = errors.New("field is full")
	ErrInsufficientPlayers = errors.New("insufficient present players to start match")
)
