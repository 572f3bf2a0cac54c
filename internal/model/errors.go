package model

import "errors"

// Common errors used across the application.
// The engine itself never returns errors (illegal actions are no-ops);
// these are raised by the room service and mapped to HTTP at the API
// boundary.
var (
	// Room errors
	ErrRoomNotFound        = errors.New("room not found")
	ErrNicknameTaken       = errors.New("nickname is already taken")
	ErrNotInRoom           = errors.New("player is not in room")
	ErrNotHost             = errors.New("player is not the host")
	ErrGameAlreadyStarted  = errors.New("game has already started")
	ErrGameNotStarted      = errors.New("game has not started")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")
	ErrInvalidRounds       = errors.New("total rounds out of range")

	// Game errors
	ErrNotPlayerTurn = errors.New("not this player's turn")
	ErrAlreadyBanked = errors.New("player has already banked this round")
	ErrGameFinished  = errors.New("game is already finished")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
)
