package model

// PlayerID identifies a seat in a game ("player-0", "player-1", ...).
// Seats are numbered in join order and the numbering is stable for the
// life of the room.
type PlayerID string

// Player represents one seat in a game. The seat order fixed at game init
// defines turn rotation and is the iteration order for every "first
// match" rule in the engine.
type Player struct {
	ID       PlayerID
	Nickname string

	// Score accumulates across rounds and only ever increases (by banking)
	Score int

	// Round-scoped fields, reset at the start of each round
	HasBankedThisRound    bool
	IsCurrentRoller       bool
	PointsEarnedThisRound int
}
