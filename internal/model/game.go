package model

import "time"

// GamePhase represents the current phase of a game
type GamePhase string

const (
	PhaseLobby       GamePhase = "lobby"       // Pre-game; players may join, host may change settings
	PhaseInRound     GamePhase = "inRound"     // Normal play; a single player is the current roller
	PhaseBust        GamePhase = "bust"        // A hazard-phase 7 emptied the bank; waiting out the bust delay
	PhaseRoundWinner GamePhase = "roundWinner" // Display pause after a round concludes
	PhaseFinished    GamePhase = "finished"    // Terminal; no further rolls or banks accepted
)

// RollEffectType classifies what a roll did to the bank
type RollEffectType string

const (
	EffectAdd        RollEffectType = "add"        // Face value added to the bank
	EffectAdd70      RollEffectType = "add70"      // Safe-phase 7: bank +70
	EffectDoubleBank RollEffectType = "doubleBank" // Hazard-phase doubles: bank ×2
	EffectBust       RollEffectType = "bust"       // Hazard-phase 7: bank emptied, round over
)

// RollEffect records the most recent dice result and its effect on the bank
type RollEffect struct {
	Die1       int
	Die2       int
	Sum        int
	WasDouble  bool
	EffectType RollEffectType
	EffectText string
}

// RollHistoryEntry is one line in the current round's roll log
type RollHistoryEntry struct {
	RollNumber     int
	PlayerNickname string
	Die1           int
	Die2           int
	Result         string
	Effect         string
	BankAmount     int
}

// PlayerRoundResult is one player's outcome within a completed round
type PlayerRoundResult struct {
	PlayerNickname string
	PointsEarned   int
}

// RoundHistoryEntry summarizes a completed round. The top player is
// whichever max-points seat matches first in seat order; per-round ties
// are not specially flagged (whole-game winners are, see GetWinners).
type RoundHistoryEntry struct {
	RoundNumber   int
	PlayerResults []PlayerRoundResult
	TopPlayer     string
	TopPoints     int
}

// NoRoller is the LastRollerIndex sentinel for "no roller recorded".
const NoRoller = -1

// GameState is the aggregate root the round engine operates on. The
// engine never mutates a GameState in place; every transition returns a
// new value built from a deep copy.
type GameState struct {
	Players []Player

	RoundNumber int
	TotalRounds int

	// The shared pool accumulated by rolls this round, claimable in full
	// by any player who banks
	BankValue          int
	RollCountThisRound int

	LastRoll *RollEffect

	// History holds this round's rolls only and is cleared each round;
	// RoundHistory is append-only for the whole game.
	History      []RollHistoryEntry
	RoundHistory []RoundHistoryEntry

	Phase GamePhase

	// Timestamps driving the lazily evaluated phase transitions.
	// Zero means unset.
	BustAt        time.Time
	RoundWinnerAt time.Time

	// Seat index of the roller when the round ended, so the next round's
	// starting seat continues the rotation. NoRoller when unset.
	LastRollerIndex int

	// Last banking player, surfaced for UI notification
	LastBankedPlayer string
	LastBankedAt     time.Time

	Stats GameStats
}

// FindPlayer returns the player with the given seat ID, or nil
func (g *GameState) FindPlayer(id PlayerID) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// CurrentRollerIndex returns the seat index of the current roller, or
// NoRoller if nobody holds the dice
func (g *GameState) CurrentRollerIndex() int {
	for i := range g.Players {
		if g.Players[i].IsCurrentRoller {
			return i
		}
	}
	return NoRoller
}

// CurrentRoller returns the current roller, or nil
func (g *GameState) CurrentRoller() *Player {
	if i := g.CurrentRollerIndex(); i != NoRoller {
		return &g.Players[i]
	}
	return nil
}

// AllBanked reports whether every player has banked this round
func (g *GameState) AllBanked() bool {
	for i := range g.Players {
		if !g.Players[i].HasBankedThisRound {
			return false
		}
	}
	return true
}

// Clone returns a deep copy. Transitions clone first and mutate the copy,
// so callers never observe aliasing with the input state.
func (g *GameState) Clone() *GameState {
	next := *g

	next.Players = make([]Player, len(g.Players))
	copy(next.Players, g.Players)

	next.History = make([]RollHistoryEntry, len(g.History))
	copy(next.History, g.History)

	next.RoundHistory = make([]RoundHistoryEntry, len(g.RoundHistory))
	for i, entry := range g.RoundHistory {
		results := make([]PlayerRoundResult, len(entry.PlayerResults))
		copy(results, entry.PlayerResults)
		entry.PlayerResults = results
		next.RoundHistory[i] = entry
	}

	if g.LastRoll != nil {
		lastRoll := *g.LastRoll
		next.LastRoll = &lastRoll
	}

	next.Stats = g.Stats.Clone()

	return &next
}
