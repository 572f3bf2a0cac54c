package engine

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mcoot/bankit-go/internal/dependencies/clock"
	"github.com/mcoot/bankit-go/internal/dependencies/random"
	"github.com/mcoot/bankit-go/internal/model"
)

// Fixed delays for the lazily evaluated phase transitions. The check
// functions take the delay as a parameter; these are the values callers
// normally pass.
const (
	BustDelay        = 10 * time.Second
	RoundWinnerDelay = 5 * time.Second
)

// Engine is the round/turn state machine and scoring engine. It is pure:
// every transition takes a GameState and returns a new one built from a
// deep copy, with randomness isolated to the injected dice source and
// time to the injected clock. Illegal actions (rolling out of turn,
// banking twice, acting after game end) return the input state
// unchanged; turn ownership and other user-facing validation live at the
// transport boundary.
type Engine struct {
	clock  clock.Clock
	random random.Random
}

// New creates an engine with the given time and randomness sources
func New(clock clock.Clock, random random.Random) *Engine {
	return &Engine{
		clock:  clock,
		random: random,
	}
}

// InitGame builds the initial game state: roster in input order (input
// order defines seat order), a uniformly random starting roller, zeroed
// scores and stats, lobby phase.
func (e *Engine) InitGame(nicknames []string, totalRounds int) *model.GameState {
	startIndex := e.random.Intn(len(nicknames))

	players := make([]model.Player, len(nicknames))
	for i, nickname := range nicknames {
		players[i] = model.Player{
			ID:              model.PlayerID(fmt.Sprintf("player-%d", i)),
			Nickname:        nickname,
			IsCurrentRoller: i == startIndex,
		}
	}

	return &model.GameState{
		Players:         players,
		RoundNumber:     1,
		TotalRounds:     totalRounds,
		History:         []model.RollHistoryEntry{},
		RoundHistory:    []model.RoundHistoryEntry{},
		Phase:           model.PhaseLobby,
		LastRollerIndex: model.NoRoller,
		Stats:           model.NewGameStats(players),
	}
}

// ApplyRoll draws two dice for the current roller and applies the phase
// rules: rolls 1-3 are safe (7 adds 70), roll 4 onward is the hazard
// phase (7 busts, doubles double the bank). No-op unless the game is in
// a round and the roller has not banked.
func (e *Engine) ApplyRoll(state *model.GameState) *model.GameState {
	if state.Phase != model.PhaseInRound {
		return state
	}
	roller := state.CurrentRoller()
	if roller == nil || roller.HasBankedThisRound {
		return state
	}

	die1, die2 := e.rollDice()

	next := state.Clone()
	next.RollCountThisRound++

	var effect model.RollEffect
	busted := false
	if next.RollCountThisRound <= safeRollCount {
		next.BankValue, effect = applySafeRules(next.BankValue, die1, die2)
	} else {
		next.BankValue, effect, busted = applyHazardRules(next.BankValue, die1, die2)
	}

	next.LastRoll = &effect
	next.History = append(next.History, model.RollHistoryEntry{
		RollNumber:     next.RollCountThisRound,
		PlayerNickname: roller.Nickname,
		Die1:           die1,
		Die2:           die2,
		Result:         strconv.Itoa(effect.Sum),
		Effect:         effect.EffectText,
		BankAmount:     next.BankValue,
	})

	recordRoll(&next.Stats, roller.ID, effect, next.RollCountThisRound, busted)

	if busted {
		return e.endRoundBust(next)
	}
	return advanceTurnFrom(next, next.CurrentRollerIndex())
}

// ApplyBank credits the entire current bank value to the player's score.
// A non-roller may bank asynchronously without disturbing whose turn it
// is; banking the final unbanked seat ends the round. No-op if the
// player is unknown, has already banked, or the game is not in a round.
func (e *Engine) ApplyBank(state *model.GameState, playerID model.PlayerID) *model.GameState {
	if state.Phase != model.PhaseInRound {
		return state
	}
	player := state.FindPlayer(playerID)
	if player == nil || player.HasBankedThisRound {
		return state
	}

	// Captured before mutation: the roller's seat is needed to resume
	// rotation, and the deficit feeds the comeback record.
	wasCurrentRoller := player.IsCurrentRoller
	rollerIndex := state.CurrentRollerIndex()
	deficitBefore := maxScore(state.Players) - player.Score

	next := state.Clone()
	banker := next.FindPlayer(playerID)
	banker.Score += next.BankValue
	banker.PointsEarnedThisRound += next.BankValue
	banker.HasBankedThisRound = true
	banker.IsCurrentRoller = false

	next.LastBankedPlayer = banker.Nickname
	next.LastBankedAt = e.clock.Now()

	recordBank(&next.Stats, banker, next.RollCountThisRound, next.RoundNumber, deficitBefore, maxScore(next.Players))

	if next.AllBanked() {
		next.LastRollerIndex = rollerIndex
		next.Phase = model.PhaseRoundWinner
		next.RoundWinnerAt = e.clock.Now()
		return next
	}

	if wasCurrentRoller {
		return advanceTurnFrom(next, rollerIndex)
	}
	return next
}

// CheckBustTransition moves a busted game on to the round-winner display
// once the bust delay has elapsed. Pure and idempotent: call it on every
// state read; it returns the input state unchanged until the delay
// passes, and a repeated call after transitioning is a no-op (the phase
// is no longer bust).
func (e *Engine) CheckBustTransition(state *model.GameState, delay time.Duration) *model.GameState {
	if state.Phase != model.PhaseBust || state.BustAt.IsZero() {
		return state
	}
	if e.clock.Now().Sub(state.BustAt) < delay {
		return state
	}

	next := state.Clone()
	next.Phase = model.PhaseRoundWinner
	next.RoundWinnerAt = e.clock.Now()
	return next
}

// CheckRoundWinnerTransition starts the next round (or finishes the
// game) once the round-winner display delay has elapsed. Same lazy,
// idempotent contract as CheckBustTransition.
func (e *Engine) CheckRoundWinnerTransition(state *model.GameState, delay time.Duration) *model.GameState {
	if state.Phase != model.PhaseRoundWinner || state.RoundWinnerAt.IsZero() {
		return state
	}
	if e.clock.Now().Sub(state.RoundWinnerAt) < delay {
		return state
	}
	return e.StartNewRound(state)
}

// StartNewRound appends the just-finished round to the round history and
// either finishes the game or resets the round-scoped state. The next
// round's starting roller is the seat after the last active roller, so
// rotation continues fairly across rounds. When the game finishes, the
// final round's fields are left intact so they remain visible.
func (e *Engine) StartNewRound(state *model.GameState) *model.GameState {
	next := state.Clone()
	next.RoundHistory = append(next.RoundHistory, roundSummary(next))

	if next.RoundNumber+1 > next.TotalRounds {
		next.Phase = model.PhaseFinished
		return next
	}

	lastRollerIndex := next.LastRollerIndex
	if lastRollerIndex == model.NoRoller {
		lastRollerIndex = next.CurrentRollerIndex()
	}
	nextRollerIndex := 0
	if lastRollerIndex != model.NoRoller {
		nextRollerIndex = (lastRollerIndex + 1) % len(next.Players)
	}

	for i := range next.Players {
		next.Players[i].HasBankedThisRound = false
		next.Players[i].IsCurrentRoller = i == nextRollerIndex
		next.Players[i].PointsEarnedThisRound = 0
	}

	next.RoundNumber++
	next.BankValue = 0
	next.RollCountThisRound = 0
	next.LastRoll = nil
	next.History = []model.RollHistoryEntry{}
	next.Phase = model.PhaseInRound
	next.LastRollerIndex = model.NoRoller
	next.BustAt = time.Time{}
	next.RoundWinnerAt = time.Time{}
	next.LastBankedPlayer = ""
	next.LastBankedAt = time.Time{}

	return next
}

// GetWinners returns the player(s) holding the maximum cumulative score.
// Ties are reported as a multi-winner set, not arbitrarily broken.
func (e *Engine) GetWinners(state *model.GameState) []model.Player {
	if len(state.Players) == 0 {
		return nil
	}

	winners := []model.Player{}
	top := maxScore(state.Players)
	for _, p := range state.Players {
		if p.Score == top {
			winners = append(winners, p)
		}
	}
	return winners
}

func (e *Engine) rollDice() (int, int) {
	return e.random.Intn(6) + 1, e.random.Intn(6) + 1
}

// endRoundBust forces the whole table banked with nothing to show for
// it: the bank is already zeroed by the hazard rules, and the bust
// timestamp starts the delayed transition to the round-winner display.
func (e *Engine) endRoundBust(next *model.GameState) *model.GameState {
	next.LastRollerIndex = next.CurrentRollerIndex()
	for i := range next.Players {
		next.Players[i].HasBankedThisRound = true
		next.Players[i].IsCurrentRoller = false
	}
	next.Phase = model.PhaseBust
	next.BustAt = e.clock.Now()
	return next
}

// advanceTurnFrom hands the dice to the next unbanked seat after
// fromIndex, wrapping around. Both call sites guarantee at least one
// unbanked player remains.
func advanceTurnFrom(next *model.GameState, fromIndex int) *model.GameState {
	n := len(next.Players)
	idx := (fromIndex + 1) % n
	for attempts := 0; next.Players[idx].HasBankedThisRound && attempts < n; attempts++ {
		idx = (idx + 1) % n
	}

	for i := range next.Players {
		next.Players[i].IsCurrentRoller = i == idx && !next.Players[i].HasBankedThisRound
	}
	return next
}

// roundSummary records each player's haul for the round. The top player
// is the first max-points seat in seat order; per-round ties are not
// specially flagged.
func roundSummary(state *model.GameState) model.RoundHistoryEntry {
	results := make([]model.PlayerRoundResult, len(state.Players))
	topPoints := 0
	topPlayer := ""
	for i := range state.Players {
		p := &state.Players[i]
		results[i] = model.PlayerRoundResult{
			PlayerNickname: p.Nickname,
			PointsEarned:   p.PointsEarnedThisRound,
		}
		if p.PointsEarnedThisRound > topPoints || topPlayer == "" {
			topPoints = p.PointsEarnedThisRound
			topPlayer = p.Nickname
		}
	}

	return model.RoundHistoryEntry{
		RoundNumber:   state.RoundNumber,
		PlayerResults: results,
		TopPlayer:     topPlayer,
		TopPoints:     topPoints,
	}
}

func maxScore(players []model.Player) int {
	top := 0
	for i := range players {
		if players[i].Score > top {
			top = players[i].Score
		}
	}
	return top
}
