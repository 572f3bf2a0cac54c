package engine

import "github.com/mcoot/bankit-go/internal/model"

// Stats are observational: they are updated alongside each transition
// but never read back by the state machine, so they cannot influence
// scoring or phase transitions.

func recordRoll(stats *model.GameStats, roller model.PlayerID, effect model.RollEffect, rollCount int, busted bool) {
	ensureStats(stats)

	stats.TotalRolls[roller]++
	if rollCount > safeRollCount {
		stats.HazardRolls[roller]++
		if effect.WasDouble {
			stats.HazardDoubles[roller]++
		}
	}
	if busted {
		stats.Busts[roller]++
	}
}

// recordBank is called after the bank value has been credited to the
// player, so banker.PointsEarnedThisRound and banker.Score reflect the
// post-bank totals.
func recordBank(stats *model.GameStats, banker *model.Player, rollCount, roundNumber, deficitBefore, maxScoreAfter int) {
	ensureStats(stats)

	if rollCount <= safeRollCount {
		stats.EarlyBanks[banker.ID]++
	}

	if stats.BiggestRound == nil || banker.PointsEarnedThisRound > stats.BiggestRound.Points {
		stats.BiggestRound = &model.RoundRecord{
			Player: banker.Nickname,
			Points: banker.PointsEarnedThisRound,
			Round:  roundNumber,
		}
	}

	// A comeback: the player was strictly behind before banking and the
	// bank brought them to at least the new leading score.
	if deficitBefore > 0 && banker.Score >= maxScoreAfter {
		if stats.ComebackKing == nil || deficitBefore > stats.ComebackKing.Deficit {
			stats.ComebackKing = &model.ComebackRecord{
				Player:  banker.Nickname,
				Deficit: deficitBefore,
			}
		}
	}
}

// ensureStats tolerates hand-built states with uninitialized counters
func ensureStats(stats *model.GameStats) {
	if stats.TotalRolls == nil {
		stats.TotalRolls = make(map[model.PlayerID]int)
	}
	if stats.HazardRolls == nil {
		stats.HazardRolls = make(map[model.PlayerID]int)
	}
	if stats.HazardDoubles == nil {
		stats.HazardDoubles = make(map[model.PlayerID]int)
	}
	if stats.Busts == nil {
		stats.Busts = make(map[model.PlayerID]int)
	}
	if stats.EarlyBanks == nil {
		stats.EarlyBanks = make(map[model.PlayerID]int)
	}
}
