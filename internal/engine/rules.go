package engine

import (
	"fmt"

	"github.com/mcoot/bankit-go/internal/model"
)

const (
	// Rolls 1-3 of a round are the safe phase: no roll can bust there
	safeRollCount = 3

	// Bonus added to the bank for a safe-phase 7
	luckySevenBonus = 70
)

// applySafeRules scores a roll during the safe phase: a 7 adds 70 to the
// bank (the game's signature rule), anything else (doubles included)
// adds its face value.
func applySafeRules(bank, die1, die2 int) (int, model.RollEffect) {
	sum := die1 + die2
	wasDouble := die1 == die2
	effect := model.RollEffect{Die1: die1, Die2: die2, Sum: sum, WasDouble: wasDouble}

	if sum == 7 {
		bank += luckySevenBonus
		effect.EffectType = model.EffectAdd70
		effect.EffectText = fmt.Sprintf("Lucky 7! Bank +%d", luckySevenBonus)
		return bank, effect
	}

	bank += sum
	effect.EffectType = model.EffectAdd
	if wasDouble {
		effect.EffectText = fmt.Sprintf("+%d to bank (doubles)", sum)
	} else {
		effect.EffectText = fmt.Sprintf("+%d to bank", sum)
	}
	return bank, effect
}

// applyHazardRules scores a roll from roll 4 onward: a 7 busts the round
// (bank zeroed), doubles double the entire bank, anything else adds its
// face value. Doubling compounds on repeat doubles; a zero bank doubled
// stays zero.
func applyHazardRules(bank, die1, die2 int) (int, model.RollEffect, bool) {
	sum := die1 + die2
	wasDouble := die1 == die2
	effect := model.RollEffect{Die1: die1, Die2: die2, Sum: sum, WasDouble: wasDouble}

	switch {
	case sum == 7:
		effect.EffectType = model.EffectBust
		effect.EffectText = "BUST! Bank emptied"
		return 0, effect, true
	case wasDouble:
		bank *= 2
		effect.EffectType = model.EffectDoubleBank
		effect.EffectText = fmt.Sprintf("Doubles! Bank doubled to %d", bank)
		return bank, effect, false
	default:
		bank += sum
		effect.EffectType = model.EffectAdd
		effect.EffectText = fmt.Sprintf("+%d to bank", sum)
		return bank, effect, false
	}
}
