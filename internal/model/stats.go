package model

// RoundRecord is the largest single-round point haul seen so far
type RoundRecord struct {
	Player string
	Points int
	Round  int
}

// ComebackRecord is the largest score deficit overcome by a single bank
type ComebackRecord struct {
	Player  string
	Deficit int
}

// GameStats holds per-player counters accumulated over the whole game.
// It is derived, observational data for end-of-game awards: it never
// feeds back into scoring or phase transitions.
type GameStats struct {
	TotalRolls    map[PlayerID]int
	HazardRolls   map[PlayerID]int // rolls taken from roll 4 onward
	HazardDoubles map[PlayerID]int // doubles rolled from roll 4 onward
	Busts         map[PlayerID]int
	EarlyBanks    map[PlayerID]int // banks during rolls 1-3

	BiggestRound *RoundRecord
	ComebackKing *ComebackRecord
}

// NewGameStats returns stats with a zero counter for every player
func NewGameStats(players []Player) GameStats {
	stats := GameStats{
		TotalRolls:    make(map[PlayerID]int, len(players)),
		HazardRolls:   make(map[PlayerID]int, len(players)),
		HazardDoubles: make(map[PlayerID]int, len(players)),
		Busts:         make(map[PlayerID]int, len(players)),
		EarlyBanks:    make(map[PlayerID]int, len(players)),
	}
	for i := range players {
		id := players[i].ID
		stats.TotalRolls[id] = 0
		stats.HazardRolls[id] = 0
		stats.HazardDoubles[id] = 0
		stats.Busts[id] = 0
		stats.EarlyBanks[id] = 0
	}
	return stats
}

// Clone returns a deep copy of the stats
func (s GameStats) Clone() GameStats {
	next := GameStats{
		TotalRolls:    cloneCounts(s.TotalRolls),
		HazardRolls:   cloneCounts(s.HazardRolls),
		HazardDoubles: cloneCounts(s.HazardDoubles),
		Busts:         cloneCounts(s.Busts),
		EarlyBanks:    cloneCounts(s.EarlyBanks),
	}
	if s.BiggestRound != nil {
		record := *s.BiggestRound
		next.BiggestRound = &record
	}
	if s.ComebackKing != nil {
		record := *s.ComebackKing
		next.ComebackKing = &record
	}
	return next
}

func cloneCounts(counts map[PlayerID]int) map[PlayerID]int {
	if counts == nil {
		return nil
	}
	next := make(map[PlayerID]int, len(counts))
	for id, n := range counts {
		next[id] = n
	}
	return next
}
