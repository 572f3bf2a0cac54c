package response

import (
	"time"

	"github.com/mcoot/bankit-go/internal/model"
)

// Player represents a seated player in API responses
type Player struct {
	ID                    string `json:"id"`
	Nickname              string `json:"nickname"`
	Score                 int    `json:"score"`
	HasBankedThisRound    bool   `json:"has_banked_this_round"`
	IsCurrentRoller       bool   `json:"is_current_roller"`
	PointsEarnedThisRound int    `json:"points_earned_this_round"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:                    string(p.ID),
		Nickname:              p.Nickname,
		Score:                 p.Score,
		HasBankedThisRound:    p.HasBankedThisRound,
		IsCurrentRoller:       p.IsCurrentRoller,
		PointsEarnedThisRound: p.PointsEarnedThisRound,
	}
}

// RollEffect represents the most recent roll and its effect
type RollEffect struct {
	Die1       int    `json:"die1"`
	Die2       int    `json:"die2"`
	Sum        int    `json:"sum"`
	WasDouble  bool   `json:"was_double"`
	EffectType string `json:"effect_type"`
	EffectText string `json:"effect_text"`
}

// RollEffectFromModel converts a model.RollEffect
func RollEffectFromModel(e *model.RollEffect) *RollEffect {
	if e == nil {
		return nil
	}
	return &RollEffect{
		Die1:       e.Die1,
		Die2:       e.Die2,
		Sum:        e.Sum,
		WasDouble:  e.WasDouble,
		EffectType: string(e.EffectType),
		EffectText: e.EffectText,
	}
}

// RollHistoryEntry is one line in the current round's roll log
type RollHistoryEntry struct {
	RollNumber     int    `json:"roll_number"`
	PlayerNickname string `json:"player_nickname"`
	Die1           int    `json:"die1"`
	Die2           int    `json:"die2"`
	Result         string `json:"result"`
	Effect         string `json:"effect"`
	BankAmount     int    `json:"bank_amount"`
}

// PlayerRoundResult is one player's outcome within a completed round
type PlayerRoundResult struct {
	PlayerNickname string `json:"player_nickname"`
	PointsEarned   int    `json:"points_earned"`
}

// RoundHistoryEntry summarizes a completed round
type RoundHistoryEntry struct {
	RoundNumber   int                 `json:"round_number"`
	PlayerResults []PlayerRoundResult `json:"player_results"`
	TopPlayer     string              `json:"top_player"`
	TopPoints     int                 `json:"top_points"`
}

// RoundRecord is the best single-round haul seen so far
type RoundRecord struct {
	Player string `json:"player"`
	Points int    `json:"points"`
	Round  int    `json:"round"`
}

// ComebackRecord is the largest deficit overcome by a single bank
type ComebackRecord struct {
	Player  string `json:"player"`
	Deficit int    `json:"deficit"`
}

// GameStats holds per-player counters for end-of-game awards
type GameStats struct {
	TotalRolls    map[string]int  `json:"total_rolls"`
	HazardRolls   map[string]int  `json:"hazard_rolls"`
	HazardDoubles map[string]int  `json:"hazard_doubles"`
	Busts         map[string]int  `json:"busts"`
	EarlyBanks    map[string]int  `json:"early_banks"`
	BiggestRound  *RoundRecord    `json:"biggest_round"`
	ComebackKing  *ComebackRecord `json:"comeback_king"`
}

// GameState represents the full game state in API responses
type GameState struct {
	Players            []Player            `json:"players"`
	RoundNumber        int                 `json:"round_number"`
	TotalRounds        int                 `json:"total_rounds"`
	BankValue          int                 `json:"bank_value"`
	RollCountThisRound int                 `json:"roll_count_this_round"`
	LastRoll           *RollEffect         `json:"last_roll"`
	History            []RollHistoryEntry  `json:"history"`
	RoundHistory       []RoundHistoryEntry `json:"round_history"`
	Phase              string              `json:"phase"`
	LastBankedPlayer   string              `json:"last_banked_player,omitempty"`
	Stats              GameStats           `json:"stats"`
}

// GameStateFromModel converts a model.GameState
func GameStateFromModel(g *model.GameState) *GameState {
	if g == nil {
		return nil
	}

	players := make([]Player, len(g.Players))
	for i, p := range g.Players {
		players[i] = PlayerFromModel(p)
	}

	history := make([]RollHistoryEntry, len(g.History))
	for i, e := range g.History {
		history[i] = RollHistoryEntry(e)
	}

	roundHistory := make([]RoundHistoryEntry, len(g.RoundHistory))
	for i, e := range g.RoundHistory {
		results := make([]PlayerRoundResult, len(e.PlayerResults))
		for j, r := range e.PlayerResults {
			results[j] = PlayerRoundResult(r)
		}
		roundHistory[i] = RoundHistoryEntry{
			RoundNumber:   e.RoundNumber,
			PlayerResults: results,
			TopPlayer:     e.TopPlayer,
			TopPoints:     e.TopPoints,
		}
	}

	return &GameState{
		Players:            players,
		RoundNumber:        g.RoundNumber,
		TotalRounds:        g.TotalRounds,
		BankValue:          g.BankValue,
		RollCountThisRound: g.RollCountThisRound,
		LastRoll:           RollEffectFromModel(g.LastRoll),
		History:            history,
		RoundHistory:       roundHistory,
		Phase:              string(g.Phase),
		LastBankedPlayer:   g.LastBankedPlayer,
		Stats:              statsFromModel(g.Stats),
	}
}

func statsFromModel(s model.GameStats) GameStats {
	stats := GameStats{
		TotalRolls:    countsFromModel(s.TotalRolls),
		HazardRolls:   countsFromModel(s.HazardRolls),
		HazardDoubles: countsFromModel(s.HazardDoubles),
		Busts:         countsFromModel(s.Busts),
		EarlyBanks:    countsFromModel(s.EarlyBanks),
	}
	if s.BiggestRound != nil {
		stats.BiggestRound = &RoundRecord{
			Player: s.BiggestRound.Player,
			Points: s.BiggestRound.Points,
			Round:  s.BiggestRound.Round,
		}
	}
	if s.ComebackKing != nil {
		stats.ComebackKing = &ComebackRecord{
			Player:  s.ComebackKing.Player,
			Deficit: s.ComebackKing.Deficit,
		}
	}
	return stats
}

func countsFromModel(counts map[model.PlayerID]int) map[string]int {
	out := make(map[string]int, len(counts))
	for id, n := range counts {
		out[string(id)] = n
	}
	return out
}

// RoomMember represents a seated client in API responses
type RoomMember struct {
	SeatID   string    `json:"seat_id"`
	Nickname string    `json:"nickname"`
	IsHost   bool      `json:"is_host"`
	JoinedAt time.Time `json:"joined_at"`
}

// Room represents a room in API responses
type Room struct {
	Code        string       `json:"code"`
	TotalRounds int          `json:"total_rounds"`
	Started     bool         `json:"started"`
	Members     []RoomMember `json:"members"`
	Game        *GameState   `json:"game"`
	CreatedAt   time.Time    `json:"created_at"`
}

// RoomFromModel converts a model.Room. Client IDs are private to their
// owners and never echoed back.
func RoomFromModel(r *model.Room) Room {
	members := make([]RoomMember, len(r.Members))
	for i, m := range r.Members {
		members[i] = RoomMember{
			SeatID:   string(m.SeatID),
			Nickname: m.Nickname,
			IsHost:   m.ClientID == r.HostClientID,
			JoinedAt: m.JoinedAt,
		}
	}

	return Room{
		Code:        string(r.Code),
		TotalRounds: r.TotalRounds,
		Started:     r.Started,
		Members:     members,
		Game:        GameStateFromModel(r.Game),
		CreatedAt:   r.CreatedAt,
	}
}

// RoomResponse wraps a room plus the requesting client's own seat
type RoomResponse struct {
	Room   Room   `json:"room"`
	SeatID string `json:"seat_id,omitempty"`
}

// WinnersResponse is the response for the winners endpoint
type WinnersResponse struct {
	Winners []Player `json:"winners"`
}

// HealthResponse is the response for the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}
