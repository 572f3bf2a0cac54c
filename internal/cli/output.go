package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case RoomResult:
		o.printRoomResult(v)
	case WinnersResult:
		o.printWinnersResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID                    string `json:"id"`
	Nickname              string `json:"nickname"`
	Score                 int    `json:"score"`
	HasBankedThisRound    bool   `json:"has_banked_this_round"`
	IsCurrentRoller       bool   `json:"is_current_roller"`
	PointsEarnedThisRound int    `json:"points_earned_this_round"`
}

// RollEffect response type
type RollEffect struct {
	Die1       int    `json:"die1"`
	Die2       int    `json:"die2"`
	Sum        int    `json:"sum"`
	WasDouble  bool   `json:"was_double"`
	EffectType string `json:"effect_type"`
	EffectText string `json:"effect_text"`
}

// RollHistoryEntry response type
type RollHistoryEntry struct {
	RollNumber     int    `json:"roll_number"`
	PlayerNickname string `json:"player_nickname"`
	Die1           int    `json:"die1"`
	Die2           int    `json:"die2"`
	Result         string `json:"result"`
	Effect         string `json:"effect"`
	BankAmount     int    `json:"bank_amount"`
}

// RoundHistoryEntry response type
type RoundHistoryEntry struct {
	RoundNumber int    `json:"round_number"`
	TopPlayer   string `json:"top_player"`
	TopPoints   int    `json:"top_points"`
}

// GameState response type
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
}

// RoomMember response type
type RoomMember struct {
	SeatID   string    `json:"seat_id"`
	Nickname string    `json:"nickname"`
	IsHost   bool      `json:"is_host"`
	JoinedAt time.Time `json:"joined_at"`
}

// Room response type
type Room struct {
	Code        string       `json:"code"`
	TotalRounds int          `json:"total_rounds"`
	Started     bool         `json:"started"`
	Members     []RoomMember `json:"members"`
	Game        *GameState   `json:"game"`
}

// RoomResult is a room plus the caller's own seat
type RoomResult struct {
	Room   Room   `json:"room"`
	SeatID string `json:"seat_id,omitempty"`
}

// WinnersResult response type
type WinnersResult struct {
	Winners []Player `json:"winners"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printRoomResult(r RoomResult) {
	room := r.Room

	fmt.Printf("Room: %s\n", room.Code)
	fmt.Printf("Rounds: %d\n", room.TotalRounds)

	if room.Game == nil || !room.Started {
		fmt.Println("Status: waiting for players")
		fmt.Printf("Members (%d):\n", len(room.Members))
		for _, m := range room.Members {
			hostStr := ""
			if m.IsHost {
				hostStr = " [host]"
			}
			youStr := ""
			if m.SeatID == r.SeatID && r.SeatID != "" {
				youStr = " (you)"
			}
			fmt.Printf("  - %s%s%s\n", m.Nickname, hostStr, youStr)
		}
		return
	}

	g := room.Game
	fmt.Printf("Phase: %s\n", g.Phase)
	fmt.Printf("Round: %d/%d\n", g.RoundNumber, g.TotalRounds)
	fmt.Printf("Bank: %d (roll %d)\n", g.BankValue, g.RollCountThisRound)

	if g.LastRoll != nil {
		fmt.Printf("Last roll: %d + %d = %d  %s\n",
			g.LastRoll.Die1, g.LastRoll.Die2, g.LastRoll.Sum, g.LastRoll.EffectText)
	}
	if g.LastBankedPlayer != "" {
		fmt.Printf("Last banked: %s\n", g.LastBankedPlayer)
	}

	fmt.Println("Players:")
	for _, p := range g.Players {
		markers := []string{}
		if p.IsCurrentRoller {
			markers = append(markers, "rolling")
		}
		if p.HasBankedThisRound {
			markers = append(markers, "banked")
		}
		if p.ID == r.SeatID && r.SeatID != "" {
			markers = append(markers, "you")
		}
		markerStr := ""
		if len(markers) > 0 {
			markerStr = " [" + strings.Join(markers, ", ") + "]"
		}
		fmt.Printf("  %-12s %5d pts%s\n", p.Nickname, p.Score, markerStr)
	}

	if len(g.RoundHistory) > 0 {
		fmt.Println("Rounds so far:")
		for _, entry := range g.RoundHistory {
			fmt.Printf("  round %d: %s (+%d)\n", entry.RoundNumber, entry.TopPlayer, entry.TopPoints)
		}
	}
}

func (o *Output) printWinnersResult(w WinnersResult) {
	if len(w.Winners) == 1 {
		fmt.Printf("Winner: %s (%d pts)\n", w.Winners[0].Nickname, w.Winners[0].Score)
		return
	}

	fmt.Println("Winners (tie):")
	for _, p := range w.Winners {
		fmt.Printf("  - %s (%d pts)\n", p.Nickname, p.Score)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
