package model

import (
	"strings"
	"time"
)

// RoomCode is a human-readable identifier for joining rooms
type RoomCode string

// Bounds for the configurable round count
const (
	MinTotalRounds     = 3
	MaxTotalRounds     = 50
	DefaultTotalRounds = 10
)

// RoomMember maps a client-supplied player identity to a seat in the
// game. Client IDs are trusted pseudo-random strings generated by the
// client; there is no authentication.
type RoomMember struct {
	ClientID string
	SeatID   PlayerID
	Nickname string
	JoinedAt time.Time
}

// Room groups a set of players around a single game
type Room struct {
	Code         RoomCode
	HostClientID string
	TotalRounds  int
	Started      bool
	Members      []RoomMember
	Game         *GameState
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Member returns the member with the given client ID, or nil
func (r *Room) Member(clientID string) *RoomMember {
	for i := range r.Members {
		if r.Members[i].ClientID == clientID {
			return &r.Members[i]
		}
	}
	return nil
}

// HasNickname reports whether any member already uses the nickname,
// case-insensitively
func (r *Room) HasNickname(nickname string) bool {
	for i := range r.Members {
		if strings.EqualFold(r.Members[i].Nickname, nickname) {
			return true
		}
	}
	return false
}

// Nicknames returns member nicknames in seat order
func (r *Room) Nicknames() []string {
	nicknames := make([]string, len(r.Members))
	for i := range r.Members {
		nicknames[i] = r.Members[i].Nickname
	}
	return nicknames
}
