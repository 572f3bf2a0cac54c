package request

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	ClientID    string `json:"client_id"`
	Nickname    string `json:"nickname"`
	TotalRounds int    `json:"total_rounds,omitempty"`
}

// JoinRoomRequest is the request body for joining a room
type JoinRoomRequest struct {
	ClientID string `json:"client_id"`
	Nickname string `json:"nickname"`
}

// StartGameRequest is the request body for starting a game
type StartGameRequest struct {
	ClientID string `json:"client_id"`
}

// UpdateSettingsRequest is the request body for updating room settings
type UpdateSettingsRequest struct {
	ClientID    string `json:"client_id"`
	TotalRounds int    `json:"total_rounds"`
}

// RollRequest is the request body for rolling the dice
type RollRequest struct {
	ClientID string `json:"client_id"`
}

// BankRequest is the request body for banking
type BankRequest struct {
	ClientID string `json:"client_id"`
}

// RestartRequest is the request body for starting a rematch room
type RestartRequest struct {
	ClientID string `json:"client_id"`
}
