package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/bankit-go/internal/api/request"
	"github.com/mcoot/bankit-go/internal/api/response"
	"github.com/mcoot/bankit-go/internal/model"
	"github.com/mcoot/bankit-go/internal/services/room"
)

// RoomHandler handles room and game endpoints
type RoomHandler struct {
	roomController *room.Controller
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomController *room.Controller) *RoomHandler {
	return &RoomHandler{
		roomController: roomController,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.ClientID == "" || req.Nickname == "" {
		WriteError(w, NewInvalidRequestError("client_id and nickname are required"))
		return
	}

	created, err := h.roomController.CreateRoom(r.Context(), req.ClientID, req.Nickname, req.TotalRounds)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, h.roomResponse(created, req.ClientID))
}

// Get handles GET /api/v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	found, err := h.roomController.GetRoom(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.roomResponse(found, r.URL.Query().Get("client_id")))
}

// Join handles POST /api/v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.ClientID == "" || req.Nickname == "" {
		WriteError(w, NewInvalidRequestError("client_id and nickname are required"))
		return
	}

	joined, err := h.roomController.JoinRoom(r.Context(), code, req.ClientID, req.Nickname)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.roomResponse(joined, req.ClientID))
}

// Start handles POST /api/v1/rooms/{code}/start
func (h *RoomHandler) Start(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	started, err := h.roomController.StartGame(r.Context(), code, req.ClientID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.roomResponse(started, req.ClientID))
}

// UpdateSettings handles POST /api/v1/rooms/{code}/settings
func (h *RoomHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	updated, err := h.roomController.UpdateSettings(r.Context(), code, req.ClientID, req.TotalRounds)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.roomResponse(updated, req.ClientID))
}

// Roll handles POST /api/v1/rooms/{code}/roll
func (h *RoomHandler) Roll(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.RollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	updated, err := h.roomController.Roll(r.Context(), code, req.ClientID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.roomResponse(updated, req.ClientID))
}

// Bank handles POST /api/v1/rooms/{code}/bank
func (h *RoomHandler) Bank(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.BankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	updated, err := h.roomController.Bank(r.Context(), code, req.ClientID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.roomResponse(updated, req.ClientID))
}

// Restart handles POST /api/v1/rooms/{code}/restart
func (h *RoomHandler) Restart(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.RestartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	fresh, err := h.roomController.RestartRoom(r.Context(), code, req.ClientID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.roomResponse(fresh, req.ClientID))
}

// Winners handles GET /api/v1/rooms/{code}/winners
func (h *RoomHandler) Winners(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	winners, err := h.roomController.Winners(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	players := make([]response.Player, len(winners))
	for i, p := range winners {
		players[i] = response.PlayerFromModel(p)
	}
	response.JSON(w, http.StatusOK, response.WinnersResponse{Winners: players})
}

// roomResponse builds the room payload, resolving the caller's seat if
// their client ID is known
func (h *RoomHandler) roomResponse(r *model.Room, clientID string) response.RoomResponse {
	resp := response.RoomResponse{Room: response.RoomFromModel(r)}
	if member := r.Member(clientID); member != nil {
		resp.SeatID = string(member.SeatID)
	}
	return resp
}
