package room

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/bankit-go/internal/dependencies/clock"
	"github.com/mcoot/bankit-go/internal/dependencies/random"
	"github.com/mcoot/bankit-go/internal/engine"
	"github.com/mcoot/bankit-go/internal/model"
	"github.com/mcoot/bankit-go/internal/storage"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6
	// RoomCodeAlphabet is the characters used in room codes (avoid confusing chars)
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// MinPlayersToStart is the minimum roster size to start a game
	MinPlayersToStart = 2
)

// Controller manages room lifecycle and drives the game engine. All
// per-room operations run under a per-room lock, so at most one
// transition is in flight for a given room at a time.
type Controller struct {
	storage storage.Storage
	engine  *engine.Engine
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	locks   *roomLocks
}

// NewController creates a new room Controller
func NewController(
	storage storage.Storage,
	engine *engine.Engine,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		engine:  engine,
		clock:   clock,
		random:  random,
		logger:  logger,
		locks:   newRoomLocks(),
	}
}

// CreateRoom creates a new room with the given client as host. A zero
// totalRounds selects the default; otherwise it must be in range.
func (c *Controller) CreateRoom(ctx context.Context, clientID, nickname string, totalRounds int) (*model.Room, error) {
	if totalRounds == 0 {
		totalRounds = model.DefaultTotalRounds
	}
	if totalRounds < model.MinTotalRounds || totalRounds > model.MaxTotalRounds {
		return nil, model.ErrInvalidRounds
	}

	now := c.clock.Now()

	// Generate unique room code
	var code model.RoomCode
	for {
		code = model.RoomCode(c.random.String(RoomCodeLength, RoomCodeAlphabet))
		exists, err := c.storage.RoomExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	room := &model.Room{
		Code:         code,
		HostClientID: clientID,
		TotalRounds:  totalRounds,
		Members: []model.RoomMember{
			{
				ClientID: clientID,
				SeatID:   "player-0",
				Nickname: nickname,
				JoinedAt: now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	room.Game = c.engine.InitGame(room.Nicknames(), totalRounds)

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("code", string(room.Code)),
		slog.Int("total_rounds", totalRounds),
	)
	return room, nil
}

// GetRoom retrieves a room, advancing any pending time-based phase
// transition first. Reads drive the bust and round-winner countdowns,
// so a room nobody polls simply pauses.
func (c *Controller) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	unlock := c.locks.lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := c.advanceTime(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// JoinRoom adds a client to a room's roster. Only possible before the
// game starts; a member of the lobby "joining" again is an idempotent
// success. Members of a started game read state via GetRoom rather than
// rejoining. The pre-game state is rebuilt with the full roster on
// every join, so the starting roller is redrawn as players arrive.
func (c *Controller) JoinRoom(ctx context.Context, code model.RoomCode, clientID, nickname string) (*model.Room, error) {
	unlock := c.locks.lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if room.Started {
		return nil, model.ErrGameAlreadyStarted
	}
	if member := room.Member(clientID); member != nil {
		return room, nil
	}
	if room.HasNickname(nickname) {
		return nil, model.ErrNicknameTaken
	}

	room.Members = append(room.Members, model.RoomMember{
		ClientID: clientID,
		Nickname: nickname,
		JoinedAt: c.clock.Now(),
	})
	assignSeats(room)

	room.Game = c.engine.InitGame(room.Nicknames(), room.TotalRounds)
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// StartGame begins play. Only the host may start, and only once at
// least two players have joined.
func (c *Controller) StartGame(ctx context.Context, code model.RoomCode, clientID string) (*model.Room, error) {
	unlock := c.locks.lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if room.HostClientID != clientID {
		return nil, model.ErrNotHost
	}
	if room.Started {
		return nil, model.ErrGameAlreadyStarted
	}
	if len(room.Members) < MinPlayersToStart {
		return nil, model.ErrInsufficientPlayers
	}

	game := room.Game.Clone()
	game.Phase = model.PhaseInRound

	room.Game = game
	room.Started = true
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("code", string(room.Code)),
		slog.Int("players", len(room.Members)),
	)
	return room, nil
}

// UpdateSettings changes the room's round count. Host-only, pre-game
// only.
func (c *Controller) UpdateSettings(ctx context.Context, code model.RoomCode, clientID string, totalRounds int) (*model.Room, error) {
	unlock := c.locks.lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if room.HostClientID != clientID {
		return nil, model.ErrNotHost
	}
	if room.Started {
		return nil, model.ErrGameAlreadyStarted
	}
	if totalRounds < model.MinTotalRounds || totalRounds > model.MaxTotalRounds {
		return nil, model.ErrInvalidRounds
	}

	game := room.Game.Clone()
	game.TotalRounds = totalRounds

	room.Game = game
	room.TotalRounds = totalRounds
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// RestartRoom resets the room in place for a rematch. The requesting
// member becomes sole host of a fresh lobby under the same code, with
// the round count carried over; everyone else polling the code sees the
// new lobby and rejoins from there.
func (c *Controller) RestartRoom(ctx context.Context, code model.RoomCode, clientID string) (*model.Room, error) {
	unlock := c.locks.lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	member := room.Member(clientID)
	if member == nil {
		return nil, model.ErrNotInRoom
	}
	nickname := member.Nickname

	now := c.clock.Now()
	room.HostClientID = clientID
	room.Started = false
	room.Members = []model.RoomMember{
		{
			ClientID: clientID,
			SeatID:   "player-0",
			Nickname: nickname,
			JoinedAt: now,
		},
	}
	room.Game = c.engine.InitGame(room.Nicknames(), room.TotalRounds)
	room.UpdatedAt = now

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("room restarted",
		slog.String("code", string(room.Code)),
		slog.String("host", nickname),
	)
	return room, nil
}

// Roll rolls the dice for the requesting client. Turn ownership is
// enforced here; the engine itself treats an out-of-turn roll as a
// no-op.
func (c *Controller) Roll(ctx context.Context, code model.RoomCode, clientID string) (*model.Room, error) {
	unlock := c.locks.lock(code)
	defer unlock()

	room, member, err := c.loadForPlay(ctx, code, clientID)
	if err != nil {
		return nil, err
	}

	if room.Game.Phase == model.PhaseFinished {
		return nil, model.ErrGameFinished
	}
	roller := room.Game.CurrentRoller()
	if roller == nil || roller.ID != member.SeatID {
		return nil, model.ErrNotPlayerTurn
	}

	return room, c.persistIfChanged(ctx, room, c.engine.ApplyRoll(room.Game))
}

// Bank banks the current bank value for the requesting client
func (c *Controller) Bank(ctx context.Context, code model.RoomCode, clientID string) (*model.Room, error) {
	unlock := c.locks.lock(code)
	defer unlock()

	room, member, err := c.loadForPlay(ctx, code, clientID)
	if err != nil {
		return nil, err
	}

	if room.Game.Phase == model.PhaseFinished {
		return nil, model.ErrGameFinished
	}
	player := room.Game.FindPlayer(member.SeatID)
	if player == nil {
		return nil, model.ErrPlayerNotFound
	}
	if player.HasBankedThisRound {
		return nil, model.ErrAlreadyBanked
	}

	return room, c.persistIfChanged(ctx, room, c.engine.ApplyBank(room.Game, member.SeatID))
}

// Winners returns the final standings for a finished game
func (c *Controller) Winners(ctx context.Context, code model.RoomCode) ([]model.Player, error) {
	unlock := c.locks.lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := c.advanceTime(ctx, room); err != nil {
		return nil, err
	}
	if room.Game == nil || room.Game.Phase != model.PhaseFinished {
		return nil, model.ErrGameNotStarted
	}

	return c.engine.GetWinners(room.Game), nil
}

// loadForPlay fetches a room for a game action: the game must be
// underway, the client must be seated, and any pending time transition
// is applied first. Callers must hold the room lock.
func (c *Controller) loadForPlay(ctx context.Context, code model.RoomCode, clientID string) (*model.Room, *model.RoomMember, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	if !room.Started || room.Game == nil {
		return nil, nil, model.ErrGameNotStarted
	}
	member := room.Member(clientID)
	if member == nil {
		return nil, nil, model.ErrNotInRoom
	}

	if err := c.advanceTime(ctx, room); err != nil {
		return nil, nil, err
	}
	return room, member, nil
}

// advanceTime applies any due lazy phase transition and persists the
// result. Callers must hold the room lock.
func (c *Controller) advanceTime(ctx context.Context, room *model.Room) error {
	if room.Game == nil {
		return nil
	}

	next := c.engine.CheckBustTransition(room.Game, engine.BustDelay)
	next = c.engine.CheckRoundWinnerTransition(next, engine.RoundWinnerDelay)
	return c.persistIfChanged(ctx, room, next)
}

// persistIfChanged saves the room iff the engine produced a new state.
// The engine returns its input pointer unchanged for no-op actions.
func (c *Controller) persistIfChanged(ctx context.Context, room *model.Room, next *model.GameState) error {
	if next == room.Game {
		return nil
	}

	room.Game = next
	room.UpdatedAt = c.clock.Now()
	return c.storage.SaveRoom(ctx, room)
}

// assignSeats renumbers seat IDs to match roster order, matching the
// IDs the engine assigns to players
func assignSeats(room *model.Room) {
	for i := range room.Members {
		room.Members[i].SeatID = model.PlayerID(fmt.Sprintf("player-%d", i))
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateRoom(ctx context.Context, clientID, nickname string, totalRounds int) (*model.Room, error)
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	JoinRoom(ctx context.Context, code model.RoomCode, clientID, nickname string) (*model.Room, error)
	StartGame(ctx context.Context, code model.RoomCode, clientID string) (*model.Room, error)
	UpdateSettings(ctx context.Context, code model.RoomCode, clientID string, totalRounds int) (*model.Room, error)
	RestartRoom(ctx context.Context, code model.RoomCode, clientID string) (*model.Room, error)
	Roll(ctx context.Context, code model.RoomCode, clientID string) (*model.Room, error)
	Bank(ctx context.Context, code model.RoomCode, clientID string) (*model.Room, error)
	Winners(ctx context.Context, code model.RoomCode) ([]model.Player, error)
}

var _ ControllerInterface = (*Controller)(nil)
