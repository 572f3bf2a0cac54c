package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/bankit-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.RoomTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := &model.Room{
		Code:         "ABC123",
		HostClientID: "client-1",
		TotalRounds:  10,
		Members: []model.RoomMember{
			{ClientID: "client-1", SeatID: "player-0", Nickname: "alice"},
		},
	}

	err := s.storage.SaveRoom(s.ctx, room)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(room.Code, retrieved.Code)
	s.Equal(room.HostClientID, retrieved.HostClientID)
	s.Require().Len(retrieved.Members, 1)
	s.Equal("alice", retrieved.Members[0].Nickname)
}

func (s *StorageSuite) TestSaveRoomRoundTripsGameState() {
	room := &model.Room{
		Code: "ABC123",
		Game: &model.GameState{
			Players: []model.Player{
				{ID: "player-0", Nickname: "alice", IsCurrentRoller: true},
				{ID: "player-1", Nickname: "bob", Score: 140},
			},
			RoundNumber:     3,
			TotalRounds:     10,
			BankValue:       70,
			Phase:           model.PhaseInRound,
			LastRollerIndex: model.NoRoller,
			Stats: model.GameStats{
				TotalRolls: map[model.PlayerID]int{"player-0": 4, "player-1": 3},
			},
		},
	}

	err := s.storage.SaveRoom(s.ctx, room)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Require().NotNil(retrieved.Game)
	s.Equal(model.PhaseInRound, retrieved.Game.Phase)
	s.Equal(70, retrieved.Game.BankValue)
	s.Equal(140, retrieved.Game.Players[1].Score)
	s.Equal(4, retrieved.Game.Stats.TotalRolls["player-0"])
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "NOPE99")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestDeleteRoom() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABC123"})

	err := s.storage.DeleteRoom(s.ctx, "ABC123")
	s.Require().NoError(err)

	_, err = s.storage.GetRoom(s.ctx, "ABC123")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestRoomExists() {
	exists, err := s.storage.RoomExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABC123"})

	exists, err = s.storage.RoomExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestRoomTTLApplied() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABC123"})

	ttl := s.mini.TTL(roomKey("ABC123"))
	s.Equal(time.Hour, ttl)
}

func (s *StorageSuite) TestRoomTTLRefreshedOnSave() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABC123"})
	s.mini.FastForward(30 * time.Minute)

	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABC123"})

	ttl := s.mini.TTL(roomKey("ABC123"))
	s.Equal(time.Hour, ttl)
}

func (s *StorageSuite) TestRoomExpiresAfterTTL() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABC123"})
	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.ErrorIs(err, model.ErrRoomNotFound)
}
