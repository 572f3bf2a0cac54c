package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/bankit-go/internal/dependencies/mocks"
	"github.com/mcoot/bankit-go/internal/model"
)

type EngineSuite struct {
	suite.Suite
	clock  *mocks.MockClock
	random *mocks.MockRandom
	engine *Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.engine = New(s.clock, s.random)
}

// newInRoundGame builds a game mid-round with the given starting roller
func (s *EngineSuite) newInRoundGame(nicknames []string, totalRounds, startIndex int) *model.GameState {
	s.random.QueueIntn(startIndex)
	state := s.engine.InitGame(nicknames, totalRounds)
	state.Phase = model.PhaseInRound
	return state
}

// queueDice queues die face values in (die1, die2) pairs
func (s *EngineSuite) queueDice(faces ...int) {
	for _, face := range faces {
		s.random.QueueIntn(face - 1)
	}
}

// InitGame tests

func (s *EngineSuite) TestInitGameSeatsPlayersInOrder() {
	s.random.QueueIntn(1)

	state := s.engine.InitGame([]string{"alice", "bob", "carol"}, 10)

	s.Equal(model.PhaseLobby, state.Phase)
	s.Equal(1, state.RoundNumber)
	s.Equal(10, state.TotalRounds)
	s.Equal(0, state.BankValue)
	s.Equal(0, state.RollCountThisRound)
	s.Len(state.Players, 3)
	s.Equal(model.PlayerID("player-0"), state.Players[0].ID)
	s.Equal(model.PlayerID("player-2"), state.Players[2].ID)
	s.Equal("bob", state.Players[1].Nickname)
}

func (s *EngineSuite) TestInitGamePicksStartingRollerRandomly() {
	s.random.QueueIntn(2)

	state := s.engine.InitGame([]string{"alice", "bob", "carol"}, 10)

	s.False(state.Players[0].IsCurrentRoller)
	s.False(state.Players[1].IsCurrentRoller)
	s.True(state.Players[2].IsCurrentRoller)
}

func (s *EngineSuite) TestInitGameZeroesStatsForEveryPlayer() {
	s.random.QueueIntn(0)

	state := s.engine.InitGame([]string{"alice", "bob"}, 10)

	s.Len(state.Stats.TotalRolls, 2)
	s.Equal(0, state.Stats.TotalRolls["player-0"])
	s.Equal(0, state.Stats.EarlyBanks["player-1"])
	s.Nil(state.Stats.BiggestRound)
	s.Nil(state.Stats.ComebackKing)
}

// ApplyRoll tests

func (s *EngineSuite) TestSafeSevenAddsSeventy() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	s.queueDice(3, 4)

	next := s.engine.ApplyRoll(state)

	s.Equal(70, next.BankValue)
	s.Equal(1, next.RollCountThisRound)
	s.Equal(model.EffectAdd70, next.LastRoll.EffectType)
	s.Equal(model.PhaseInRound, next.Phase)
}

func (s *EngineSuite) TestTwoSafeSevensStackToOneForty() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	s.queueDice(3, 4, 5, 2)

	next := s.engine.ApplyRoll(state)
	next = s.engine.ApplyRoll(next)

	s.Equal(140, next.BankValue)
	s.Equal(2, next.RollCountThisRound)
}

func (s *EngineSuite) TestSafeDoublesAddFaceValueOnly() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	s.queueDice(2, 2)

	next := s.engine.ApplyRoll(state)

	s.Equal(4, next.BankValue)
	s.Equal(model.EffectAdd, next.LastRoll.EffectType)
	s.True(next.LastRoll.WasDouble)
}

func (s *EngineSuite) TestSafeSevenNeverBusts() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	s.queueDice(3, 4, 1, 6, 5, 2)

	next := s.engine.ApplyRoll(state)
	next = s.engine.ApplyRoll(next)
	next = s.engine.ApplyRoll(next)

	s.Equal(210, next.BankValue)
	s.Equal(model.PhaseInRound, next.Phase)
}

func (s *EngineSuite) TestHazardDoublesDoubleTheBank() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	// Safe phase builds the bank to 25, then two hazard doubles
	s.queueDice(6, 6, 5, 4, 2, 2, 5, 5, 6, 6)

	next := state
	for i := 0; i < 5; i++ {
		next = s.engine.ApplyRoll(next)
	}

	s.Equal(100, next.BankValue)
	s.Equal(model.EffectDoubleBank, next.LastRoll.EffectType)
	s.Equal(model.PhaseInRound, next.Phase)
}

func (s *EngineSuite) TestHazardNonDoubleAddsSum() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	s.queueDice(6, 5, 6, 5, 6, 5, 6, 3)

	next := state
	for i := 0; i < 4; i++ {
		next = s.engine.ApplyRoll(next)
	}

	s.Equal(42, next.BankValue)
	s.Equal(model.EffectAdd, next.LastRoll.EffectType)
}

func (s *EngineSuite) TestHazardSevenBustsTheRound() {
	state := s.newInRoundGame([]string{"alice", "bob", "carol"}, 10, 0)
	s.queueDice(6, 5, 6, 5, 6, 5, 3, 4)

	next := state
	for i := 0; i < 4; i++ {
		next = s.engine.ApplyRoll(next)
	}

	s.Equal(model.PhaseBust, next.Phase)
	s.Equal(0, next.BankValue)
	s.Equal(s.clock.CurrentTime, next.BustAt)
	for _, p := range next.Players {
		s.True(p.HasBankedThisRound)
		s.False(p.IsCurrentRoller)
		s.Equal(0, p.Score)
	}
}

func (s *EngineSuite) TestBustForfeitsScoresNobodyBanked() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	s.queueDice(3, 4, 5, 2, 6, 6, 3, 4)

	next := state
	for i := 0; i < 4; i++ {
		next = s.engine.ApplyRoll(next)
	}

	s.Equal(model.PhaseBust, next.Phase)
	s.Equal(0, next.Players[0].Score+next.Players[1].Score)
}

func (s *EngineSuite) TestRollAdvancesTurnToNextSeat() {
	state := s.newInRoundGame([]string{"alice", "bob", "carol"}, 10, 0)
	s.queueDice(1, 2)

	next := s.engine.ApplyRoll(state)

	s.Equal(1, next.CurrentRollerIndex())
}

func (s *EngineSuite) TestRollWrapsTurnAroundTheTable() {
	state := s.newInRoundGame([]string{"alice", "bob", "carol"}, 10, 2)
	s.queueDice(1, 2)

	next := s.engine.ApplyRoll(state)

	s.Equal(0, next.CurrentRollerIndex())
}

func (s *EngineSuite) TestRollSkipsBankedSeats() {
	state := s.newInRoundGame([]string{"alice", "bob", "carol"}, 10, 0)
	s.queueDice(1, 2)

	next := s.engine.ApplyBank(state, "player-1")
	next = s.engine.ApplyRoll(next)

	s.Equal(2, next.CurrentRollerIndex())
}

func (s *EngineSuite) TestRollRecordsHistoryEntry() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	s.queueDice(3, 4)

	next := s.engine.ApplyRoll(state)

	s.Require().Len(next.History, 1)
	entry := next.History[0]
	s.Equal(1, entry.RollNumber)
	s.Equal("alice", entry.PlayerNickname)
	s.Equal(3, entry.Die1)
	s.Equal(4, entry.Die2)
	s.Equal("7", entry.Result)
	s.Equal(70, entry.BankAmount)
}

func (s *EngineSuite) TestRollOutsideRoundIsNoOp() {
	s.random.QueueIntn(0)
	state := s.engine.InitGame([]string{"alice", "bob"}, 10)
	s.queueDice(3, 4)

	next := s.engine.ApplyRoll(state)

	s.Same(state, next)
}

func (s *EngineSuite) TestRollDoesNotMutateInput() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	s.queueDice(3, 4)

	s.engine.ApplyRoll(state)

	s.Equal(0, state.BankValue)
	s.Equal(0, state.RollCountThisRound)
	s.Empty(state.History)
}

// ApplyBank tests

func (s *EngineSuite) TestBankCreditsFullBankValue() {
	state := s.newInRoundGame([]string{"alice", "bob", "carol"}, 10, 0)
	s.queueDice(3, 4)

	next := s.engine.ApplyRoll(state)
	next = s.engine.ApplyBank(next, "player-1")

	banker := next.FindPlayer("player-1")
	s.Equal(70, banker.Score)
	s.Equal(70, banker.PointsEarnedThisRound)
	s.True(banker.HasBankedThisRound)
	s.Equal(70, next.BankValue)
	s.Equal("bob", next.LastBankedPlayer)
	s.Equal(s.clock.CurrentTime, next.LastBankedAt)
}

func (s *EngineSuite) TestNonRollerBankKeepsCurrentRoller() {
	state := s.newInRoundGame([]string{"alice", "bob", "carol"}, 10, 0)

	next := s.engine.ApplyBank(state, "player-2")

	s.Equal(0, next.CurrentRollerIndex())
}

func (s *EngineSuite) TestRollerBankPassesTheTurn() {
	state := s.newInRoundGame([]string{"alice", "bob", "carol"}, 10, 0)

	next := s.engine.ApplyBank(state, "player-0")

	s.Equal(1, next.CurrentRollerIndex())
	s.False(next.FindPlayer("player-0").IsCurrentRoller)
}

func (s *EngineSuite) TestFinalBankEndsTheRound() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	s.queueDice(3, 4)

	next := s.engine.ApplyRoll(state)
	next = s.engine.ApplyBank(next, "player-0")
	next = s.engine.ApplyBank(next, "player-1")

	s.Equal(model.PhaseRoundWinner, next.Phase)
	s.Equal(s.clock.CurrentTime, next.RoundWinnerAt)
	s.True(next.AllBanked())
}

func (s *EngineSuite) TestBankingZeroIsAllowed() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)

	next := s.engine.ApplyBank(state, "player-1")

	banker := next.FindPlayer("player-1")
	s.Equal(0, banker.Score)
	s.True(banker.HasBankedThisRound)
	s.Equal(model.PhaseInRound, next.Phase)
}

func (s *EngineSuite) TestBankTwiceIsNoOp() {
	state := s.newInRoundGame([]string{"alice", "bob", "carol"}, 10, 0)

	next := s.engine.ApplyBank(state, "player-1")
	again := s.engine.ApplyBank(next, "player-1")

	s.Same(next, again)
}

func (s *EngineSuite) TestBankUnknownPlayerIsNoOp() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)

	next := s.engine.ApplyBank(state, "player-9")

	s.Same(state, next)
}

func (s *EngineSuite) TestBankDuringBustDisplayIsNoOp() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	s.queueDice(6, 5, 6, 5, 6, 5, 3, 4)

	next := state
	for i := 0; i < 4; i++ {
		next = s.engine.ApplyRoll(next)
	}
	s.Require().Equal(model.PhaseBust, next.Phase)

	after := s.engine.ApplyBank(next, "player-0")
	s.Same(next, after)
}

func (s *EngineSuite) TestBankConservesPoints() {
	state := s.newInRoundGame([]string{"alice", "bob", "carol"}, 10, 0)
	s.queueDice(3, 4, 5, 2)

	next := s.engine.ApplyRoll(state)
	next = s.engine.ApplyBank(next, "player-1")
	next = s.engine.ApplyRoll(next)
	next = s.engine.ApplyBank(next, "player-0")
	next = s.engine.ApplyBank(next, "player-2")

	// First banker took 70, the other two took 140 each
	total := 0
	for _, p := range next.Players {
		total += p.Score
	}
	s.Equal(350, total)
	s.Equal(70, next.FindPlayer("player-1").Score)
	s.Equal(140, next.FindPlayer("player-0").Score)
	s.Equal(140, next.FindPlayer("player-2").Score)
}

// Lazy transition tests

func (s *EngineSuite) bustedGame() *model.GameState {
	state := s.newInRoundGame([]string{"alice", "bob"}, 2, 0)
	s.queueDice(6, 5, 6, 5, 6, 5, 3, 4)
	next := state
	for i := 0; i < 4; i++ {
		next = s.engine.ApplyRoll(next)
	}
	s.Require().Equal(model.PhaseBust, next.Phase)
	return next
}

func (s *EngineSuite) TestBustTransitionWaitsOutTheDelay() {
	state := s.bustedGame()

	s.clock.Advance(BustDelay - time.Millisecond)
	next := s.engine.CheckBustTransition(state, BustDelay)

	s.Same(state, next)
}

func (s *EngineSuite) TestBustTransitionMovesToRoundWinner() {
	state := s.bustedGame()

	s.clock.Advance(BustDelay)
	next := s.engine.CheckBustTransition(state, BustDelay)

	s.Equal(model.PhaseRoundWinner, next.Phase)
	s.Equal(s.clock.CurrentTime, next.RoundWinnerAt)
}

func (s *EngineSuite) TestBustTransitionIsIdempotent() {
	state := s.bustedGame()

	s.clock.Advance(BustDelay)
	next := s.engine.CheckBustTransition(state, BustDelay)
	again := s.engine.CheckBustTransition(next, BustDelay)

	s.Same(next, again)
}

func (s *EngineSuite) TestRoundWinnerTransitionWaitsOutTheDelay() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	next := s.engine.ApplyBank(state, "player-0")
	next = s.engine.ApplyBank(next, "player-1")
	s.Require().Equal(model.PhaseRoundWinner, next.Phase)

	s.clock.Advance(RoundWinnerDelay - time.Millisecond)
	after := s.engine.CheckRoundWinnerTransition(next, RoundWinnerDelay)

	s.Same(next, after)
}

func (s *EngineSuite) TestRoundWinnerTransitionStartsNextRound() {
	state := s.newInRoundGame([]string{"alice", "bob", "carol"}, 10, 0)
	s.queueDice(3, 4)
	next := s.engine.ApplyRoll(state)
	next = s.engine.ApplyBank(next, "player-1")
	next = s.engine.ApplyBank(next, "player-0")
	next = s.engine.ApplyBank(next, "player-2")
	s.Require().Equal(model.PhaseRoundWinner, next.Phase)

	s.clock.Advance(RoundWinnerDelay)
	after := s.engine.CheckRoundWinnerTransition(next, RoundWinnerDelay)

	s.Equal(model.PhaseInRound, after.Phase)
	s.Equal(2, after.RoundNumber)
	s.Equal(0, after.BankValue)
	s.Equal(0, after.RollCountThisRound)
	s.Empty(after.History)
	s.Nil(after.LastRoll)
	s.Len(after.RoundHistory, 1)
	for _, p := range after.Players {
		s.False(p.HasBankedThisRound)
		s.Equal(0, p.PointsEarnedThisRound)
	}
	// Scores carry across rounds
	s.Equal(70, after.FindPlayer("player-1").Score)
}

// Round lifecycle tests

func (s *EngineSuite) TestNextRoundRollerFollowsLastActiveRoller() {
	// carol (seat 2) is the last to bank while holding the dice, so
	// alice (seat 0) opens the next round
	state := s.newInRoundGame([]string{"alice", "bob", "carol"}, 10, 1)
	next := s.engine.ApplyBank(state, "player-1")
	next = s.engine.ApplyBank(next, "player-0")
	next = s.engine.ApplyBank(next, "player-2")
	s.Require().Equal(2, next.LastRollerIndex)

	after := s.engine.StartNewRound(next)

	s.Equal(0, after.CurrentRollerIndex())
}

func (s *EngineSuite) TestNextRoundRollerAfterBust() {
	// bob (seat 1) busts, so carol (seat 2) opens the next round
	state := s.newInRoundGame([]string{"alice", "bob", "carol"}, 10, 1)
	s.queueDice(6, 5, 6, 5, 6, 5, 3, 4)
	next := state
	for i := 0; i < 4; i++ {
		next = s.engine.ApplyRoll(next)
	}
	s.Require().Equal(model.PhaseBust, next.Phase)

	after := s.engine.StartNewRound(next)

	s.Equal(2, after.CurrentRollerIndex())
}

func (s *EngineSuite) TestFinalRoundFinishesTheGame() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 1, 0)
	s.queueDice(3, 4)
	next := s.engine.ApplyRoll(state)
	next = s.engine.ApplyBank(next, "player-0")
	next = s.engine.ApplyBank(next, "player-1")

	after := s.engine.StartNewRound(next)

	s.Equal(model.PhaseFinished, after.Phase)
	s.Equal(1, after.RoundNumber)
	s.Len(after.RoundHistory, 1)
	// Final round details stay visible
	s.Equal(70, after.BankValue)
	s.Len(after.History, 1)
}

func (s *EngineSuite) TestRollAfterGameEndIsNoOp() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 1, 0)
	next := s.engine.ApplyBank(state, "player-0")
	next = s.engine.ApplyBank(next, "player-1")
	next = s.engine.StartNewRound(next)
	s.Require().Equal(model.PhaseFinished, next.Phase)

	s.queueDice(3, 4)
	s.Same(next, s.engine.ApplyRoll(next))
	s.Same(next, s.engine.ApplyBank(next, "player-0"))
}

func (s *EngineSuite) TestRoundSummaryTieGoesToFirstSeat() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	s.queueDice(3, 4)
	next := s.engine.ApplyRoll(state)
	next = s.engine.ApplyBank(next, "player-1")
	next = s.engine.ApplyBank(next, "player-0")

	after := s.engine.StartNewRound(next)

	s.Require().Len(after.RoundHistory, 1)
	s.Equal("alice", after.RoundHistory[0].TopPlayer)
	s.Equal(70, after.RoundHistory[0].TopPoints)
}

// GetWinners tests

func (s *EngineSuite) TestGetWinnersReturnsHighestScorer() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	state.Players[0].Score = 100
	state.Players[1].Score = 80

	winners := s.engine.GetWinners(state)

	s.Require().Len(winners, 1)
	s.Equal("alice", winners[0].Nickname)
}

func (s *EngineSuite) TestGetWinnersPreservesTies() {
	state := s.newInRoundGame([]string{"alice", "bob", "carol"}, 10, 0)
	state.Players[0].Score = 100
	state.Players[1].Score = 80
	state.Players[2].Score = 100

	winners := s.engine.GetWinners(state)

	s.Require().Len(winners, 2)
	s.Equal("alice", winners[0].Nickname)
	s.Equal("carol", winners[1].Nickname)
}

func (s *EngineSuite) TestGetWinnersEmptyGame() {
	s.Nil(s.engine.GetWinners(&model.GameState{}))
}

// Stats tests

func (s *EngineSuite) TestStatsCountRollsAndHazards() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	// alice: safe; bob: safe; alice: safe; bob: hazard doubles; alice: hazard 7
	s.queueDice(6, 5, 6, 5, 6, 5, 2, 2, 3, 4)

	next := state
	for i := 0; i < 5; i++ {
		next = s.engine.ApplyRoll(next)
	}

	s.Equal(3, next.Stats.TotalRolls["player-0"])
	s.Equal(2, next.Stats.TotalRolls["player-1"])
	s.Equal(1, next.Stats.HazardRolls["player-0"])
	s.Equal(1, next.Stats.HazardRolls["player-1"])
	s.Equal(1, next.Stats.HazardDoubles["player-1"])
	s.Equal(0, next.Stats.HazardDoubles["player-0"])
	s.Equal(1, next.Stats.Busts["player-0"])
	s.Equal(0, next.Stats.Busts["player-1"])
}

func (s *EngineSuite) TestStatsCountEarlyBanks() {
	state := s.newInRoundGame([]string{"alice", "bob", "carol"}, 10, 0)
	s.queueDice(3, 4, 6, 5, 6, 5, 6, 2)

	next := s.engine.ApplyRoll(state)
	next = s.engine.ApplyBank(next, "player-1")
	next = s.engine.ApplyRoll(next)
	next = s.engine.ApplyRoll(next)
	next = s.engine.ApplyRoll(next)
	next = s.engine.ApplyBank(next, "player-2")

	s.Equal(1, next.Stats.EarlyBanks["player-1"])
	s.Equal(0, next.Stats.EarlyBanks["player-2"])
}

func (s *EngineSuite) TestStatsTrackBiggestRound() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	s.queueDice(3, 4)

	next := s.engine.ApplyRoll(state)
	next = s.engine.ApplyBank(next, "player-1")

	s.Require().NotNil(next.Stats.BiggestRound)
	s.Equal("bob", next.Stats.BiggestRound.Player)
	s.Equal(70, next.Stats.BiggestRound.Points)
	s.Equal(1, next.Stats.BiggestRound.Round)
}

func (s *EngineSuite) TestStatsTrackComebackKing() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	state.Players[0].Score = 100
	state.Players[1].Score = 40
	state.BankValue = 80
	state.RollCountThisRound = 4

	next := s.engine.ApplyBank(state, "player-1")

	s.Require().NotNil(next.Stats.ComebackKing)
	s.Equal("bob", next.Stats.ComebackKing.Player)
	s.Equal(60, next.Stats.ComebackKing.Deficit)
}

func (s *EngineSuite) TestStatsNoComebackWhenStillBehind() {
	state := s.newInRoundGame([]string{"alice", "bob"}, 10, 0)
	state.Players[0].Score = 100
	state.Players[1].Score = 40
	state.BankValue = 10
	state.RollCountThisRound = 4

	next := s.engine.ApplyBank(state, "player-1")

	s.Nil(next.Stats.ComebackKing)
}
