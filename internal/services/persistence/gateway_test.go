package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/timeu6/internal/dependencies/mocks"
	"github.com/mcoot/timeu6/internal/matchstate"
	"github.com/mcoot/timeu6/internal/model"
	"github.com/mcoot/timeu6/internal/services/persistence"
	"github.com/mcoot/timeu6/internal/testutil"
)

type GatewaySuite struct {
	suite.Suite
	store   *mocks.FailingStore
	live    *model.MatchState
	handle  *matchstate.Handle
	gateway *persistence.Gateway
	ctx     context.Context
}

func TestGatewaySuite(t *testing.T) {
	suite.Run(t, new(GatewaySuite))
}

func (s *GatewaySuite) SetupTest() {
	s.store = mocks.NewFailingStore()
	s.live = model.NewMatchState(model.DefaultMatchDuration)
	s.handle = matchstate.New(s.live)
	s.gateway = persistence.NewGateway(s.store, s.handle, model.DefaultMatchDuration, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *GatewaySuite) midSessionState() *model.MatchState {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	session := start.Add(4 * time.Minute)

	state := model.NewMatchState(model.DefaultMatchDuration)
	state.MatchStartTime = &start
	state.IsMatchActive = true
	state.AllPlayers = []*model.Player{
		{ID: "p-1", Name: "Alice", Number: 1, IsPresent: true, IsPlaying: true, PlayingTime: 2 * time.Minute, PlayingStartTime: &session},
		{ID: "p-2", Name: "Bob", Number: 2, IsPresent: true},
	}
	return state
}

func (s *GatewaySuite) TestSaveThenLoadRoundTrips() {
	state := s.midSessionState()

	s.Require().NoError(s.gateway.Save(s.ctx, state))

	s.Equal(state, s.gateway.Load(s.ctx))
}

func (s *GatewaySuite) TestSaveReturnsStoreError() {
	s.store.FailSet = true

	err := s.gateway.Save(s.ctx, s.midSessionState())
	s.ErrorIs(err, mocks.ErrStoreUnavailable)
}

func (s *GatewaySuite) TestLoadWithoutDataReturnsFreshState() {
	state := s.gateway.Load(s.ctx)

	s.Empty(state.AllPlayers)
	s.Nil(state.MatchStartTime)
	s.False(state.IsMatchActive)
	s.Equal(model.DefaultMatchDuration, state.MatchDuration)
}

func (s *GatewaySuite) TestLoadWithCorruptDataReturnsFreshState() {
	_ = s.store.SetItem(s.ctx, persistence.MatchStateKey, "{corrupt")

	state := s.gateway.Load(s.ctx)
	s.Empty(state.AllPlayers)
	s.Equal(model.DefaultMatchDuration, state.MatchDuration)
}

func (s *GatewaySuite) TestLoadWithReadErrorReturnsFreshState() {
	_ = s.gateway.Save(s.ctx, s.midSessionState())
	s.store.FailGet = true

	state := s.gateway.Load(s.ctx)
	s.Empty(state.AllPlayers)
}

func (s *GatewaySuite) TestExists() {
	s.False(s.gateway.Exists(s.ctx))

	_ = s.store.SetItem(s.ctx, persistence.MatchStateKey, "")
	s.False(s.gateway.Exists(s.ctx), "empty value should not count")

	_ = s.gateway.Save(s.ctx, s.midSessionState())
	s.True(s.gateway.Exists(s.ctx))

	s.store.FailGet = true
	s.False(s.gateway.Exists(s.ctx))
}

func (s *GatewaySuite) TestRestoreCopiesIntoLiveAggregate() {
	saved := s.midSessionState()
	_ = s.gateway.Save(s.ctx, saved)

	s.True(s.gateway.Restore(s.ctx))

	// The pointer handed out at wiring time sees the restored data
	s.Len(s.live.AllPlayers, 2)
	s.True(s.live.IsMatchActive)
	s.Equal(saved, s.handle.Snapshot())
}

func (s *GatewaySuite) TestRestoreWithoutDataLeavesStateAlone() {
	s.live.AllPlayers = append(s.live.AllPlayers, model.NewPlayer("p-9", "Zed", 9))

	s.False(s.gateway.Restore(s.ctx))
	s.Len(s.live.AllPlayers, 1)
}

func (s *GatewaySuite) TestClearRemovesKeyAndResetsLiveState() {
	_ = s.gateway.Save(s.ctx, s.midSessionState())
	s.gateway.Restore(s.ctx)

	s.Require().NoError(s.gateway.Clear(s.ctx))

	s.False(s.gateway.Exists(s.ctx))
	s.Empty(s.live.AllPlayers)
	s.Nil(s.live.MatchStartTime)
	s.False(s.live.IsMatchActive)
	s.Equal(model.DefaultMatchDuration, s.live.MatchDuration)
}

func (s *GatewaySuite) TestClearThenLoadYieldsEmptyDefaults() {
	_ = s.gateway.Save(s.ctx, s.midSessionState())
	s.Require().NoError(s.gateway.Clear(s.ctx))

	state := s.gateway.Load(s.ctx)
	s.Empty(state.AllPlayers)
	s.Nil(state.MatchStartTime)
	s.False(state.IsMatchActive)
	s.Equal(model.DefaultMatchDuration, state.MatchDuration)
}

func (s *GatewaySuite) TestClearSurfacesStoreError() {
	s.live.AllPlayers = append(s.live.AllPlayers, model.NewPlayer("p-9", "Zed", 9))
	s.store.FailRemove = true

	err := s.gateway.Clear(s.ctx)
	s.ErrorIs(err, mocks.ErrStoreUnavailable)
	s.Len(s.live.AllPlayers, 1, "live state untouched when clear fails")
}
