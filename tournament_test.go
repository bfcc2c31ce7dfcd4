package pokerdirector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/pokerdirector/blind"
	"github.com/weedbox/pokerdirector/payout"
)

func TestNewDefaultSettings(t *testing.T) {
	settings := NewDefaultSettings()

	assert.NotEmpty(t, settings.Levels)
	assert.Greater(t, settings.StartingChips, int64(0))
	assert.Equal(t, settings.StartingChips, settings.RebuyChips)
	assert.Equal(t, payout.HouseFee_None, settings.HouseFeeType)
	assert.Equal(t, 9, settings.MaxPlayersPerTable)
	valid, _ := payout.ValidateStructure(settings.PayoutStructure)
	assert.True(t, valid)
}

func TestNewTournamentState(t *testing.T) {
	settings := newTestSettings()
	state := NewTournamentState("T1", "owner", settings)

	assert.Equal(t, "T1", state.ID)
	assert.False(t, state.IsRunning)
	assert.Equal(t, 0, state.CurrentLevel)
	assert.Equal(t, 60, state.TimeRemaining)
	assert.NotNil(t, state.Players)
	assert.NotNil(t, state.Tables)

	// settings are copied
	settings.Levels[0].SmallBlind = 1
	assert.Equal(t, int64(25), state.Settings.Levels[0].SmallBlind)
}

func TestTournamentState_CheckOwner(t *testing.T) {
	state := NewTournamentState("T1", "owner", newTestSettings())
	assert.NoError(t, state.CheckOwner("owner"))
	assert.ErrorIs(t, state.CheckOwner("someone"), ErrNotOwner)

	state.OwnerID = ""
	assert.NoError(t, state.CheckOwner("someone"))
}

func TestTournamentState_Stats(t *testing.T) {
	state := newTestState(t, "A", "B", "C", "D")
	state = mustReduce(t, state, ActionType_MarkEliminated, PlayerParam{PlayerID: "D"})
	state = mustReduce(t, state, ActionType_AddRebuy, PlayerParam{PlayerID: "D"})
	state = mustReduce(t, state, ActionType_AddAddOn, PlayerParam{PlayerID: "A"})
	state = mustReduce(t, state, ActionType_MarkEliminated, PlayerParam{PlayerID: "B"})

	assert.Len(t, state.ActivePlayers(), 3)
	assert.Len(t, state.EliminatedPlayers(), 1)
	assert.Equal(t, 1, state.TotalRebuys())
	assert.Equal(t, 1, state.TotalAddOns())
	assert.Equal(t, int64(35000), state.TotalChips())
	assert.Equal(t, int64(35000/3), state.AverageStack())
	assert.Equal(t, 500.0, state.TotalPrizePool)
}

func TestTournamentState_Standings(t *testing.T) {
	state := newTestState(t, "A", "B", "C", "D")
	state = mustReduce(t, state, ActionType_MarkEliminated, PlayerParam{PlayerID: "C"})
	state = mustReduce(t, state, ActionType_MarkEliminated, PlayerParam{PlayerID: "A"})
	state = mustReduce(t, state, ActionType_MarkEliminated, PlayerParam{PlayerID: "D"})

	standings := state.Standings()
	require.Len(t, standings, 4)

	order := make([]string, 0, len(standings))
	for idx, s := range standings {
		assert.Equal(t, idx+1, s.Position)
		order = append(order, s.PlayerID)
	}
	assert.Equal(t, []string{"B", "D", "A", "C"}, order)

	// 400 net: 70% / 30%
	assert.Equal(t, 280.0, standings[0].Prize)
	assert.Equal(t, 120.0, standings[1].Prize)
	assert.Equal(t, 0.0, standings[2].Prize)
}

func TestTournamentState_StandingsAfterRebuy(t *testing.T) {
	state := newTestState(t, "A", "B", "C")
	state = mustReduce(t, state, ActionType_MarkEliminated, PlayerParam{PlayerID: "A"})
	state = mustReduce(t, state, ActionType_AddRebuy, PlayerParam{PlayerID: "A"})
	state = mustReduce(t, state, ActionType_MarkEliminated, PlayerParam{PlayerID: "B"})
	state = mustReduce(t, state, ActionType_MarkEliminated, PlayerParam{PlayerID: "A"})

	standings := state.Standings()
	require.Len(t, standings, 3)
	assert.Equal(t, "C", standings[0].PlayerID)
	assert.Equal(t, "A", standings[1].PlayerID)
	assert.Equal(t, 2, standings[1].Position)
	assert.Equal(t, "B", standings[2].PlayerID)
	assert.Equal(t, 3, standings[2].Position)
}

func TestPlayer_FinishingPosition(t *testing.T) {
	p := Player{ID: "A"}
	assert.Equal(t, UnsetValue, p.FinishingPosition(10))

	p.EliminationPosition = intPtr(1)
	assert.Equal(t, 10, p.FinishingPosition(10))

	p.EliminationPosition = intPtr(9)
	assert.Equal(t, 2, p.FinishingPosition(10))
}

func TestTournamentState_LevelEndAts(t *testing.T) {
	state := newTestState(t)
	state.TimeRemaining = 30

	endAts := state.LevelEndAts(1000)
	require.Len(t, endAts, 4)
	assert.Equal(t, int64(1030), endAts[0])
	assert.Equal(t, int64(1090), endAts[1])
	assert.Equal(t, int64(1210), endAts[3])
}

func TestSettingsPatch_Apply(t *testing.T) {
	settings := newTestSettings()

	maxRebuys := 5
	levels := []blind.Level{
		{Level: 7, SmallBlind: 50, BigBlind: 100, DurationMins: 15},
		{Level: 9, SmallBlind: 100, BigBlind: 200, DurationMins: 15},
	}
	merged := SettingsPatch{
		MaxRebuys: &maxRebuys,
		Levels:    &levels,
	}.Apply(settings)

	assert.Equal(t, 5, merged.MaxRebuys)
	assert.Equal(t, settings.BuyInAmount, merged.BuyInAmount)
	require.Len(t, merged.Levels, 2)
	assert.Equal(t, 1, merged.Levels[0].Level)
	assert.Equal(t, 2, merged.Levels[1].Level)

	// source untouched
	assert.Equal(t, 2, settings.MaxRebuys)
	assert.Len(t, settings.Levels, 4)
}
