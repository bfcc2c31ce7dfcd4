package pokerdirector

import (
	"context"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/pokerdirector/store"
)

func TestManager_CreateTournament(t *testing.T) {
	m := NewManager(nil, WithManagerClock(quartz.NewMock(t)))
	defer m.Reset()

	state, err := m.CreateTournament("owner", newTestSettings(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, state.ID)
	assert.Equal(t, "owner", state.OwnerID)

	d, err := m.GetDirector(state.ID)
	require.NoError(t, err)
	assert.Equal(t, state.ID, d.GetState().ID)

	_, err = m.GetDirector("missing")
	assert.ErrorIs(t, err, ErrManagerTournamentNotFound)
}

func TestManager_Ownership(t *testing.T) {
	m := NewManager(nil, WithManagerClock(quartz.NewMock(t)))
	defer m.Reset()

	state, err := m.CreateTournament("owner", newTestSettings(), nil)
	require.NoError(t, err)

	_, err = m.Dispatch("owner", state.ID, NewAction(ActionType_AddPlayer, Player{ID: "A"}))
	require.NoError(t, err)

	_, err = m.Dispatch("intruder", state.ID, NewAction(ActionType_AddPlayer, Player{ID: "B"}))
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = m.GetTournament("intruder", state.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	current, err := m.GetTournament("owner", state.ID)
	require.NoError(t, err)
	assert.Len(t, current.Players, 1)
}

func TestManager_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	m := NewManager(nil, WithManagerClock(quartz.NewMock(t)), WithManagerStore(s))
	defer m.Reset()

	state, err := m.CreateTournament("owner", newTestSettings(), nil)
	require.NoError(t, err)
	_, err = m.Dispatch("owner", state.ID, NewAction(ActionType_AddPlayer, Player{ID: "A"}))
	require.NoError(t, err)
	require.NoError(t, m.SaveTournament(ctx, "owner", state.ID))

	require.NoError(t, m.CloseTournament(state.ID))
	_, err = m.GetDirector(state.ID)
	assert.ErrorIs(t, err, ErrManagerTournamentNotFound)

	_, err = m.LoadTournament(ctx, "intruder", state.ID, nil)
	assert.ErrorIs(t, err, ErrNotOwner)

	loaded, err := m.LoadTournament(ctx, "owner", state.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, state.ID, loaded.ID)
	assert.Len(t, loaded.Players, 1)

	// loaded tournaments update their record
	_, err = m.Dispatch("owner", state.ID, NewAction(ActionType_AddPlayer, Player{ID: "B"}))
	require.NoError(t, err)
	require.NoError(t, m.SaveTournament(ctx, "owner", state.ID))

	rec, err := s.Get(ctx, state.ID)
	require.NoError(t, err)
	assert.Contains(t, rec.Players, `"id":"B"`)

	_, err = m.LoadTournament(ctx, "owner", "missing", nil)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestManager_LoadWithoutStore(t *testing.T) {
	m := NewManager(nil)
	_, err := m.LoadTournament(context.Background(), "owner", "missing", nil)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
