package pokerdirector

import (
	"sort"

	"github.com/weedbox/pokerdirector/seat_manager"
)

// dispatch must be called with lock held.
func (d *director) dispatch(action Action) (TournamentState, []seat_manager.Move, error) {
	if d.isClosed {
		return d.state.Clone(), nil, ErrDirectorClosed
	}

	playerID := actionPlayerID(action)
	prev := d.state

	next, err := Reduce(prev, action)
	if err != nil {
		d.notify(NotificationLevel_Error, err.Error())
		d.emitErrorEvent(string(action.Type), playerID, err)
		return d.state.Clone(), nil, err
	}

	d.state = next
	d.syncCountdown()
	d.emitSoundCues(action, prev, next)

	if action.Type != ActionType_Tick {
		d.logger.Info("action dispatched", "tournament", next.ID, "action", action.Type, "player", playerID)
		d.scheduleAutosave()
	}
	d.emitEvent(DirectorEvent_Dispatched, playerID)

	var moves []seat_manager.Move
	switch action.Type {
	case ActionType_BalanceTables, ActionType_BreakTable:
		moves = seat_manager.DiffMoves(prev.Tables, next.Tables)
		if len(moves) > 0 {
			d.emitEvent(DirectorEvent_SeatsChanged, "")
		}
	}

	return d.state.Clone(), moves, nil
}

func (d *director) syncCountdown() {
	if d.state.IsRunning {
		d.countdown.Start()
		return
	}
	d.countdown.Stop()
}

/*
emitSoundCues 依狀態變化發出音效提示
  - 級別變動: 進入休息時間為 BreakStarted，否則為 LevelChanged
  - 本級別最後幾秒: FinalSeconds
  - 最後一個級別結束或主動結束賽事: TournamentEnded
*/
func (d *director) emitSoundCues(action Action, prev, next TournamentState) {
	switch action.Type {
	case ActionType_End:
		d.emitSoundCue(SoundCue_TournamentEnded)
		d.notify(NotificationLevel_Info, "Tournament ended")
		return
	case ActionType_Stop,
		ActionType_ResetTournament,
		ActionType_CreateTournament,
		ActionType_LoadTournament:
		return
	}

	if action.Type == ActionType_Tick && prev.IsRunning && !next.IsRunning {
		d.emitSoundCue(SoundCue_TournamentEnded)
		d.notify(NotificationLevel_Info, "Tournament ended")
		return
	}

	if next.CurrentLevel != prev.CurrentLevel {
		if next.IsBreaking() {
			d.emitSoundCue(SoundCue_BreakStarted)
			return
		}
		d.emitSoundCue(SoundCue_LevelChanged)
		return
	}

	if action.Type == ActionType_Tick &&
		next.TimeRemaining >= 1 &&
		next.TimeRemaining <= d.options.FinalSecondsWarning {
		d.emitSoundCue(SoundCue_FinalSeconds)
	}
}

func actionPlayerID(action Action) string {
	switch p := action.Param.(type) {
	case PlayerParam:
		return p.PlayerID
	case Player:
		return p.ID
	}
	return ""
}

func sortMoves(moves []seat_manager.Move) {
	sort.Slice(moves, func(i, j int) bool {
		if moves[i].FromTable != moves[j].FromTable {
			return moves[i].FromTable < moves[j].FromTable
		}
		return moves[i].FromSeat > moves[j].FromSeat
	})
}
