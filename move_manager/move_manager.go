package move_manager

import (
	"github.com/weedbox/pokerdirector/seat_manager"
	"github.com/weedbox/syncsaga"
)

func NewMoveManager(options MoveOption) MoveManager {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	onMovesConfirmed := options.OnMovesConfirmed
	if onMovesConfirmed == nil {
		onMovesConfirmed = func(MoveState) {}
	}

	return &moveManager{
		onMovesConfirmed: onMovesConfirmed,
		rg:               syncsaga.NewReadyGroup(),
		state: &MoveState{
			Timeout:      timeout,
			Participants: make(map[string]*MoveParticipant),
		},
	}
}

/*
Setup 開始新一輪換桌確認
  - 被移動的玩家需要確認新座位
  - 逾時未確認者自動確認
  - 全部確認後觸發 OnMovesConfirmed
*/
func (m *moveManager) Setup(moves []seat_manager.Move) {
	m.rg.Stop()

	m.mu.Lock()
	m.state.Round++
	m.state.Participants = make(map[string]*MoveParticipant)
	round := m.state.Round

	if len(moves) == 0 {
		m.state.IsPending = false
		state := m.cloneState()
		m.mu.Unlock()
		m.onMovesConfirmed(state)
		return
	}

	m.state.IsPending = true
	m.rg.SetTimeoutInterval(m.state.Timeout)
	m.rg.OnTimeout(func(rg *syncsaga.ReadyGroup) {
		// Auto confirm by default
		for idx, isReady := range rg.GetParticipantStates() {
			if !isReady {
				rg.Ready(idx)
			}
		}
	})
	m.rg.OnCompleted(func(rg *syncsaga.ReadyGroup) {
		m.readyGroupOnCompleted(round)
	})

	m.rg.ResetParticipants()
	for idx, move := range moves {
		m.state.Participants[move.PlayerID] = &MoveParticipant{
			PlayerID: move.PlayerID,
			Index:    idx,
			Move:     move,
		}
		m.rg.Add(int64(idx), false)
	}
	m.mu.Unlock()

	m.rg.Start()
}

func (m *moveManager) Confirm(playerID string) error {
	m.mu.Lock()
	participant, exist := m.state.Participants[playerID]
	if !exist || !m.state.IsPending {
		m.mu.Unlock()
		return ErrParticipantNotFound
	}
	participant.IsConfirmed = true
	idx := int64(participant.Index)
	m.mu.Unlock()

	m.rg.Ready(idx)
	return nil
}

func (m *moveManager) GetState() MoveState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cloneState()
}

func (m *moveManager) IsPending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.IsPending
}

func (m *moveManager) Stop() {
	m.rg.Stop()

	m.mu.Lock()
	m.state.IsPending = false
	m.mu.Unlock()
}
