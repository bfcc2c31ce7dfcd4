package move_manager

func (m *moveManager) readyGroupOnCompleted(round int) {
	m.mu.Lock()
	if round != m.state.Round || !m.state.IsPending {
		m.mu.Unlock()
		return
	}

	for _, participant := range m.state.Participants {
		participant.IsConfirmed = true
	}
	m.state.IsPending = false
	state := m.cloneState()
	m.mu.Unlock()

	m.onMovesConfirmed(state)
}

func (m *moveManager) cloneState() MoveState {
	state := MoveState{
		Timeout:      m.state.Timeout,
		Round:        m.state.Round,
		IsPending:    m.state.IsPending,
		Participants: make(map[string]*MoveParticipant, len(m.state.Participants)),
	}
	for id, p := range m.state.Participants {
		cp := *p
		state.Participants[id] = &cp
	}
	return state
}
