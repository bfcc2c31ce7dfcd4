package move_manager

import (
	"errors"
	"sync"

	"github.com/weedbox/pokerdirector/seat_manager"
	"github.com/weedbox/syncsaga"
)

var (
	ErrParticipantNotFound = errors.New("move_manager: participant not found")
)

const DefaultTimeout = 60

type MoveManager interface {
	Setup(moves []seat_manager.Move)
	Confirm(playerID string) error
	GetState() MoveState
	IsPending() bool
	Stop()
}

type moveManager struct {
	mu               sync.Mutex
	onMovesConfirmed func(state MoveState)
	rg               *syncsaga.ReadyGroup
	state            *MoveState
}

type MoveOption struct {
	Timeout          int // seconds
	OnMovesConfirmed func(state MoveState)
}

type MoveState struct {
	Timeout      int                         `json:"timeout"`
	Round        int                         `json:"round"`
	IsPending    bool                        `json:"is_pending"`
	Participants map[string]*MoveParticipant `json:"participants"` // key: player_id
}

type MoveParticipant struct {
	PlayerID    string            `json:"player_id"`
	Index       int               `json:"index"`
	Move        seat_manager.Move `json:"move"`
	IsConfirmed bool              `json:"is_confirmed"`
}
