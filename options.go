package pokerdirector

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/weedbox/pokerdirector/seat_manager"
)

type DirectorCallbacks struct {
	OnStateUpdated   func(s TournamentState)
	OnErrorUpdated   func(s TournamentState, err error)
	OnNotification   func(n Notification)
	OnSoundCue       func(cue SoundCue)
	OnTablesBalanced func(s TournamentState, moves []seat_manager.Move)
}

func NewDirectorCallbacks() *DirectorCallbacks {
	return &DirectorCallbacks{
		OnStateUpdated:   func(TournamentState) {},
		OnErrorUpdated:   func(TournamentState, error) {},
		OnNotification:   func(Notification) {},
		OnSoundCue:       func(SoundCue) {},
		OnTablesBalanced: func(TournamentState, []seat_manager.Move) {},
	}
}

type DirectorOptions struct {
	AutosaveInterval    int         // seconds, 0 disables autosave
	FinalSecondsWarning int         // seconds
	SeatMoveTimeout     int         // seconds
	Logger              *log.Logger // nil means discard
}

func NewDirectorOptions() *DirectorOptions {
	return &DirectorOptions{
		AutosaveInterval:    0,
		FinalSecondsWarning: DefaultFinalSecondsWarning,
		SeatMoveTimeout:     DefaultSeatMoveTimeout,
		Logger:              log.New(io.Discard),
	}
}
