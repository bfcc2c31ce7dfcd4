package pokerdirector

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/weedbox/pokerdirector/store"
)

var (
	ErrManagerTournamentNotFound = errors.New("manager: tournament not found")
)

type Manager interface {
	Reset()

	// Director Actions
	GetDirector(tournamentID string) (Director, error)
	CreateTournament(ownerID string, settings TournamentSettings, callbacks *DirectorCallbacks) (TournamentState, error)
	LoadTournament(ctx context.Context, ownerID, tournamentID string, callbacks *DirectorCallbacks) (TournamentState, error)
	SaveTournament(ctx context.Context, ownerID, tournamentID string) error
	CloseTournament(tournamentID string) error

	// Tournament Actions
	GetTournament(ownerID, tournamentID string) (TournamentState, error)
	Dispatch(ownerID, tournamentID string, action Action) (TournamentState, error)
}

type ManagerOpt func(*manager)

type manager struct {
	directors sync.Map
	options   *DirectorOptions
	store     store.Store
	clock     quartz.Clock
	logger    *log.Logger
}

func NewManager(options *DirectorOptions, opts ...ManagerOpt) Manager {
	if options == nil {
		options = NewDirectorOptions()
	}

	m := &manager{
		directors: sync.Map{},
		options:   options,
		clock:     quartz.NewReal(),
		logger:    options.Logger,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func WithManagerStore(s store.Store) ManagerOpt {
	return func(m *manager) {
		m.store = s
	}
}

func WithManagerClock(clock quartz.Clock) ManagerOpt {
	return func(m *manager) {
		m.clock = clock
	}
}

func (m *manager) Reset() {
	m.directors.Range(func(key, value interface{}) bool {
		value.(Director).Close()
		return true
	})
	m.directors = sync.Map{}
}

func (m *manager) GetDirector(tournamentID string) (Director, error) {
	d, exist := m.directors.Load(tournamentID)
	if !exist {
		return nil, ErrManagerTournamentNotFound
	}
	return d.(Director), nil
}

func (m *manager) CreateTournament(ownerID string, settings TournamentSettings, callbacks *DirectorCallbacks) (TournamentState, error) {
	state := NewTournamentState(uuid.New().String(), ownerID, settings)

	d := m.newDirector(state, callbacks)
	created, err := d.Dispatch(NewAction(ActionType_CreateTournament, state))
	if err != nil {
		d.Close()
		return TournamentState{}, err
	}

	m.directors.Store(created.ID, d)
	if m.logger != nil {
		m.logger.Info("tournament created", "tournament", created.ID, "owner", ownerID)
	}
	return created, nil
}

/*
LoadTournament 從儲存層讀取賽事
  - 已在記憶體中的賽事直接回傳
  - 只有建立者可以讀取
*/
func (m *manager) LoadTournament(ctx context.Context, ownerID, tournamentID string, callbacks *DirectorCallbacks) (TournamentState, error) {
	if d, err := m.GetDirector(tournamentID); err == nil {
		state := d.GetState()
		if err := state.CheckOwner(ownerID); err != nil {
			return TournamentState{}, err
		}
		return state, nil
	}

	if m.store == nil {
		return TournamentState{}, ErrStoreUnavailable
	}

	rec, err := m.store.Get(ctx, tournamentID)
	if err != nil {
		return TournamentState{}, err
	}
	if err := store.CheckOwner(rec, ownerID); err != nil {
		return TournamentState{}, ErrNotOwner
	}

	state, err := DecodeRecord(*rec)
	if err != nil {
		return TournamentState{}, err
	}

	d := m.newDirector(state, callbacks, WithPersisted())
	actual, loaded := m.directors.LoadOrStore(tournamentID, d)
	if loaded {
		d.Close()
	}
	return actual.(Director).GetState(), nil
}

func (m *manager) SaveTournament(ctx context.Context, ownerID, tournamentID string) error {
	d, err := m.ownedDirector(ownerID, tournamentID)
	if err != nil {
		return err
	}
	return d.Save(ctx)
}

func (m *manager) CloseTournament(tournamentID string) error {
	d, err := m.GetDirector(tournamentID)
	if err != nil {
		return err
	}

	d.Close()
	m.directors.Delete(tournamentID)
	return nil
}

func (m *manager) GetTournament(ownerID, tournamentID string) (TournamentState, error) {
	d, err := m.ownedDirector(ownerID, tournamentID)
	if err != nil {
		return TournamentState{}, err
	}
	return d.GetState(), nil
}

func (m *manager) Dispatch(ownerID, tournamentID string, action Action) (TournamentState, error) {
	d, err := m.ownedDirector(ownerID, tournamentID)
	if err != nil {
		return TournamentState{}, err
	}
	return d.Dispatch(action)
}

func (m *manager) ownedDirector(ownerID, tournamentID string) (Director, error) {
	d, err := m.GetDirector(tournamentID)
	if err != nil {
		return nil, err
	}
	if err := d.GetState().CheckOwner(ownerID); err != nil {
		return nil, err
	}
	return d, nil
}

func (m *manager) newDirector(state TournamentState, callbacks *DirectorCallbacks, opts ...DirectorOpt) Director {
	opts = append([]DirectorOpt{WithClock(m.clock)}, opts...)
	if m.store != nil {
		opts = append(opts, WithStore(m.store))
	}

	d := NewDirector(state, m.options, opts...)
	if callbacks != nil {
		d.OnStateUpdated(callbacks.OnStateUpdated)
		d.OnErrorUpdated(callbacks.OnErrorUpdated)
		d.OnNotification(callbacks.OnNotification)
		d.OnSoundCue(callbacks.OnSoundCue)
		d.OnTablesBalanced(callbacks.OnTablesBalanced)
	}
	return d
}
