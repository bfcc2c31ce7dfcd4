package pokerdirector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/weedbox/pokerdirector/move_manager"
	"github.com/weedbox/pokerdirector/seat_manager"
	"github.com/weedbox/pokerdirector/store"
	"github.com/weedbox/timebank"
)

var (
	ErrStoreUnavailable = errors.New("director: no store configured")
	ErrDirectorClosed   = errors.New("director: closed")
)

type DirectorOpt func(*director)

type Director interface {
	// Events
	OnStateUpdated(fn func(TournamentState))                        // 賽事狀態更新事件監聽器
	OnErrorUpdated(fn func(TournamentState, error))                 // 錯誤更新事件監聽器
	OnNotification(fn func(Notification))                           // 通知監聽器
	OnSoundCue(fn func(SoundCue))                                   // 音效提示監聽器
	OnTablesBalanced(fn func(TournamentState, []seat_manager.Move)) // 換桌確認完成監聽器

	// Tournament Actions
	GetState() TournamentState                           // 取得賽事狀態
	Dispatch(action Action) (TournamentState, error)     // 執行動作
	Start() error                                        // 開始計時
	Pause() error                                        // 暫停計時
	Resume() error                                       // 繼續計時
	NextLevel() error                                    // 下一級別
	PrevLevel() error                                    // 上一級別
	ConfirmSeatMove(playerID string) error               // 玩家確認新座位
	PendingSeatMoves() move_manager.MoveState            // 換桌確認狀態
	Save(ctx context.Context) error                      // 儲存賽事
	Load(ctx context.Context, tournamentID string) error // 讀取賽事
	Close()                                              // 關閉
}

type director struct {
	lock             sync.Mutex
	options          *DirectorOptions
	state            TournamentState
	isPersisted      bool
	isClosed         bool
	clock            quartz.Clock
	logger           *log.Logger
	store            store.Store
	countdown        *countdown
	mm               move_manager.MoveManager
	autosave         *timebank.TimeBank
	onStateUpdated   func(TournamentState)
	onErrorUpdated   func(TournamentState, error)
	onNotification   func(Notification)
	onSoundCue       func(SoundCue)
	onTablesBalanced func(TournamentState, []seat_manager.Move)
}

func NewDirector(state TournamentState, options *DirectorOptions, opts ...DirectorOpt) Director {
	if options == nil {
		options = NewDirectorOptions()
	}

	callbacks := NewDirectorCallbacks()
	d := &director{
		options:          options,
		state:            state.Clone(),
		clock:            quartz.NewReal(),
		logger:           options.Logger,
		autosave:         timebank.NewTimeBank(),
		onStateUpdated:   callbacks.OnStateUpdated,
		onErrorUpdated:   callbacks.OnErrorUpdated,
		onNotification:   callbacks.OnNotification,
		onSoundCue:       callbacks.OnSoundCue,
		onTablesBalanced: callbacks.OnTablesBalanced,
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}

	for _, opt := range opts {
		opt(d)
	}

	d.countdown = newCountdown(d.clock, d.tick)
	d.mm = move_manager.NewMoveManager(move_manager.MoveOption{
		Timeout:          options.SeatMoveTimeout,
		OnMovesConfirmed: d.movesConfirmed,
	})

	return d
}

func WithStore(s store.Store) DirectorOpt {
	return func(d *director) {
		d.store = s
	}
}

func WithClock(clock quartz.Clock) DirectorOpt {
	return func(d *director) {
		d.clock = clock
	}
}

func WithLogger(logger *log.Logger) DirectorOpt {
	return func(d *director) {
		d.logger = logger
	}
}

// WithPersisted marks the tournament as already stored so Save updates instead of creating.
func WithPersisted() DirectorOpt {
	return func(d *director) {
		d.isPersisted = true
	}
}

func (d *director) OnStateUpdated(fn func(TournamentState)) {
	d.onStateUpdated = fn
}

func (d *director) OnErrorUpdated(fn func(TournamentState, error)) {
	d.onErrorUpdated = fn
}

func (d *director) OnNotification(fn func(Notification)) {
	d.onNotification = fn
}

func (d *director) OnSoundCue(fn func(SoundCue)) {
	d.onSoundCue = fn
}

func (d *director) OnTablesBalanced(fn func(TournamentState, []seat_manager.Move)) {
	d.onTablesBalanced = fn
}

func (d *director) GetState() TournamentState {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.state.Clone()
}

/*
Dispatch 執行賽事動作
  - 動作被拒絕時狀態不變，並發出錯誤通知
  - 依結果啟動或停止倒數計時
  - 拆併桌後有玩家被移動時，開始換桌確認
*/
func (d *director) Dispatch(action Action) (TournamentState, error) {
	d.lock.Lock()
	state, moves, err := d.dispatch(action)
	d.lock.Unlock()

	if len(moves) > 0 {
		d.mm.Setup(moves)
	}

	return state, err
}

func (d *director) Start() error {
	_, err := d.Dispatch(NewAction(ActionType_Start, nil))
	return err
}

func (d *director) Pause() error {
	_, err := d.Dispatch(NewAction(ActionType_Pause, nil))
	return err
}

func (d *director) Resume() error {
	_, err := d.Dispatch(NewAction(ActionType_Resume, nil))
	return err
}

func (d *director) NextLevel() error {
	_, err := d.Dispatch(NewAction(ActionType_NextLevel, nil))
	return err
}

func (d *director) PrevLevel() error {
	_, err := d.Dispatch(NewAction(ActionType_PrevLevel, nil))
	return err
}

func (d *director) ConfirmSeatMove(playerID string) error {
	return d.mm.Confirm(playerID)
}

func (d *director) PendingSeatMoves() move_manager.MoveState {
	return d.mm.GetState()
}

/*
Save 儲存賽事
  - 第一次儲存建立紀錄，之後更新
  - 失敗時發出錯誤通知，記憶體中的狀態保持不變，不會重試
*/
func (d *director) Save(ctx context.Context) error {
	if d.store == nil {
		return ErrStoreUnavailable
	}

	d.lock.Lock()
	state := d.state.Clone()
	isPersisted := d.isPersisted
	d.lock.Unlock()

	err := d.persist(ctx, state, isPersisted)

	d.lock.Lock()
	defer d.lock.Unlock()

	if err != nil {
		d.notify(NotificationLevel_Error, "Failed to save tournament")
		d.emitErrorEvent("Save", "", err)
		return err
	}

	d.isPersisted = true
	d.logger.Info("tournament saved", "tournament", state.ID)
	d.notify(NotificationLevel_Success, "Tournament saved")
	d.emitEvent(DirectorEvent_Saved, "")
	return nil
}

/*
Load 讀取賽事
  - 讀取失敗時發出錯誤通知，目前狀態保持不變
  - 讀取後計時器為暫停狀態
*/
func (d *director) Load(ctx context.Context, tournamentID string) error {
	if d.store == nil {
		return ErrStoreUnavailable
	}

	loaded, err := d.fetch(ctx, tournamentID)
	if err != nil {
		d.lock.Lock()
		d.notify(NotificationLevel_Error, "Failed to load tournament")
		d.emitErrorEvent("Load", "", err)
		d.lock.Unlock()
		return err
	}

	d.lock.Lock()
	defer d.lock.Unlock()

	if _, _, err := d.dispatch(NewAction(ActionType_LoadTournament, loaded)); err != nil {
		return err
	}

	d.isPersisted = true
	d.notify(NotificationLevel_Success, "Tournament loaded")
	d.emitEvent(DirectorEvent_Loaded, "")
	return nil
}

func (d *director) Close() {
	d.lock.Lock()
	d.isClosed = true
	d.lock.Unlock()

	d.countdown.Stop()
	d.mm.Stop()
	d.autosave.Cancel()
}

func (d *director) persist(ctx context.Context, state TournamentState, isPersisted bool) error {
	rec, err := EncodeRecord(state)
	if err != nil {
		return err
	}

	if !isPersisted {
		_, err = d.store.Create(ctx, rec)
		if !errors.Is(err, store.ErrRecordExists) {
			return err
		}
	}

	return d.store.Update(ctx, rec.ID, store.PatchFromRecord(rec))
}

func (d *director) fetch(ctx context.Context, tournamentID string) (TournamentState, error) {
	rec, err := d.store.Get(ctx, tournamentID)
	if err != nil {
		return TournamentState{}, fmt.Errorf("load tournament %s: %w", tournamentID, err)
	}
	return DecodeRecord(*rec)
}

// tick runs on the countdown goroutine.
func (d *director) tick(generation int64) {
	d.lock.Lock()
	defer d.lock.Unlock()

	// late tick from a countdown that was paused or restarted meanwhile
	if !d.state.IsRunning || !d.countdown.IsCurrent(generation) {
		return
	}

	_, _, _ = d.dispatch(NewAction(ActionType_Tick, nil))
}

func (d *director) movesConfirmed(ms move_manager.MoveState) {
	moves := make([]seat_manager.Move, 0, len(ms.Participants))
	for _, p := range ms.Participants {
		moves = append(moves, p.Move)
	}
	sortMoves(moves)

	d.lock.Lock()
	state := d.state.Clone()
	d.lock.Unlock()

	d.logger.Info("seat moves confirmed", "tournament", state.ID, "round", ms.Round, "moves", len(moves))
	d.onTablesBalanced(state, moves)
}

// scheduleAutosave must be called with lock held.
func (d *director) scheduleAutosave() {
	if d.store == nil || d.options.AutosaveInterval <= 0 {
		return
	}

	d.autosave.Cancel()
	interval := time.Duration(d.options.AutosaveInterval) * time.Second
	if err := d.autosave.NewTask(interval, func(isCancelled bool) {
		if isCancelled {
			return
		}

		if err := d.Save(context.Background()); err != nil {
			d.logger.Error("autosave failed", "err", err)
		}
	}); err != nil {
		d.logger.Warn("failed to schedule autosave", "err", err)
	}
}
