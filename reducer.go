package pokerdirector

import (
	"errors"

	"github.com/weedbox/pokerdirector/blind"
	"github.com/weedbox/pokerdirector/seat_manager"
)

var (
	ErrEmptySchedule       = errors.New("tournament: blind schedule is empty")
	ErrInvalidParam        = errors.New("tournament: invalid action param")
	ErrInvalidPlayer       = errors.New("tournament: invalid player")
	ErrPlayerNotFound      = errors.New("tournament: player not found")
	ErrPlayerAlreadyExists = errors.New("tournament: player already exists")
	ErrPlayerEliminated    = errors.New("tournament: player is eliminated")
	ErrRebuyClosed         = errors.New("tournament: rebuy period is over")
	ErrMaxRebuysReached    = errors.New("tournament: player reached max rebuys")
	ErrAddOnClosed         = errors.New("tournament: add-on period is over")
	ErrMaxAddOnsReached    = errors.New("tournament: player reached max add-ons")
	ErrLevelNotFound       = errors.New("tournament: level not found")
	ErrInvalidDuration     = errors.New("tournament: invalid level duration")
	ErrNoActivePlayers     = errors.New("tournament: no active players to seat")
)

type reduceFunc func(s *TournamentState, param interface{}) error

var reducers = map[ActionType]reduceFunc{
	ActionType_Start:                      reduceStart,
	ActionType_Pause:                      reducePause,
	ActionType_Resume:                     reduceStart,
	ActionType_Stop:                       reduceStop,
	ActionType_End:                        reduceStop,
	ActionType_NextLevel:                  reduceNextLevel,
	ActionType_PrevLevel:                  reducePrevLevel,
	ActionType_SetTime:                    reduceSetTime,
	ActionType_Tick:                       reduceTick,
	ActionType_AddPlayer:                  reduceAddPlayer,
	ActionType_RemovePlayer:               reduceRemovePlayer,
	ActionType_MarkEliminated:             reduceMarkEliminated,
	ActionType_AddRebuy:                   reduceAddRebuy,
	ActionType_AddAddOn:                   reduceAddAddOn,
	ActionType_UpdateCurrentLevelDuration: reduceUpdateLevelDuration,
	ActionType_UpdateSettings:             reduceUpdateSettings,
	ActionType_AssignTables:               reduceAssignTables,
	ActionType_BalanceTables:              reduceBalanceTables,
	ActionType_BreakTable:                 reduceBreakTable,
	ActionType_CreateTournament:           reduceCreateTournament,
	ActionType_LoadTournament:             reduceLoadTournament,
	ActionType_ResetTournament:            reduceResetTournament,
}

/*
Reduce 賽事狀態轉移
  - 不會修改傳入的 state
  - 動作被拒絕時回傳原本的 state 與錯誤
  - 未知的動作不做任何事
*/
func Reduce(state TournamentState, action Action) (TournamentState, error) {
	fn, exist := reducers[action.Type]
	if !exist {
		return state, nil
	}

	next := state.Clone()
	if err := fn(&next, action.Param); err != nil {
		return state, err
	}
	return next, nil
}

func reduceStart(s *TournamentState, _ interface{}) error {
	if len(s.Settings.Levels) == 0 {
		return ErrEmptySchedule
	}

	s.clampLevel()
	s.IsRunning = true
	if s.TimeRemaining <= 0 {
		s.TimeRemaining = s.levelSeconds(s.CurrentLevel)
	}
	return nil
}

func reducePause(s *TournamentState, _ interface{}) error {
	s.IsRunning = false
	return nil
}

func reduceStop(s *TournamentState, _ interface{}) error {
	s.IsRunning = false
	s.CurrentLevel = 0
	s.TimeRemaining = s.levelSeconds(0)
	return nil
}

func reduceNextLevel(s *TournamentState, _ interface{}) error {
	if s.IsLastLevel() {
		return nil
	}
	s.CurrentLevel++
	s.TimeRemaining = s.levelSeconds(s.CurrentLevel)
	return nil
}

func reducePrevLevel(s *TournamentState, _ interface{}) error {
	if s.CurrentLevel <= 0 {
		return nil
	}
	s.CurrentLevel--
	s.TimeRemaining = s.levelSeconds(s.CurrentLevel)
	return nil
}

func reduceSetTime(s *TournamentState, param interface{}) error {
	p, ok := param.(SetTimeParam)
	if !ok {
		return ErrInvalidParam
	}

	s.TimeRemaining = p.Seconds
	if s.TimeRemaining < 0 {
		s.TimeRemaining = 0
	}
	return nil
}

/*
reduceTick 計時器每秒觸發
  - 剩餘時間歸零時進入下一級別
  - 已是最後一個級別則停止計時 (賽事結束)
*/
func reduceTick(s *TournamentState, _ interface{}) error {
	if !s.IsRunning {
		return nil
	}

	if s.TimeRemaining > 0 {
		s.TimeRemaining--
	}
	if s.TimeRemaining > 0 {
		return nil
	}

	if s.IsLastLevel() {
		s.TimeRemaining = 0
		s.IsRunning = false
		return nil
	}

	s.CurrentLevel++
	s.TimeRemaining = s.levelSeconds(s.CurrentLevel)
	return nil
}

func reduceAddPlayer(s *TournamentState, param interface{}) error {
	p, ok := param.(Player)
	if !ok {
		return ErrInvalidParam
	}
	if p.ID == "" {
		return ErrInvalidPlayer
	}
	if s.FindPlayerIdx(p.ID) != UnsetValue {
		return ErrPlayerAlreadyExists
	}

	player := Player{
		ID:    p.ID,
		Name:  p.Name,
		Chips: p.Chips,
	}
	if player.Chips <= 0 {
		player.Chips = s.Settings.StartingChips
	}

	s.Players = append(s.Players, player)
	s.recalculatePrizePool()
	return nil
}

func reduceRemovePlayer(s *TournamentState, param interface{}) error {
	p, ok := param.(PlayerParam)
	if !ok {
		return ErrInvalidParam
	}

	idx := s.FindPlayerIdx(p.PlayerID)
	if idx == UnsetValue {
		return ErrPlayerNotFound
	}

	s.Players = append(s.Players[:idx], s.Players[idx+1:]...)
	s.Tables, _ = seat_manager.RemovePlayer(s.Tables, p.PlayerID)
	s.recalculatePrizePool()
	return nil
}

/*
reduceMarkEliminated 玩家淘汰
  - 淘汰計數 +1，並記錄為該玩家的淘汰順序
  - 清空籌碼與座位
  - 同一位玩家重複淘汰會重複計數
*/
func reduceMarkEliminated(s *TournamentState, param interface{}) error {
	p, ok := param.(PlayerParam)
	if !ok {
		return ErrInvalidParam
	}

	idx := s.FindPlayerIdx(p.PlayerID)
	if idx == UnsetValue {
		return ErrPlayerNotFound
	}

	s.EliminationCounter++

	player := &s.Players[idx]
	player.IsEliminated = true
	player.EliminationPosition = intPtr(s.EliminationCounter)
	player.Chips = 0
	player.TableNumber = nil
	player.SeatNumber = nil

	s.Tables, _ = seat_manager.RemovePlayer(s.Tables, p.PlayerID)
	return nil
}

func reduceAddRebuy(s *TournamentState, param interface{}) error {
	p, ok := param.(PlayerParam)
	if !ok {
		return ErrInvalidParam
	}

	idx := s.FindPlayerIdx(p.PlayerID)
	if idx == UnsetValue {
		return ErrPlayerNotFound
	}

	if !s.IsRebuyOpen() {
		return ErrRebuyClosed
	}

	player := &s.Players[idx]
	if s.Settings.MaxRebuys > 0 && player.Rebuys >= s.Settings.MaxRebuys {
		return ErrMaxRebuysReached
	}

	player.Rebuys++
	player.IsEliminated = false
	player.EliminationPosition = nil
	player.Chips += s.Settings.RebuyChips

	s.recalculatePrizePool()
	return nil
}

func reduceAddAddOn(s *TournamentState, param interface{}) error {
	p, ok := param.(PlayerParam)
	if !ok {
		return ErrInvalidParam
	}

	idx := s.FindPlayerIdx(p.PlayerID)
	if idx == UnsetValue {
		return ErrPlayerNotFound
	}

	if !s.IsAddOnOpen() {
		return ErrAddOnClosed
	}

	player := &s.Players[idx]
	if player.IsEliminated {
		return ErrPlayerEliminated
	}
	if player.AddOns >= s.Settings.MaxAddOns {
		return ErrMaxAddOnsReached
	}

	player.AddOns++
	player.Chips += s.Settings.AddOnChips

	s.recalculatePrizePool()
	return nil
}

func reduceUpdateLevelDuration(s *TournamentState, param interface{}) error {
	p, ok := param.(LevelDurationParam)
	if !ok {
		return ErrInvalidParam
	}
	if p.LevelIndex < 0 || p.LevelIndex >= len(s.Settings.Levels) {
		return ErrLevelNotFound
	}
	if p.DurationMins <= 0 {
		return ErrInvalidDuration
	}

	s.Settings.Levels[p.LevelIndex].DurationMins = p.DurationMins
	if p.LevelIndex == s.CurrentLevel {
		s.TimeRemaining = s.levelSeconds(s.CurrentLevel)
	}
	return nil
}

func reduceUpdateSettings(s *TournamentState, param interface{}) error {
	p, ok := param.(SettingsPatch)
	if !ok {
		return ErrInvalidParam
	}

	s.Settings = p.Apply(s.Settings)
	s.clampLevel()
	s.recalculatePrizePool()

	if s.CurrentLevel == 0 {
		s.TimeRemaining = s.levelSeconds(0)
	}
	return nil
}

func reduceAssignTables(s *TournamentState, param interface{}) error {
	var numTables int
	switch p := param.(type) {
	case AssignTablesParam:
		numTables = p.NumTables
	case nil:
	default:
		return ErrInvalidParam
	}

	active := len(s.ActivePlayers())
	if active == 0 {
		return ErrNoActivePlayers
	}
	if numTables <= 0 {
		numTables = seat_manager.TablesNeeded(active, s.Settings.MaxPlayersPerTable)
	}

	tables, err := seat_manager.AssignPlayersToTables(s.seatPlayers(), numTables, s.Settings.MaxPlayersPerTable)
	if err != nil {
		return err
	}

	s.Tables = tables
	s.syncSeats()
	return nil
}

func reduceBalanceTables(s *TournamentState, _ interface{}) error {
	s.Tables, _ = seat_manager.BalanceTables(s.Tables)
	s.syncSeats()
	return nil
}

func reduceBreakTable(s *TournamentState, param interface{}) error {
	p, ok := param.(BreakTableParam)
	if !ok {
		return ErrInvalidParam
	}

	tables, _, err := seat_manager.BreakTable(s.Tables, p.TableNumber)
	if err != nil {
		return err
	}

	s.Tables = tables
	s.syncSeats()
	return nil
}

func reduceCreateTournament(s *TournamentState, param interface{}) error {
	p, ok := param.(TournamentState)
	if !ok {
		return ErrInvalidParam
	}

	*s = p.Clone()
	s.IsRunning = false
	s.CurrentLevel = 0
	s.TimeRemaining = s.levelSeconds(0)
	s.EliminationCounter = 0
	if s.Players == nil {
		s.Players = make([]Player, 0)
	}
	if s.Tables == nil {
		s.Tables = make([]seat_manager.Table, 0)
	}
	s.recalculatePrizePool()
	return nil
}

func reduceLoadTournament(s *TournamentState, param interface{}) error {
	p, ok := param.(TournamentState)
	if !ok {
		return ErrInvalidParam
	}

	*s = p.Clone()
	s.clampLevel()
	return nil
}

func reduceResetTournament(s *TournamentState, _ interface{}) error {
	s.IsRunning = false
	s.CurrentLevel = 0
	s.TimeRemaining = s.levelSeconds(0)
	s.Players = make([]Player, 0)
	s.Tables = make([]seat_manager.Table, 0)
	s.EliminationCounter = 0
	s.recalculatePrizePool()
	return nil
}

// LevelSummary is a helper for displays that want the active blinds.
func LevelSummary(s TournamentState) (current blind.Level, next blind.Level, hasNext bool) {
	current, _ = s.CurrentBlindLevel()
	next, err := blind.LevelAt(s.Settings.Levels, s.CurrentLevel+1)
	return current, next, err == nil
}
