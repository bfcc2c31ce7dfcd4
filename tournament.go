package pokerdirector

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/thoas/go-funk"
	"github.com/weedbox/pokerdirector/blind"
	"github.com/weedbox/pokerdirector/payout"
	"github.com/weedbox/pokerdirector/seat_manager"
)

var (
	ErrNotOwner = errors.New("tournament: caller does not own the tournament")
)

type Player struct {
	ID                  string `json:"id"`                   // 玩家 ID
	Name                string `json:"name"`                 // 玩家名稱
	Chips               int64  `json:"chips"`                // 玩家籌碼
	IsEliminated        bool   `json:"is_eliminated"`        // 是否已淘汰
	EliminationPosition *int   `json:"elimination_position"` // 第幾位被淘汰 (nil 表示尚未淘汰)
	Rebuys              int    `json:"rebuys"`               // 重購次數
	AddOns              int    `json:"add_ons"`              // 加購次數
	TableNumber         *int   `json:"table_number"`         // 桌號 (nil 表示未入座)
	SeatNumber          *int   `json:"seat_number"`          // 座位編號 (nil 表示未入座)
}

type TournamentState struct {
	ID                 string               `json:"id"`                  // 賽事 ID
	OwnerID            string               `json:"owner_id"`            // 建立者 ID
	IsRunning          bool                 `json:"is_running"`          // 計時器是否運行中
	CurrentLevel       int                  `json:"current_level"`       // 目前級別索引值
	TimeRemaining      int                  `json:"time_remaining"`      // 本級別剩餘秒數
	Players            []Player             `json:"players"`             // 所有玩家 (含已淘汰)
	Tables             []seat_manager.Table `json:"tables"`              // 桌次
	Settings           TournamentSettings   `json:"settings"`            // 賽事設定
	TotalPrizePool     float64              `json:"total_prize_pool"`    // 總獎池 (扣除抽水)
	EliminationCounter int                  `json:"elimination_counter"` // 淘汰計數
	UpdateAt           int64                `json:"update_at"`           // 更新時間 (Seconds)
	UpdateSerial       int64                `json:"update_serial"`       // 更新序列號 (數字越大越晚發生)
}

func NewTournamentState(id, ownerID string, settings TournamentSettings) TournamentState {
	state := TournamentState{
		ID:       id,
		OwnerID:  ownerID,
		Players:  make([]Player, 0),
		Tables:   make([]seat_manager.Table, 0),
		Settings: settings.Clone(),
	}
	state.TimeRemaining = state.levelSeconds(0)
	state.TotalPrizePool = state.PrizePool().NetPrizePool
	return state
}

func (p Player) Clone() Player {
	p.EliminationPosition = cloneIntPtr(p.EliminationPosition)
	p.TableNumber = cloneIntPtr(p.TableNumber)
	p.SeatNumber = cloneIntPtr(p.SeatNumber)
	return p
}

func (p Player) IsSeated() bool {
	return p.TableNumber != nil && p.SeatNumber != nil
}

// FinishingPosition maps elimination order onto a place; the last player eliminated finishes highest.
func (p Player) FinishingPosition(fieldSize int) int {
	if p.EliminationPosition == nil {
		return UnsetValue
	}
	return fieldSize - *p.EliminationPosition + 1
}

func (s TournamentState) Clone() TournamentState {
	players := make([]Player, len(s.Players))
	for i, p := range s.Players {
		players[i] = p.Clone()
	}
	s.Players = players
	s.Tables = seat_manager.CloneTables(s.Tables)
	s.Settings = s.Settings.Clone()
	return s
}

func (s TournamentState) GetJSON() (string, error) {
	encoded, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func (s TournamentState) CheckOwner(ownerID string) error {
	if s.OwnerID == "" || s.OwnerID == ownerID {
		return nil
	}
	return ErrNotOwner
}

func (s TournamentState) FindPlayerIdx(playerID string) int {
	for idx, p := range s.Players {
		if p.ID == playerID {
			return idx
		}
	}
	return UnsetValue
}

func (s TournamentState) ActivePlayers() []Player {
	return funk.Filter(s.Players, func(p Player) bool {
		return !p.IsEliminated
	}).([]Player)
}

func (s TournamentState) EliminatedPlayers() []Player {
	return funk.Filter(s.Players, func(p Player) bool {
		return p.IsEliminated
	}).([]Player)
}

func (s TournamentState) CurrentBlindLevel() (blind.Level, error) {
	return blind.LevelAt(s.Settings.Levels, s.CurrentLevel)
}

func (s TournamentState) IsLastLevel() bool {
	return s.CurrentLevel >= len(s.Settings.Levels)-1
}

func (s TournamentState) IsBreaking() bool {
	level, err := s.CurrentBlindLevel()
	return err == nil && level.IsBreak
}

// IsRebuyOpen reports whether the current level is still within the rebuy period.
func (s TournamentState) IsRebuyOpen() bool {
	return s.CurrentLevel+1 <= s.Settings.LastRebuyLevel
}

func (s TournamentState) IsAddOnOpen() bool {
	return s.CurrentLevel+1 <= s.Settings.LastAddOnLevel
}

func (s TournamentState) TotalRebuys() int {
	total := 0
	for _, p := range s.Players {
		total += p.Rebuys
	}
	return total
}

func (s TournamentState) TotalAddOns() int {
	total := 0
	for _, p := range s.Players {
		total += p.AddOns
	}
	return total
}

func (s TournamentState) TotalChips() int64 {
	var total int64
	for _, p := range s.Players {
		total += p.Chips
	}
	return total
}

// AverageStack is the mean chip count of the players still in.
func (s TournamentState) AverageStack() int64 {
	active := s.ActivePlayers()
	if len(active) == 0 {
		return 0
	}
	return s.TotalChips() / int64(len(active))
}

func (s TournamentState) PrizePoolData() payout.PrizePoolData {
	return payout.PrizePoolData{
		TotalBuyIns:   len(s.Players),
		TotalRebuys:   s.TotalRebuys(),
		TotalAddOns:   s.TotalAddOns(),
		BuyInAmount:   s.Settings.BuyInAmount,
		RebuyAmount:   s.Settings.RebuyAmount,
		AddOnAmount:   s.Settings.AddOnAmount,
		HouseFeeType:  s.Settings.HouseFeeType,
		HouseFeeValue: s.Settings.HouseFeeValue,
		PayoutPlaces:  s.Settings.PayoutStructure,
	}
}

func (s TournamentState) PrizePool() payout.Result {
	return payout.CalculatePrizePoolAndPayouts(s.PrizePoolData())
}

// LevelEndAts projects the end time of every level from now.
func (s TournamentState) LevelEndAts(now int64) []int64 {
	return blind.LevelEndAts(now, s.Settings.Levels, s.CurrentLevel, s.TimeRemaining)
}

type Standing struct {
	Position int     `json:"position"`
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Chips    int64   `json:"chips"`
	Prize    float64 `json:"prize"`
}

/*
Standings 目前名次
  - 存活玩家依籌碼由多到少排列
  - 淘汰玩家依淘汰順序，越晚淘汰名次越前
  - 重購後再次淘汰的玩家以最後一次淘汰為準
*/
func (s TournamentState) Standings() []Standing {
	fieldSize := len(s.Players)
	pool := s.PrizePool()

	active := s.ActivePlayers()
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Chips > active[j].Chips
	})

	eliminated := s.EliminatedPlayers()
	sort.SliceStable(eliminated, func(i, j int) bool {
		return eliminationOrder(eliminated[i]) > eliminationOrder(eliminated[j])
	})

	standings := make([]Standing, 0, fieldSize)
	for idx, p := range active {
		position := idx + 1
		standing := Standing{
			Position: position,
			PlayerID: p.ID,
			Name:     p.Name,
			Chips:    p.Chips,
		}
		if len(active) == 1 {
			standing.Prize = pool.PayoutFor(position)
		}
		standings = append(standings, standing)
	}

	for idx, p := range eliminated {
		position := len(active) + idx + 1
		standings = append(standings, Standing{
			Position: position,
			PlayerID: p.ID,
			Name:     p.Name,
			Prize:    pool.PayoutFor(position),
		})
	}

	return standings
}

func (s TournamentState) levelSeconds(idx int) int {
	level, err := blind.LevelAt(s.Settings.Levels, idx)
	if err != nil {
		return 0
	}
	return level.DurationSeconds()
}

func eliminationOrder(p Player) int {
	if p.EliminationPosition == nil {
		return 0
	}
	return *p.EliminationPosition
}
