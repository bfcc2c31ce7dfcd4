package pokerdirector

import (
	"encoding/json"
	"fmt"

	"github.com/weedbox/pokerdirector/blind"
	"github.com/weedbox/pokerdirector/payout"
	"github.com/weedbox/pokerdirector/seat_manager"
	"github.com/weedbox/pokerdirector/store"
)

// runtimeState is the clock and seating part of a tournament kept in Record.State.
type runtimeState struct {
	CurrentLevel       int                  `json:"current_level"`
	TimeRemaining      int                  `json:"time_remaining"`
	Tables             []seat_manager.Table `json:"tables"`
	EliminationCounter int                  `json:"elimination_counter"`
	UpdateSerial       int64                `json:"update_serial"`
}

/*
EncodeRecord 將賽事狀態轉為儲存格式
  - 盲注結構、獎金結構、玩家分別存成 JSON 字串
  - 計時器運行狀態不保存，載入後一律為暫停
*/
func EncodeRecord(s TournamentState) (store.Record, error) {
	settings := s.Settings.Clone()
	levels := settings.Levels
	places := settings.PayoutStructure
	settings.Levels = nil
	settings.PayoutStructure = nil

	rec := store.Record{
		ID:      s.ID,
		OwnerID: s.OwnerID,
		Name:    s.Settings.Name,
	}

	fields := []struct {
		dst *string
		v   interface{}
	}{
		{&rec.Settings, settings},
		{&rec.Levels, levels},
		{&rec.PayoutStructure, places},
		{&rec.Players, s.Players},
		{&rec.State, runtimeState{
			CurrentLevel:       s.CurrentLevel,
			TimeRemaining:      s.TimeRemaining,
			Tables:             s.Tables,
			EliminationCounter: s.EliminationCounter,
			UpdateSerial:       s.UpdateSerial,
		}},
	}
	for _, f := range fields {
		encoded, err := json.Marshal(f.v)
		if err != nil {
			return store.Record{}, fmt.Errorf("encode record %s: %w", s.ID, err)
		}
		*f.dst = string(encoded)
	}

	return rec, nil
}

// DecodeRecord rebuilds a tournament from its stored form.
func DecodeRecord(rec store.Record) (TournamentState, error) {
	var (
		settings TournamentSettings
		levels   []blind.Level
		places   []payout.Place
		players  []Player
		runtime  runtimeState
	)

	fields := []struct {
		name string
		src  string
		v    interface{}
	}{
		{"settings", rec.Settings, &settings},
		{"levels", rec.Levels, &levels},
		{"payout_structure", rec.PayoutStructure, &places},
		{"players", rec.Players, &players},
		{"state", rec.State, &runtime},
	}
	for _, f := range fields {
		if f.src == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.src), f.v); err != nil {
			return TournamentState{}, fmt.Errorf("decode record %s %s: %w", rec.ID, f.name, err)
		}
	}

	settings.Name = rec.Name
	settings.Levels = levels
	settings.PayoutStructure = places

	s := NewTournamentState(rec.ID, rec.OwnerID, settings)
	if players != nil {
		s.Players = players
	}
	if runtime.Tables != nil {
		s.Tables = runtime.Tables
	}
	s.CurrentLevel = runtime.CurrentLevel
	s.EliminationCounter = runtime.EliminationCounter
	s.UpdateSerial = runtime.UpdateSerial
	s.UpdateAt = rec.UpdatedAt
	s.clampLevel()

	s.TimeRemaining = runtime.TimeRemaining
	if rec.State == "" {
		s.TimeRemaining = s.levelSeconds(s.CurrentLevel)
	}

	s.recalculatePrizePool()
	return s, nil
}
