package pokerdirector

import (
	"encoding/json"
	"errors"
)

var (
	ErrInvalidActionPayload = errors.New("tournament: invalid action payload")
)

type ActionType string

const (
	ActionType_Start                      ActionType = "START"
	ActionType_Pause                      ActionType = "PAUSE"
	ActionType_Resume                     ActionType = "RESUME"
	ActionType_Stop                       ActionType = "STOP"
	ActionType_End                        ActionType = "END"
	ActionType_NextLevel                  ActionType = "NEXT_LEVEL"
	ActionType_PrevLevel                  ActionType = "PREV_LEVEL"
	ActionType_SetTime                    ActionType = "SET_TIME"
	ActionType_Tick                       ActionType = "TICK"
	ActionType_AddPlayer                  ActionType = "ADD_PLAYER"
	ActionType_RemovePlayer               ActionType = "REMOVE_PLAYER"
	ActionType_MarkEliminated             ActionType = "MARK_ELIMINATED"
	ActionType_AddRebuy                   ActionType = "ADD_REBUY"
	ActionType_AddAddOn                   ActionType = "ADD_ADDON"
	ActionType_UpdateCurrentLevelDuration ActionType = "UPDATE_CURRENT_LEVEL_DURATION"
	ActionType_UpdateSettings             ActionType = "UPDATE_SETTINGS"
	ActionType_AssignTables               ActionType = "ASSIGN_TABLES"
	ActionType_BalanceTables              ActionType = "BALANCE_TABLES"
	ActionType_BreakTable                 ActionType = "BREAK_TABLE"
	ActionType_CreateTournament           ActionType = "CREATE_TOURNAMENT"
	ActionType_LoadTournament             ActionType = "LOAD_TOURNAMENT"
	ActionType_ResetTournament            ActionType = "RESET_TOURNAMENT"
)

type Action struct {
	Type  ActionType  `json:"type"`
	Param interface{} `json:"param,omitempty"`
}

type PlayerParam struct {
	PlayerID string `json:"player_id"`
}

type SetTimeParam struct {
	Seconds int `json:"seconds"`
}

type LevelDurationParam struct {
	LevelIndex   int `json:"level_index"`
	DurationMins int `json:"duration_mins"`
}

type AssignTablesParam struct {
	NumTables int `json:"num_tables"` // 0 表示依每桌人數上限自動計算
}

type BreakTableParam struct {
	TableNumber int `json:"table_number"`
}

func NewAction(actionType ActionType, param interface{}) Action {
	return Action{
		Type:  actionType,
		Param: param,
	}
}

type rawAction struct {
	Type  ActionType      `json:"type"`
	Param json.RawMessage `json:"param"`
}

// DecodeAction parses a JSON action and decodes its param into the matching type.
func DecodeAction(data []byte) (Action, error) {
	var raw rawAction
	if err := json.Unmarshal(data, &raw); err != nil {
		return Action{}, ErrInvalidActionPayload
	}

	action := Action{Type: raw.Type}

	var param interface{}
	switch raw.Type {
	case ActionType_MarkEliminated, ActionType_AddRebuy, ActionType_AddAddOn, ActionType_RemovePlayer:
		param = &PlayerParam{}
	case ActionType_SetTime:
		param = &SetTimeParam{}
	case ActionType_UpdateCurrentLevelDuration:
		param = &LevelDurationParam{}
	case ActionType_UpdateSettings:
		param = &SettingsPatch{}
	case ActionType_AssignTables:
		param = &AssignTablesParam{}
	case ActionType_BreakTable:
		param = &BreakTableParam{}
	case ActionType_AddPlayer:
		param = &Player{}
	case ActionType_CreateTournament, ActionType_LoadTournament:
		param = &TournamentState{}
	default:
		return action, nil
	}

	if len(raw.Param) == 0 || string(raw.Param) == "null" {
		if raw.Type == ActionType_AssignTables {
			action.Param = AssignTablesParam{}
			return action, nil
		}
		return Action{}, ErrInvalidActionPayload
	}

	if err := json.Unmarshal(raw.Param, param); err != nil {
		return Action{}, ErrInvalidActionPayload
	}

	switch p := param.(type) {
	case *PlayerParam:
		action.Param = *p
	case *SetTimeParam:
		action.Param = *p
	case *LevelDurationParam:
		action.Param = *p
	case *SettingsPatch:
		action.Param = *p
	case *AssignTablesParam:
		action.Param = *p
	case *BreakTableParam:
		action.Param = *p
	case *Player:
		action.Param = *p
	case *TournamentState:
		action.Param = *p
	}

	return action, nil
}
