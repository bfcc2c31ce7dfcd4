package pokerdirector

import (
	"github.com/weedbox/pokerdirector/blind"
	"github.com/weedbox/pokerdirector/payout"
	"github.com/weedbox/pokerdirector/seat_manager"
)

type TournamentSettings struct {
	Name               string         `json:"name"`                  // 賽事名稱
	BuyInAmount        float64        `json:"buy_in_amount"`         // 買入金額
	RebuyAmount        float64        `json:"rebuy_amount"`          // 重購金額
	AddOnAmount        float64        `json:"add_on_amount"`         // 加購金額
	StartingChips      int64          `json:"starting_chips"`        // 起始籌碼
	RebuyChips         int64          `json:"rebuy_chips"`           // 重購籌碼
	AddOnChips         int64          `json:"add_on_chips"`          // 加購籌碼
	MaxRebuys          int            `json:"max_rebuys"`            // 每位玩家重購上限 (0 表示不限)
	MaxAddOns          int            `json:"max_add_ons"`           // 每位玩家加購上限
	LastRebuyLevel     int            `json:"last_rebuy_level"`      // 最後可重購級別 (含)
	LastAddOnLevel     int            `json:"last_add_on_level"`     // 最後可加購級別 (含)
	HouseFeeType       string         `json:"house_fee_type"`        // 抽水類型 none, percentage, fixed
	HouseFeeValue      float64        `json:"house_fee_value"`       // 抽水數值
	Levels             []blind.Level  `json:"levels"`                // 盲注結構
	PayoutStructure    []payout.Place `json:"payout_structure"`      // 獎金比例
	MaxPlayersPerTable int            `json:"max_players_per_table"` // 每桌人數上限
}

func NewDefaultSettings() TournamentSettings {
	schedule := blind.BuildSchedule(blind.ScheduleRequest{
		PlayerCount:  seat_manager.DefaultMaxSeats,
		DurationMins: DefaultDurationMins,
		Format:       blind.Format_Standard,
		Options:      blind.NewGenerationOptions(),
	})

	return TournamentSettings{
		Name:               "Tournament",
		BuyInAmount:        100,
		RebuyAmount:        100,
		AddOnAmount:        100,
		StartingChips:      schedule.Stack.StartingStack,
		RebuyChips:         schedule.Stack.StartingStack,
		AddOnChips:         schedule.Stack.StartingStack,
		MaxRebuys:          0,
		MaxAddOns:          1,
		LastRebuyLevel:     4,
		LastAddOnLevel:     4,
		HouseFeeType:       payout.HouseFee_None,
		HouseFeeValue:      0,
		Levels:             schedule.Levels,
		PayoutStructure:    payout.SuggestPayoutStructure(seat_manager.DefaultMaxSeats),
		MaxPlayersPerTable: seat_manager.DefaultMaxSeats,
	}
}

// NewSettingsFromSchedule seeds settings with a generated structure.
func NewSettingsFromSchedule(name string, schedule blind.Schedule, playerCount int) TournamentSettings {
	settings := NewDefaultSettings()
	settings.Name = name
	settings.StartingChips = schedule.Stack.StartingStack
	settings.RebuyChips = schedule.Stack.StartingStack
	settings.AddOnChips = schedule.Stack.StartingStack
	settings.Levels = schedule.Levels
	settings.PayoutStructure = payout.SuggestPayoutStructure(playerCount)
	return settings
}

func (s TournamentSettings) Clone() TournamentSettings {
	levels := make([]blind.Level, len(s.Levels))
	copy(levels, s.Levels)
	s.Levels = levels

	places := make([]payout.Place, len(s.PayoutStructure))
	copy(places, s.PayoutStructure)
	s.PayoutStructure = places

	return s
}

// SettingsPatch is a partial settings update; nil fields are left untouched.
type SettingsPatch struct {
	Name               *string         `json:"name,omitempty"`
	BuyInAmount        *float64        `json:"buy_in_amount,omitempty"`
	RebuyAmount        *float64        `json:"rebuy_amount,omitempty"`
	AddOnAmount        *float64        `json:"add_on_amount,omitempty"`
	StartingChips      *int64          `json:"starting_chips,omitempty"`
	RebuyChips         *int64          `json:"rebuy_chips,omitempty"`
	AddOnChips         *int64          `json:"add_on_chips,omitempty"`
	MaxRebuys          *int            `json:"max_rebuys,omitempty"`
	MaxAddOns          *int            `json:"max_add_ons,omitempty"`
	LastRebuyLevel     *int            `json:"last_rebuy_level,omitempty"`
	LastAddOnLevel     *int            `json:"last_add_on_level,omitempty"`
	HouseFeeType       *string         `json:"house_fee_type,omitempty"`
	HouseFeeValue      *float64        `json:"house_fee_value,omitempty"`
	Levels             *[]blind.Level  `json:"levels,omitempty"`
	PayoutStructure    *[]payout.Place `json:"payout_structure,omitempty"`
	MaxPlayersPerTable *int            `json:"max_players_per_table,omitempty"`
}

func (p SettingsPatch) Apply(s TournamentSettings) TournamentSettings {
	merged := s.Clone()

	if p.Name != nil {
		merged.Name = *p.Name
	}
	if p.BuyInAmount != nil {
		merged.BuyInAmount = *p.BuyInAmount
	}
	if p.RebuyAmount != nil {
		merged.RebuyAmount = *p.RebuyAmount
	}
	if p.AddOnAmount != nil {
		merged.AddOnAmount = *p.AddOnAmount
	}
	if p.StartingChips != nil {
		merged.StartingChips = *p.StartingChips
	}
	if p.RebuyChips != nil {
		merged.RebuyChips = *p.RebuyChips
	}
	if p.AddOnChips != nil {
		merged.AddOnChips = *p.AddOnChips
	}
	if p.MaxRebuys != nil {
		merged.MaxRebuys = *p.MaxRebuys
	}
	if p.MaxAddOns != nil {
		merged.MaxAddOns = *p.MaxAddOns
	}
	if p.LastRebuyLevel != nil {
		merged.LastRebuyLevel = *p.LastRebuyLevel
	}
	if p.LastAddOnLevel != nil {
		merged.LastAddOnLevel = *p.LastAddOnLevel
	}
	if p.HouseFeeType != nil {
		merged.HouseFeeType = *p.HouseFeeType
	}
	if p.HouseFeeValue != nil {
		merged.HouseFeeValue = *p.HouseFeeValue
	}
	if p.Levels != nil {
		merged.Levels = blind.Renumber(*p.Levels)
	}
	if p.PayoutStructure != nil {
		places := make([]payout.Place, len(*p.PayoutStructure))
		copy(places, *p.PayoutStructure)
		merged.PayoutStructure = places
	}
	if p.MaxPlayersPerTable != nil {
		merged.MaxPlayersPerTable = *p.MaxPlayersPerTable
	}

	return merged
}
