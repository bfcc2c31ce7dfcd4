package blind

import (
	"errors"
	"math"
	"strings"

	"github.com/weedbox/pokerdirector/chips"
)

var (
	ErrInvalidSchedule = errors.New("blind: player count and duration must be positive")
	ErrDurationTooLong = errors.New("blind: duration exceeds the schedule limit")
	ErrTooManyPlayers  = errors.New("blind: player count exceeds the schedule limit")
)

const (
	MaxDurationMins = 7 * 24 * 60
	MaxPlayerCount  = 100000

	// keeps bigBlind = 2*smallBlind and antes inside int64
	maxSmallBlind = float64(math.MaxInt64 / 4)
)

type GenerationOptions struct {
	LevelDurationMins   int           `json:"level_duration_mins"`
	TournamentFormat    string        `json:"tournament_format"`
	ChipSet             chips.ChipSet `json:"chipset"`
	AnteStartLevel      int           `json:"ante_start_level"`
	BreakIntervalLevels int           `json:"break_interval_levels"`
	BreakDurationMins   int           `json:"break_duration_mins"`
	BlindIncreaseFactor float64       `json:"blind_increase_factor"`
	RebuyAddonFactor    float64       `json:"rebuy_addon_factor"`    // advisory only
	IncludeAnte         bool          `json:"include_ante"`
}

func NewGenerationOptions() GenerationOptions {
	return GenerationOptions{
		LevelDurationMins:   20,
		TournamentFormat:    Format_Standard,
		ChipSet:             append(chips.ChipSet{}, chips.DefaultChipSet...),
		AnteStartLevel:      AnteDisabled,
		BreakIntervalLevels: 4,
		BreakDurationMins:   DefaultBreakDurationMins,
		BlindIncreaseFactor: 0,
		RebuyAddonFactor:    1,
		IncludeAnte:         false,
	}
}

// GrowthFactor returns the per-level blind multiplier for a format.
func GrowthFactor(format string) float64 {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case Format_Deepstack:
		return 1.3
	case Format_Turbo:
		return 1.7
	case Format_Hyper, Format_HyperTurbo:
		return 2.0
	}
	return 1.5
}

func (opts GenerationOptions) factor() float64 {
	f := opts.BlindIncreaseFactor
	if f <= 0 || math.IsNaN(f) {
		return GrowthFactor(opts.TournamentFormat)
	}
	// never shrink blinds
	if f < 1 {
		return 1
	}
	return f
}

func (opts GenerationOptions) breakDuration() int {
	d := opts.BreakDurationMins
	if d <= 0 {
		d = DefaultBreakDurationMins
	}
	if d > opts.LevelDurationMins {
		d = opts.LevelDurationMins
	}
	return d
}

func (opts GenerationOptions) anteActive(level int) bool {
	return opts.IncludeAnte && opts.AnteStartLevel != AnteDisabled && level >= opts.AnteStartLevel
}

/*
GenerateDynamicBlinds 依照起始籌碼與預計時長產生盲注結構
  - 級別數 = 預計分鐘 / 每級分鐘，<= 0 時回傳空結構
  - 每 BreakIntervalLevels 級插入一次休息，休息佔用一個級別但盲注不成長
  - 盲注皆以籌碼組合取整，且不會比前一級小
*/
func GenerateDynamicBlinds(playerCount int, startingStack int64, targetDurationMins int, opts GenerationOptions) []Level {
	levels := make([]Level, 0)
	if opts.LevelDurationMins <= 0 {
		return levels
	}

	targetLevels := targetDurationMins / opts.LevelDurationMins
	if targetLevels <= 0 {
		return levels
	}

	factor := opts.factor()
	breakDuration := opts.breakDuration()

	sb := capSmallBlind(float64(chips.RoundToPokerChips(float64(startingStack)*0.005, opts.ChipSet)))
	var lastSB int64

	for level := 1; level <= targetLevels; level++ {
		if level > 1 && opts.BreakIntervalLevels > 0 && level%opts.BreakIntervalLevels == 0 {
			levels = append(levels, NewBreakLevel(level, breakDuration))
			continue
		}

		smallBlind := chips.RoundToPokerChips(sb, opts.ChipSet)
		if smallBlind < lastSB {
			smallBlind = lastSB
		}
		lastSB = smallBlind
		bigBlind := smallBlind * 2

		var ante int64
		if opts.anteActive(level) {
			ante = chips.RoundToPokerChips(float64(bigBlind)*0.1, opts.ChipSet)
		}

		levels = append(levels, Level{
			Level:        level,
			SmallBlind:   smallBlind,
			BigBlind:     bigBlind,
			Ante:         ante,
			DurationMins: opts.LevelDurationMins,
		})

		sb = capSmallBlind(math.Round(sb * factor))
	}

	return levels
}

const (
	fallbackGrowth        = 1.5
	fallbackLevelMins     = 20
	fallbackBreakInterval = 4
)

// GenerateFallbackBlinds is the fixed-ratio schedule used when no chip set is configured.
func GenerateFallbackBlinds(startingStack int64, targetDurationMins int) []Level {
	levels := make([]Level, 0)

	targetLevels := targetDurationMins / fallbackLevelMins
	if targetLevels <= 0 {
		return levels
	}

	sb := float64(startingStack) / 200
	if sb < 1 {
		sb = 1
	}

	for level := 1; level <= targetLevels; level++ {
		if level%fallbackBreakInterval == 0 {
			levels = append(levels, NewBreakLevel(level, DefaultBreakDurationMins))
			continue
		}

		smallBlind := int64(math.Round(capSmallBlind(sb)))
		levels = append(levels, Level{
			Level:        level,
			SmallBlind:   smallBlind,
			BigBlind:     smallBlind * 2,
			DurationMins: fallbackLevelMins,
		})
		sb = capSmallBlind(sb * fallbackGrowth)
	}

	return levels
}

type ScheduleRequest struct {
	PlayerCount  int               `json:"player_count"`
	DurationMins int               `json:"duration_mins"`
	Format       string            `json:"format"`
	Options      GenerationOptions `json:"options"`
}

// Validate rejects requests outside the limits a schedule can be built for.
func (req ScheduleRequest) Validate() error {
	switch {
	case req.PlayerCount <= 0 || req.DurationMins <= 0:
		return ErrInvalidSchedule
	case req.DurationMins > MaxDurationMins:
		return ErrDurationTooLong
	case req.PlayerCount > MaxPlayerCount:
		return ErrTooManyPlayers
	}
	return nil
}

type Schedule struct {
	Stack        StackSizingResult `json:"stack"`
	Levels       []Level           `json:"levels"`
	UsedFallback bool              `json:"used_fallback"`
}

/*
BuildSchedule 產生完整賽事結構
  - 有籌碼組合: 先計算起始籌碼，再以動態產生器產生級別
  - 沒有籌碼組合: 使用固定比例的備用產生器
*/
func BuildSchedule(req ScheduleRequest) Schedule {
	hours := DurationHours(float64(req.DurationMins) / 60)

	if len(validDenominations(req.Options.ChipSet)) == 0 {
		stack := CalculateInitialStack(nil, req.Format, hours)
		return Schedule{
			Stack:        stack,
			Levels:       GenerateFallbackBlinds(stack.StartingStack, req.DurationMins),
			UsedFallback: true,
		}
	}

	opts := req.Options
	if opts.TournamentFormat == "" {
		opts.TournamentFormat = req.Format
	}

	stack := CalculateInitialStack(opts.ChipSet, req.Format, hours)
	return Schedule{
		Stack:  stack,
		Levels: GenerateDynamicBlinds(req.PlayerCount, stack.StartingStack, req.DurationMins, opts),
	}
}

// capSmallBlind stops blind growth once it reaches maxSmallBlind.
func capSmallBlind(sb float64) float64 {
	if sb > maxSmallBlind {
		return maxSmallBlind
	}
	return sb
}
