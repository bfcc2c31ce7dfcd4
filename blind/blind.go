package blind

import (
	"errors"
	"time"
)

var (
	ErrLevelNotFound = errors.New("blind: level not found")
)

const (
	// AnteDisabled is the AnteStartLevel sentinel that turns antes off.
	AnteDisabled = -1

	// LevelEndAtUnset marks levels that were already played.
	LevelEndAtUnset int64 = -1

	DefaultBreakDurationMins = 15
)

// Tournament formats
const (
	Format_Standard   = "standard"
	Format_Freezeout  = "freezeout"
	Format_Rebuy      = "rebuy"
	Format_Bounty     = "bounty"
	Format_Deepstack  = "deepstack"
	Format_Turbo      = "turbo"
	Format_Hyper      = "hyper"
	Format_HyperTurbo = "hyper-turbo"
	Format_SitAndGo   = "sit&go"
	Format_MTT        = "mtt"
)

type Level struct {
	Level        int   `json:"level"`
	SmallBlind   int64 `json:"small_blind"`
	BigBlind     int64 `json:"big_blind"`
	Ante         int64 `json:"ante"`
	DurationMins int   `json:"duration_mins"`
	IsBreak      bool  `json:"is_break"`
}

func (l Level) DurationSeconds() int {
	return int((time.Duration(l.DurationMins) * time.Minute).Seconds())
}

func NewBreakLevel(level int, durationMins int) Level {
	return Level{
		Level:        level,
		DurationMins: durationMins,
		IsBreak:      true,
	}
}

// TotalDurationMins sums the duration of every level including breaks.
func TotalDurationMins(levels []Level) int {
	total := 0
	for _, l := range levels {
		total += l.DurationMins
	}
	return total
}

/*
LevelEndAts 計算每個級別的預計結束時間 (unix seconds)
  - 目前級別的結束時間 = now + 剩餘秒數
  - 之後的級別依序累加各自的時長
  - 已經結束的級別回傳 LevelEndAtUnset
*/
func LevelEndAts(now int64, levels []Level, currentIdx int, timeRemaining int) []int64 {
	endAts := make([]int64, len(levels))
	for i := range levels {
		switch {
		case i < currentIdx:
			endAts[i] = LevelEndAtUnset
		case i == currentIdx:
			endAts[i] = now + int64(timeRemaining)
		default:
			endAts[i] = endAts[i-1] + int64(levels[i].DurationSeconds())
		}
	}
	return endAts
}

// NextBreakIndex returns the index of the first break after currentIdx, or -1.
func NextBreakIndex(levels []Level, currentIdx int) int {
	for i := currentIdx + 1; i < len(levels); i++ {
		if levels[i].IsBreak {
			return i
		}
	}
	return -1
}

func LevelAt(levels []Level, idx int) (Level, error) {
	if idx < 0 || idx >= len(levels) {
		return Level{}, ErrLevelNotFound
	}
	return levels[idx], nil
}

// Renumber rewrites level numbers so they are contiguous from 1.
func Renumber(levels []Level) []Level {
	renumbered := make([]Level, len(levels))
	for i, l := range levels {
		l.Level = i + 1
		if l.IsBreak {
			l.SmallBlind, l.BigBlind, l.Ante = 0, 0, 0
		}
		renumbered[i] = l
	}
	return renumbered
}
