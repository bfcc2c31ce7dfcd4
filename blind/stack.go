package blind

import (
	"math"
	"strings"

	"github.com/weedbox/pokerdirector/chips"
)

type StackSizingResult struct {
	StartingStack int64 `json:"starting_stack"`
	SmallBlind    int64 `json:"small_blind"`
	BigBlind      int64 `json:"big_blind"`
}

var fallbackStack = StackSizingResult{
	StartingStack: 5000,
	SmallBlind:    25,
	BigBlind:      50,
}

// stack-to-big-blind ratio per format
var stackRatios = map[string]int64{
	Format_Freezeout:  150,
	Format_Rebuy:      100,
	Format_Bounty:     150,
	Format_Deepstack:  250,
	Format_Turbo:      75,
	Format_HyperTurbo: 50,
	Format_SitAndGo:   100,
	Format_MTT:        150,
}

const defaultStackRatio int64 = 100

// DurationHours is a helper for the optional duration argument of CalculateInitialStack.
func DurationHours(h float64) *float64 {
	return &h
}

/*
CalculateInitialStack 計算起始籌碼與第一級盲注
  - 沒有任何籌碼面額時回傳 {5000, 25, 50}
  - 大盲固定為小盲的兩倍
  - 起始籌碼 = 大盲 * 比例，再依最大面額分級取整
  - 不得低於賽制對應的最低籌碼
*/
func CalculateInitialStack(denominations []int64, format string, durationHours *float64) StackSizingResult {
	cs := validDenominations(denominations)
	if len(cs) == 0 {
		return fallbackStack
	}

	smallest := cs.Smallest()
	largest := cs.Largest()

	bb := smallest * 2
	sb := smallest
	if durationHours != nil && *durationHours < 3 && smallest < 5 {
		if smallest*5 > bb {
			bb = smallest * 5
		}
		sb = bb / 2
		bb = sb * 2
	}

	ratio := StackRatio(format, durationHours)
	stack := roundStack(bb*ratio, smallest, largest)

	minimum := MinimumStack(denominations, format)
	if stack < minimum {
		stack = minimum
	}

	return StackSizingResult{
		StartingStack: stack,
		SmallBlind:    sb,
		BigBlind:      bb,
	}
}

// StackRatio returns the target starting-stack to big-blind ratio.
func StackRatio(format string, durationHours *float64) int64 {
	ratio, ok := stackRatios[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		ratio = defaultStackRatio
	}

	if durationHours == nil {
		return ratio
	}

	switch h := *durationHours; {
	case h <= 2:
		adjusted := int64(math.Floor(float64(ratio) * 0.7))
		if adjusted < 50 {
			adjusted = 50
		}
		return adjusted
	case h > 5:
		return int64(math.Floor(float64(ratio) * 1.3))
	}

	return ratio
}

// MinimumStack is the smallest starting stack accepted for the format.
func MinimumStack(denominations []int64, format string) int64 {
	cs := validDenominations(denominations)
	if len(cs) == 0 {
		return fallbackStack.StartingStack
	}

	minimum := float64(cs.Smallest() * 100)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case Format_Deepstack:
		minimum *= 2
	case Format_HyperTurbo:
		minimum *= 0.6
	}

	return int64(math.Floor(minimum))
}

func roundStack(stack, smallest, largest int64) int64 {
	var unit int64
	switch {
	case largest <= 10:
		unit = smallest * 20
	case largest <= 50:
		if 25%smallest == 0 {
			unit = 25
		} else {
			unit = 20
		}
	case largest <= 500:
		unit = 100
	case largest >= 1000:
		unit = 1000
	default:
		unit = 500
	}

	rounded := int64(math.Round(float64(stack)/float64(unit))) * unit
	if rounded < unit {
		rounded = unit
	}
	return rounded
}

func validDenominations(denominations []int64) chips.ChipSet {
	cs := make(chips.ChipSet, 0, len(denominations))
	for _, d := range denominations {
		if d > 0 {
			cs = append(cs, d)
		}
	}
	return cs
}
