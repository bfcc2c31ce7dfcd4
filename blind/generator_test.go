package blind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/weedbox/pokerdirector/chips"
)

func newScenarioOptions() GenerationOptions {
	opts := NewGenerationOptions()
	opts.LevelDurationMins = 20
	opts.BreakIntervalLevels = 4
	opts.BlindIncreaseFactor = 1.5
	opts.ChipSet = chips.ChipSet{25, 100, 500, 1000, 5000}
	return opts
}

func TestGenerateDynamicBlinds_Scenario(t *testing.T) {
	levels := GenerateDynamicBlinds(9, 10000, 240, newScenarioOptions())

	assert.Len(t, levels, 12)
	for idx, l := range levels {
		assert.Equal(t, idx+1, l.Level)
		if l.Level%4 == 0 {
			assert.True(t, l.IsBreak, "level %d", l.Level)
			assert.Equal(t, int64(0), l.SmallBlind)
			assert.Equal(t, int64(0), l.BigBlind)
			assert.Equal(t, int64(0), l.Ante)
		} else {
			assert.False(t, l.IsBreak, "level %d", l.Level)
			assert.Equal(t, 20, l.DurationMins)
		}
	}

	// 10000 * 0.005 = 50, rounded with the 25 chip
	assert.Equal(t, int64(50), levels[0].SmallBlind)
	assert.Equal(t, int64(100), levels[0].BigBlind)

	expectedSB := []int64{50, 75, 100, 0, 200, 300, 400, 0, 500, 1000, 1000, 0}
	for idx, l := range levels {
		assert.Equal(t, expectedSB[idx], l.SmallBlind, "level %d", l.Level)
	}
}

func TestGenerateDynamicBlinds_Properties(t *testing.T) {
	formats := []string{Format_Standard, Format_Deepstack, Format_Turbo, Format_Hyper}
	chipSets := []chips.ChipSet{
		{25, 100, 500, 1000, 5000},
		{1, 5, 25, 100},
		{5, 25, 100, 500},
	}

	for _, format := range formats {
		for _, cs := range chipSets {
			for _, target := range []int{60, 180, 245, 600} {
				opts := NewGenerationOptions()
				opts.TournamentFormat = format
				opts.ChipSet = cs
				opts.IncludeAnte = true
				opts.AnteStartLevel = 3

				levels := GenerateDynamicBlinds(30, 20000, target, opts)
				assert.Len(t, levels, target/opts.LevelDurationMins)

				var lastBB int64
				for idx, l := range levels {
					assert.Equal(t, idx+1, l.Level)
					if l.IsBreak {
						assert.Equal(t, 0, l.Level%opts.BreakIntervalLevels)
						assert.Equal(t, int64(0), l.BigBlind)
						continue
					}
					assert.GreaterOrEqual(t, l.BigBlind, lastBB)
					assert.Equal(t, l.SmallBlind*2, l.BigBlind)
					if l.Level < 3 {
						assert.Equal(t, int64(0), l.Ante)
					} else {
						assert.Greater(t, l.Ante, int64(0))
					}
					lastBB = l.BigBlind
				}

				total := TotalDurationMins(levels)
				assert.LessOrEqual(t, total, target)
				// breaks are shorter than regular levels
				breaks := target / opts.LevelDurationMins / opts.BreakIntervalLevels
				assert.GreaterOrEqual(t, total, target-opts.LevelDurationMins-breaks*(opts.LevelDurationMins-DefaultBreakDurationMins))
			}
		}
	}
}

func TestGenerateDynamicBlinds_Idempotent(t *testing.T) {
	opts := newScenarioOptions()
	assert.Equal(t,
		GenerateDynamicBlinds(9, 10000, 240, opts),
		GenerateDynamicBlinds(9, 10000, 240, opts),
	)
}

func TestGenerateDynamicBlinds_Degenerate(t *testing.T) {
	opts := newScenarioOptions()

	assert.Empty(t, GenerateDynamicBlinds(9, 10000, 0, opts))
	assert.Empty(t, GenerateDynamicBlinds(9, 10000, -30, opts))
	assert.Empty(t, GenerateDynamicBlinds(9, 10000, 19, opts))
	assert.NotNil(t, GenerateDynamicBlinds(9, 10000, 19, opts))

	opts.LevelDurationMins = 0
	assert.Empty(t, GenerateDynamicBlinds(9, 10000, 240, opts))
}

func TestGenerateDynamicBlinds_EmptyChipSet(t *testing.T) {
	opts := newScenarioOptions()
	opts.ChipSet = nil

	levels := GenerateDynamicBlinds(9, 10000, 60, opts)
	assert.Len(t, levels, 3)
	assert.Equal(t, int64(50), levels[0].SmallBlind)
}

func TestGenerateDynamicBlinds_NoBreaks(t *testing.T) {
	opts := newScenarioOptions()
	opts.BreakIntervalLevels = 0

	levels := GenerateDynamicBlinds(9, 10000, 240, opts)
	for _, l := range levels {
		assert.False(t, l.IsBreak)
	}
}

func TestGenerateDynamicBlinds_ShortLevelsShortBreaks(t *testing.T) {
	opts := newScenarioOptions()
	opts.LevelDurationMins = 10

	levels := GenerateDynamicBlinds(9, 10000, 80, opts)
	assert.True(t, levels[3].IsBreak)
	assert.Equal(t, 10, levels[3].DurationMins)
}

func TestGenerateDynamicBlinds_FactorFromFormat(t *testing.T) {
	opts := newScenarioOptions()
	opts.BlindIncreaseFactor = 0
	opts.TournamentFormat = Format_Hyper
	opts.BreakIntervalLevels = 0

	levels := GenerateDynamicBlinds(9, 10000, 60, opts)
	assert.Equal(t, []int64{50, 100, 200}, []int64{levels[0].SmallBlind, levels[1].SmallBlind, levels[2].SmallBlind})

	assert.Equal(t, 1.3, GrowthFactor(Format_Deepstack))
	assert.Equal(t, 1.7, GrowthFactor(Format_Turbo))
	assert.Equal(t, 1.5, GrowthFactor(Format_Standard))
}

func TestGenerateDynamicBlinds_LongHyperScheduleStaysBounded(t *testing.T) {
	opts := newScenarioOptions()
	opts.TournamentFormat = Format_Hyper
	opts.BlindIncreaseFactor = 0
	opts.LevelDurationMins = 5

	levels := GenerateDynamicBlinds(9, 10000, 600, opts)
	assert.Len(t, levels, 120)

	var lastBB int64
	for _, l := range levels {
		if l.IsBreak {
			continue
		}
		assert.Positive(t, l.SmallBlind, "level %d", l.Level)
		assert.Equal(t, l.SmallBlind*2, l.BigBlind, "level %d", l.Level)
		assert.GreaterOrEqual(t, l.BigBlind, lastBB, "level %d", l.Level)
		lastBB = l.BigBlind
	}

	last := levels[len(levels)-1]
	if last.IsBreak {
		last = levels[len(levels)-2]
	}
	assert.LessOrEqual(t, float64(last.SmallBlind), maxSmallBlind+float64(opts.ChipSet.Largest()))
}

func TestGenerateFallbackBlinds_LongScheduleStaysBounded(t *testing.T) {
	levels := GenerateFallbackBlinds(5000, MaxDurationMins)

	var lastBB int64
	for _, l := range levels {
		if l.IsBreak {
			continue
		}
		assert.Positive(t, l.BigBlind, "level %d", l.Level)
		assert.Equal(t, l.SmallBlind*2, l.BigBlind, "level %d", l.Level)
		assert.GreaterOrEqual(t, l.BigBlind, lastBB, "level %d", l.Level)
		lastBB = l.BigBlind
	}
}

func TestScheduleRequest_Validate(t *testing.T) {
	assert.NoError(t, ScheduleRequest{PlayerCount: 9, DurationMins: 240}.Validate())
	assert.ErrorIs(t, ScheduleRequest{PlayerCount: 0, DurationMins: 240}.Validate(), ErrInvalidSchedule)
	assert.ErrorIs(t, ScheduleRequest{PlayerCount: 9, DurationMins: -1}.Validate(), ErrInvalidSchedule)
	assert.ErrorIs(t, ScheduleRequest{PlayerCount: 9, DurationMins: MaxDurationMins + 1}.Validate(), ErrDurationTooLong)
	assert.ErrorIs(t, ScheduleRequest{PlayerCount: MaxPlayerCount + 1, DurationMins: 240}.Validate(), ErrTooManyPlayers)
}

func TestGenerateFallbackBlinds(t *testing.T) {
	levels := GenerateFallbackBlinds(5000, 160)

	assert.Len(t, levels, 8)
	assert.True(t, levels[3].IsBreak)
	assert.True(t, levels[7].IsBreak)
	assert.Equal(t, int64(25), levels[0].SmallBlind)
	assert.Equal(t, int64(38), levels[1].SmallBlind)
	for _, l := range levels {
		if !l.IsBreak {
			assert.Equal(t, 20, l.DurationMins)
		}
	}

	assert.Empty(t, GenerateFallbackBlinds(5000, 10))
}

func TestBuildSchedule(t *testing.T) {
	opts := newScenarioOptions()
	schedule := BuildSchedule(ScheduleRequest{
		PlayerCount:  9,
		DurationMins: 240,
		Format:       Format_Standard,
		Options:      opts,
	})
	assert.False(t, schedule.UsedFallback)
	assert.Equal(t, int64(5000), schedule.Stack.StartingStack)
	assert.Len(t, schedule.Levels, 12)

	opts.ChipSet = nil
	schedule = BuildSchedule(ScheduleRequest{
		PlayerCount:  9,
		DurationMins: 240,
		Format:       Format_Standard,
		Options:      opts,
	})
	assert.True(t, schedule.UsedFallback)
	assert.Equal(t, int64(5000), schedule.Stack.StartingStack)
	assert.Len(t, schedule.Levels, 12)
}
