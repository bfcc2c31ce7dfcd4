package chips

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundToPokerChips(t *testing.T) {
	cs := ChipSet{25, 100, 500, 1000, 5000}

	assert.Equal(t, int64(50), RoundToPokerChips(50, cs))
	assert.Equal(t, int64(100), RoundToPokerChips(110, cs))
	assert.Equal(t, int64(200), RoundToPokerChips(180, cs))
	assert.Equal(t, int64(1000), RoundToPokerChips(1200, cs))
	assert.Equal(t, int64(2000), RoundToPokerChips(1500, cs))
	assert.Equal(t, int64(25), RoundToPokerChips(10, cs))
	assert.Equal(t, int64(25), RoundToPokerChips(0, cs))
	assert.Equal(t, int64(25), RoundToPokerChips(-40, cs))
}

func TestRoundToPokerChips_Unsorted(t *testing.T) {
	assert.Equal(t, int64(200), RoundToPokerChips(180, ChipSet{5000, 25, 1000, 100, 500}))
}

func TestRoundToPokerChips_EmptyChipSet(t *testing.T) {
	assert.Equal(t, int64(25), RoundToPokerChips(3, nil))
	assert.Equal(t, int64(100), RoundToPokerChips(110, ChipSet{}))
}

func TestRoundToPokerChips_AlwaysMultipleOfDenomination(t *testing.T) {
	cs := ChipSet{1, 5, 25, 100}
	for v := 1.0; v < 5000; v += 7.3 {
		r := RoundToPokerChips(v, cs)
		assert.Greater(t, r, int64(0))

		divisible := false
		for _, d := range cs {
			if r%d == 0 {
				divisible = true
			}
		}
		assert.True(t, divisible, "value %v rounded to %d", v, r)
	}
}

func TestParse(t *testing.T) {
	cs, err := Parse("500, 25 100,100")
	assert.NoError(t, err)
	assert.Equal(t, ChipSet{25, 100, 500}, cs)

	_, err = Parse("25,abc")
	assert.ErrorIs(t, err, ErrInvalidChipSet)

	_, err = Parse("25,-5")
	assert.ErrorIs(t, err, ErrInvalidChipSet)

	_, err = Parse("  ")
	assert.ErrorIs(t, err, ErrInvalidChipSet)

	assert.Equal(t, DefaultChipSet, ParseOrDefault("nope"))
}

func TestChipSet_Normalize(t *testing.T) {
	assert.Equal(t, ChipSet{5, 25}, ChipSet{25, 0, 5, -1, 25}.Normalize())
	assert.Equal(t, DefaultChipSet, ChipSet{0}.Normalize())
	assert.Equal(t, int64(5), ChipSet{25, 5}.Smallest())
	assert.Equal(t, int64(25), ChipSet{25, 5}.Largest())
	assert.Equal(t, "25,100", ChipSet{25, 100}.String())
}
