package chips

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrInvalidChipSet = errors.New("chips: invalid chip set")
)

// ChipSet is the list of physical chip denominations available at the venue.
type ChipSet []int64

var DefaultChipSet = ChipSet{25, 100, 500, 1000, 5000}

/*
Normalize 整理籌碼組合
  - 移除非正數面額與重複面額
  - 由小到大排序
  - 若結果為空則回傳 DefaultChipSet
*/
func (cs ChipSet) Normalize() ChipSet {
	seen := make(map[int64]bool, len(cs))
	normalized := make(ChipSet, 0, len(cs))
	for _, d := range cs {
		if d <= 0 || seen[d] {
			continue
		}
		seen[d] = true
		normalized = append(normalized, d)
	}

	if len(normalized) == 0 {
		normalized = append(normalized, DefaultChipSet...)
	}

	sort.Slice(normalized, func(i, j int) bool { return normalized[i] < normalized[j] })
	return normalized
}

func (cs ChipSet) Smallest() int64 {
	return cs.Normalize()[0]
}

func (cs ChipSet) Largest() int64 {
	n := cs.Normalize()
	return n[len(n)-1]
}

func (cs ChipSet) String() string {
	parts := make([]string, 0, len(cs))
	for _, d := range cs {
		parts = append(parts, strconv.FormatInt(d, 10))
	}
	return strings.Join(parts, ",")
}

// Parse reads a custom chip set such as "25, 100, 500".
func Parse(s string) (ChipSet, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, ErrInvalidChipSet
	}

	cs := make(ChipSet, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil || v <= 0 {
			return nil, ErrInvalidChipSet
		}
		cs = append(cs, v)
	}

	return cs.Normalize(), nil
}

// ParseOrDefault degrades to DefaultChipSet when the string cannot be parsed.
func ParseOrDefault(s string) ChipSet {
	cs, err := Parse(s)
	if err != nil {
		return append(ChipSet{}, DefaultChipSet...)
	}
	return cs
}

/*
RoundToPokerChips 將數值取整為可用籌碼組合表示的數額
  - value <= 0 時回傳最小面額
  - 以不大於 value 的最大面額為單位四捨五入
  - 沒有任何面額不大於 value 時回傳最小面額
*/
func RoundToPokerChips(value float64, chipset ChipSet) int64 {
	cs := chipset.Normalize()
	smallest := cs[0]

	if value <= 0 || math.IsNaN(value) {
		return smallest
	}

	unit := int64(0)
	for i := len(cs) - 1; i >= 0; i-- {
		if float64(cs[i]) <= value {
			unit = cs[i]
			break
		}
	}

	if unit == 0 {
		return smallest
	}

	rounded := int64(math.Round(value/float64(unit))) * unit
	if rounded <= 0 {
		return smallest
	}
	return rounded
}
