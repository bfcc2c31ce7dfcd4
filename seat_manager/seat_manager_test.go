package seat_manager

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newSeatPlayers(count int) []SeatPlayer {
	players := make([]SeatPlayer, 0, count)
	for i := 1; i <= count; i++ {
		players = append(players, SeatPlayer{ID: fmt.Sprintf("P%d", i)})
	}
	return players
}

func tableCounts(tables []Table) []int {
	counts := make([]int, 0, len(tables))
	for _, t := range tables {
		counts = append(counts, t.Count())
	}
	return counts
}

func TestAssignPlayersToTables(t *testing.T) {
	players := newSeatPlayers(20)
	players[3].IsEliminated = true

	tables, err := AssignPlayersToTables(players, 3, 9)
	assert.NoError(t, err)
	assert.Len(t, tables, 3)
	assert.Equal(t, []int{7, 6, 6}, tableCounts(tables))

	for _, table := range tables {
		for idx, seat := range table.Seats {
			assert.Equal(t, idx+1, seat.Seat)
			assert.NotEqual(t, "P4", seat.PlayerID)
		}
	}

	number, seat, err := Locate(tables, "P1")
	assert.NoError(t, err)
	assert.Equal(t, 1, number)
	assert.Equal(t, 1, seat)

	number, seat, err = Locate(tables, "P5")
	assert.NoError(t, err)
	// P4 is skipped so P5 is the 4th active player
	assert.Equal(t, 1, number)
	assert.Equal(t, 2, seat)

	_, _, err = Locate(tables, "P4")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestAssignPlayersToTables_Errors(t *testing.T) {
	_, err := AssignPlayersToTables(newSeatPlayers(5), 0, 9)
	assert.ErrorIs(t, err, ErrInvalidTableCount)

	_, err = AssignPlayersToTables(newSeatPlayers(19), 2, 9)
	assert.ErrorIs(t, err, ErrNotEnoughSeats)

	_, err = AssignPlayersToTables([]SeatPlayer{{ID: "A"}, {ID: "A"}}, 1, 9)
	assert.ErrorIs(t, err, ErrDuplicatePlayers)
}

func TestRandomAssignPlayersToTables(t *testing.T) {
	players := newSeatPlayers(18)

	a, err := RandomAssignPlayersToTables(players, 2, 9, rand.New(rand.NewSource(42)))
	assert.NoError(t, err)
	b, err := RandomAssignPlayersToTables(players, 2, 9, rand.New(rand.NewSource(42)))
	assert.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, []int{9, 9}, tableCounts(a))
	// input untouched
	assert.Equal(t, "P1", players[0].ID)
}

func TestBalanceTables(t *testing.T) {
	tables := []Table{
		{Number: 1, MaxSeats: 9, Seats: []Seat{{"A", 1}, {"B", 2}, {"C", 3}, {"D", 4}, {"E", 5}, {"F", 6}, {"G", 7}}},
		{Number: 2, MaxSeats: 9, Seats: []Seat{{"H", 1}, {"I", 3}}},
		{Number: 3, MaxSeats: 9, Seats: []Seat{{"J", 1}, {"K", 2}, {"L", 3}, {"M", 4}}},
	}

	balanced, moves := BalanceTables(tables)
	counts := tableCounts(balanced)
	assert.Equal(t, 13, counts[0]+counts[1]+counts[2])
	for _, a := range counts {
		for _, b := range counts {
			assert.LessOrEqual(t, a-b, 1)
		}
	}

	assert.NotEmpty(t, moves)
	assert.Equal(t, Move{PlayerID: "G", FromTable: 1, FromSeat: 7, ToTable: 2, ToSeat: 2}, moves[0])

	// source untouched
	assert.Equal(t, 7, tables[0].Count())
}

func TestBalanceTables_AlreadyBalanced(t *testing.T) {
	tables := []Table{
		{Number: 1, MaxSeats: 9, Seats: []Seat{{"A", 1}, {"B", 5}, {"C", 9}}},
		{Number: 2, MaxSeats: 9, Seats: []Seat{{"D", 2}, {"E", 4}}},
	}

	balanced, moves := BalanceTables(tables)
	assert.Empty(t, moves)
	assert.Equal(t, tables, balanced)
}

func TestBalanceTables_SingleTable(t *testing.T) {
	tables := []Table{
		{Number: 1, MaxSeats: 9, Seats: []Seat{{"A", 1}}},
	}

	balanced, moves := BalanceTables(tables)
	assert.Empty(t, moves)
	assert.Equal(t, tables, balanced)

	balanced, moves = BalanceTables(nil)
	assert.Empty(t, moves)
	assert.Empty(t, balanced)
}

func TestBreakTable(t *testing.T) {
	tables := []Table{
		{Number: 1, MaxSeats: 9, Seats: []Seat{{"A", 1}, {"B", 2}, {"C", 3}, {"D", 4}}},
		{Number: 2, MaxSeats: 9, Seats: []Seat{{"E", 1}, {"F", 2}, {"G", 3}}},
		{Number: 3, MaxSeats: 9, Seats: []Seat{{"H", 1}, {"I", 2}}},
	}
	assert.True(t, CanBreakTable(tables))
	assert.Equal(t, 3, SmallestTable(tables))

	remaining, moves, err := BreakTable(tables, 3)
	assert.NoError(t, err)
	assert.Len(t, remaining, 2)
	assert.Len(t, moves, 2)
	assert.Equal(t, []int{5, 4}, tableCounts(remaining))

	for _, m := range moves {
		assert.Equal(t, 3, m.FromTable)
	}

	_, _, err = BreakTable(tables, 7)
	assert.ErrorIs(t, err, ErrTableNotFound)

	_, _, err = BreakTable(tables[:1], 1)
	assert.ErrorIs(t, err, ErrLastTable)
}

func TestBreakTable_NotEnoughSeats(t *testing.T) {
	tables := []Table{
		{Number: 1, MaxSeats: 2, Seats: []Seat{{"A", 1}, {"B", 2}}},
		{Number: 2, MaxSeats: 2, Seats: []Seat{{"C", 1}}},
	}
	assert.False(t, CanBreakTable(tables))

	_, _, err := BreakTable(tables, 2)
	assert.ErrorIs(t, err, ErrNotEnoughSeats)
}

func TestRemovePlayer(t *testing.T) {
	tables := []Table{
		{Number: 1, MaxSeats: 9, Seats: []Seat{{"A", 1}, {"B", 2}}},
	}

	updated, err := RemovePlayer(tables, "A")
	assert.NoError(t, err)
	assert.Equal(t, 1, updated[0].Count())
	assert.Equal(t, 2, tables[0].Count())
	assert.Equal(t, 1, updated[0].FirstEmptySeat())

	_, err = RemovePlayer(tables, "Z")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestTablesNeeded(t *testing.T) {
	assert.Equal(t, 0, TablesNeeded(0, 9))
	assert.Equal(t, 1, TablesNeeded(9, 9))
	assert.Equal(t, 2, TablesNeeded(10, 9))
	assert.Equal(t, 3, TablesNeeded(27, 0))
}

func TestDiffMoves(t *testing.T) {
	before := []Table{
		{Number: 1, MaxSeats: 9, Seats: []Seat{{"A", 1}, {"B", 2}, {"C", 3}}},
		{Number: 2, MaxSeats: 9, Seats: []Seat{{"D", 1}}},
	}
	after, moves := BalanceTables(before)

	diff := DiffMoves(before, after)
	assert.Equal(t, moves, diff)
	assert.Len(t, diff, 1)
	assert.Equal(t, "C", diff[0].PlayerID)
	assert.Equal(t, 2, diff[0].ToTable)

	assert.Empty(t, DiffMoves(after, after))
}
