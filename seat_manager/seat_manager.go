package seat_manager

import (
	"errors"
	"math/rand"
	"sort"
)

var (
	ErrNotEnoughSeats    = errors.New("seat manager: no enough seats")
	ErrInvalidTableCount = errors.New("seat manager: invalid table count")
	ErrPlayerNotFound    = errors.New("seat manager: player not found")
	ErrTableNotFound     = errors.New("seat manager: table not found")
	ErrDuplicatePlayers  = errors.New("seat manager: duplicate players detected")
	ErrLastTable         = errors.New("seat manager: unable to break the last table")
)

// SeatPlayer is the minimal player view needed to seat someone.
type SeatPlayer struct {
	ID           string `json:"id"`
	IsEliminated bool   `json:"is_eliminated"`
}

func (sp SeatPlayer) Active() bool {
	return !sp.IsEliminated
}

type Seat struct {
	PlayerID string `json:"player_id"`
	Seat     int    `json:"seat"` // 1-based
}

type Table struct {
	Number   int    `json:"number"`
	Seats    []Seat `json:"seats"`
	MaxSeats int    `json:"max_seats"`
}

// Move records a player relocated by balancing or a table break.
type Move struct {
	PlayerID  string `json:"player_id"`
	FromTable int    `json:"from_table"`
	FromSeat  int    `json:"from_seat"`
	ToTable   int    `json:"to_table"`
	ToSeat    int    `json:"to_seat"`
}

func (t Table) Count() int {
	return len(t.Seats)
}

func (t Table) Clone() Table {
	seats := make([]Seat, len(t.Seats))
	copy(seats, t.Seats)
	t.Seats = seats
	return t
}

func (t Table) HasEmptySeat() bool {
	return t.MaxSeats <= 0 || len(t.Seats) < t.MaxSeats
}

// FirstEmptySeat returns the lowest free seat number, UnsetSeatID when the table is full.
func (t Table) FirstEmptySeat() int {
	taken := make(map[int]bool, len(t.Seats))
	for _, s := range t.Seats {
		taken[s.Seat] = true
	}

	limit := t.MaxSeats
	if limit <= 0 {
		limit = len(t.Seats) + 1
	}
	for seat := 1; seat <= limit; seat++ {
		if !taken[seat] {
			return seat
		}
	}
	return UnsetSeatID
}

func (t Table) SeatOf(playerID string) int {
	for _, s := range t.Seats {
		if s.PlayerID == playerID {
			return s.Seat
		}
	}
	return UnsetSeatID
}

func (t *Table) sortSeats() {
	sort.Slice(t.Seats, func(i, j int) bool {
		return t.Seats[i].Seat < t.Seats[j].Seat
	})
}

func CloneTables(tables []Table) []Table {
	cloned := make([]Table, len(tables))
	for i, t := range tables {
		cloned[i] = t.Clone()
	}
	return cloned
}

// TablesNeeded is the smallest table count that seats playerCount players.
func TablesNeeded(playerCount, maxSeats int) int {
	if playerCount <= 0 {
		return 0
	}
	if maxSeats <= 0 {
		maxSeats = DefaultMaxSeats
	}
	return (playerCount + maxSeats - 1) / maxSeats
}

/*
AssignPlayersToTables 將存活玩家平均分配到各桌
  - 只分配未淘汰的玩家
  - 依序輪流入桌，各桌人數差距不超過 1
  - 座位從 1 開始編號
*/
func AssignPlayersToTables(players []SeatPlayer, numTables, maxSeats int) ([]Table, error) {
	if numTables <= 0 {
		return nil, ErrInvalidTableCount
	}
	if maxSeats <= 0 {
		maxSeats = DefaultMaxSeats
	}

	active := make([]SeatPlayer, 0, len(players))
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if !p.Active() {
			continue
		}
		if seen[p.ID] {
			return nil, ErrDuplicatePlayers
		}
		seen[p.ID] = true
		active = append(active, p)
	}

	if len(active) > numTables*maxSeats {
		return nil, ErrNotEnoughSeats
	}

	tables := make([]Table, numTables)
	for i := range tables {
		tables[i] = Table{
			Number:   i + 1,
			Seats:    make([]Seat, 0, maxSeats),
			MaxSeats: maxSeats,
		}
	}

	for idx, p := range active {
		t := &tables[idx%numTables]
		t.Seats = append(t.Seats, Seat{
			PlayerID: p.ID,
			Seat:     len(t.Seats) + 1,
		})
	}

	return tables, nil
}

// RandomAssignPlayersToTables shuffles the seat draw before assigning.
func RandomAssignPlayersToTables(players []SeatPlayer, numTables, maxSeats int, r *rand.Rand) ([]Table, error) {
	shuffled := make([]SeatPlayer, len(players))
	copy(shuffled, players)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return AssignPlayersToTables(shuffled, numTables, maxSeats)
}

/*
BalanceTables 平衡各桌人數
  - 少於 2 桌時不處理
  - 每次將人數最多那桌座位號最大的玩家移到人數最少那桌的第一個空位
  - 直到各桌人數差距不超過 1，已經平衡的桌次不會異動
*/
func BalanceTables(tables []Table) ([]Table, []Move) {
	balanced := CloneTables(tables)
	moves := make([]Move, 0)

	if len(balanced) < 2 {
		return balanced, moves
	}

	for {
		maxIdx, minIdx := 0, 0
		for i, t := range balanced {
			if t.Count() > balanced[maxIdx].Count() {
				maxIdx = i
			}
			if t.Count() < balanced[minIdx].Count() {
				minIdx = i
			}
		}

		if balanced[maxIdx].Count()-balanced[minIdx].Count() <= 1 {
			break
		}

		move, ok := moveLastSeated(&balanced[maxIdx], &balanced[minIdx])
		if !ok {
			break
		}
		moves = append(moves, move)
	}

	return balanced, moves
}

/*
BreakTable 拆桌
  - 將指定桌次的玩家依序移到人數最少且有空位的桌次
  - 拆完後移除該桌
*/
func BreakTable(tables []Table, number int) ([]Table, []Move, error) {
	if len(tables) < 2 {
		return CloneTables(tables), []Move{}, ErrLastTable
	}

	cloned := CloneTables(tables)
	breakIdx := -1
	for i, t := range cloned {
		if t.Number == number {
			breakIdx = i
			break
		}
	}
	if breakIdx == -1 {
		return cloned, []Move{}, ErrTableNotFound
	}

	capacity := 0
	for i, t := range cloned {
		if i == breakIdx {
			continue
		}
		if t.MaxSeats <= 0 {
			capacity += len(cloned[breakIdx].Seats)
		} else {
			capacity += t.MaxSeats - t.Count()
		}
	}
	if capacity < cloned[breakIdx].Count() {
		return CloneTables(tables), []Move{}, ErrNotEnoughSeats
	}

	moves := make([]Move, 0, cloned[breakIdx].Count())
	for cloned[breakIdx].Count() > 0 {
		targetIdx := -1
		for i, t := range cloned {
			if i == breakIdx || !t.HasEmptySeat() {
				continue
			}
			if targetIdx == -1 || t.Count() < cloned[targetIdx].Count() {
				targetIdx = i
			}
		}
		if targetIdx == -1 {
			break
		}

		move, ok := moveLastSeated(&cloned[breakIdx], &cloned[targetIdx])
		if !ok {
			break
		}
		moves = append(moves, move)
	}

	remaining := append(cloned[:breakIdx:breakIdx], cloned[breakIdx+1:]...)
	return remaining, moves, nil
}

// CanBreakTable reports whether the remaining players fit into one table fewer.
func CanBreakTable(tables []Table) bool {
	if len(tables) < 2 {
		return false
	}

	players := 0
	maxSeats := 0
	for _, t := range tables {
		players += t.Count()
		if t.MaxSeats > maxSeats {
			maxSeats = t.MaxSeats
		}
	}
	return TablesNeeded(players, maxSeats) < len(tables)
}

// SmallestTable returns the number of the table with the fewest players.
func SmallestTable(tables []Table) int {
	if len(tables) == 0 {
		return UnsetSeatID
	}

	smallest := tables[0]
	for _, t := range tables[1:] {
		if t.Count() < smallest.Count() {
			smallest = t
		}
	}
	return smallest.Number
}

func RemovePlayer(tables []Table, playerID string) ([]Table, error) {
	cloned := CloneTables(tables)
	for i := range cloned {
		for j, s := range cloned[i].Seats {
			if s.PlayerID == playerID {
				cloned[i].Seats = append(cloned[i].Seats[:j], cloned[i].Seats[j+1:]...)
				return cloned, nil
			}
		}
	}
	return cloned, ErrPlayerNotFound
}

// Locate finds the table number and seat of a player.
func Locate(tables []Table, playerID string) (int, int, error) {
	for _, t := range tables {
		if seat := t.SeatOf(playerID); seat != UnsetSeatID {
			return t.Number, seat, nil
		}
	}
	return UnsetSeatID, UnsetSeatID, ErrPlayerNotFound
}

// DiffMoves lists the players whose table or seat changed between two layouts.
func DiffMoves(before, after []Table) []Move {
	moves := make([]Move, 0)
	for _, t := range after {
		for _, s := range t.Seats {
			fromTable, fromSeat, err := Locate(before, s.PlayerID)
			if err != nil {
				continue
			}
			if fromTable == t.Number && fromSeat == s.Seat {
				continue
			}
			moves = append(moves, Move{
				PlayerID:  s.PlayerID,
				FromTable: fromTable,
				FromSeat:  fromSeat,
				ToTable:   t.Number,
				ToSeat:    s.Seat,
			})
		}
	}
	return moves
}
