package pokerdirector

import (
	"github.com/weedbox/pokerdirector/seat_manager"
)

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	cloned := *v
	return &cloned
}

func intPtr(v int) *int {
	return &v
}

func (s *TournamentState) recalculatePrizePool() {
	s.TotalPrizePool = s.PrizePool().NetPrizePool
}

// syncSeats copies table/seat assignments from the tables onto the players.
func (s *TournamentState) syncSeats() {
	for idx := range s.Players {
		tableNumber, seat, err := seat_manager.Locate(s.Tables, s.Players[idx].ID)
		if err != nil {
			s.Players[idx].TableNumber = nil
			s.Players[idx].SeatNumber = nil
			continue
		}
		s.Players[idx].TableNumber = intPtr(tableNumber)
		s.Players[idx].SeatNumber = intPtr(seat)
	}
}

func (s TournamentState) seatPlayers() []seat_manager.SeatPlayer {
	players := make([]seat_manager.SeatPlayer, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, seat_manager.SeatPlayer{
			ID:           p.ID,
			IsEliminated: p.IsEliminated,
		})
	}
	return players
}

func (s *TournamentState) clampLevel() {
	if len(s.Settings.Levels) == 0 {
		s.CurrentLevel = 0
		return
	}
	if s.CurrentLevel >= len(s.Settings.Levels) {
		s.CurrentLevel = len(s.Settings.Levels) - 1
	}
	if s.CurrentLevel < 0 {
		s.CurrentLevel = 0
	}
}
