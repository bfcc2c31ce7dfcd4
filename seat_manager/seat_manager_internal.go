package seat_manager

func moveLastSeated(from, to *Table) (Move, bool) {
	if from.Count() == 0 {
		return Move{}, false
	}

	toSeat := to.FirstEmptySeat()
	if toSeat == UnsetSeatID {
		return Move{}, false
	}

	from.sortSeats()
	last := from.Seats[len(from.Seats)-1]
	from.Seats = from.Seats[:len(from.Seats)-1]

	to.Seats = append(to.Seats, Seat{
		PlayerID: last.PlayerID,
		Seat:     toSeat,
	})
	to.sortSeats()

	return Move{
		PlayerID:  last.PlayerID,
		FromTable: from.Number,
		FromSeat:  last.Seat,
		ToTable:   to.Number,
		ToSeat:    toSeat,
	}, true
}
