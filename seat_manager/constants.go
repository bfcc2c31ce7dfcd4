package seat_manager

const (
	UnsetSeatID = -1

	DefaultMaxSeats = 9
)
