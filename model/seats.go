package model

import "fmt"

// SeatMap tracks availability for one showing: seat label -> true when
// the seat is still free. The key set is fixed at creation (the full
// row by column product); only the booleans change.
type SeatMap map[string]bool

// SeatState is the full occupancy snapshot for the process, keyed by
// showing key.
type SeatState map[string]SeatMap

// ShowingKey derives the identifier used to index seat maps.
func ShowingKey(movieID int, showtime string) string {
	return fmt.Sprintf("%d_%s", movieID, showtime)
}

// SeatLabel derives the identifier for one physical seat, e.g. "A1".
func SeatLabel(row string, col int) string {
	return fmt.Sprintf("%s%d", row, col)
}

// NewSeatMap builds a fresh map with every seat available.
func NewSeatMap(rows []string, cols int) SeatMap {
	seats := make(SeatMap, len(rows)*cols)
	for _, r := range rows {
		for c := 1; c <= cols; c++ {
			seats[SeatLabel(r, c)] = true
		}
	}
	return seats
}

// Available counts the seats still free.
func (s SeatMap) Available() int {
	n := 0
	for _, free := range s {
		if free {
			n++
		}
	}
	return n
}
