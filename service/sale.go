package service

import (
	"strings"
	"time"
	"unicode"

	"cinema-box-office/model"
)

// TicketLedger is the append-only persistence boundary for sales.
type TicketLedger interface {
	Append(ticket model.Ticket) error
}

// SaleState tracks where one purchase is in its flow. Committed and
// Cancelled are terminal; a new purchase is a new Sale.
type SaleState int

const (
	StateCollectingBuyer SaleState = iota
	StateSelectingMovie
	StateSelectingTime
	StateSelectingSeat
	StateSelectingType
	StateAwaitingConfirmation
	StateCommitted
	StateCancelled
)

// Sale orchestrates one purchase from buyer identification through
// committed persistence. Validation failures are user-correctable and
// leave the sale in its current step for a re-prompt; storage failures
// abort the transaction.
type Sale struct {
	catalog *Catalog
	pricing *Pricing
	seats   *SeatSession
	ledger  TicketLedger
	now     func() time.Time

	state      SaleState
	buyer      string
	movie      model.Movie
	showtime   string
	seat       string
	ticketType string
	price      float64
}

func NewSale(catalog *Catalog, pricing *Pricing, seats *SeatSession, ledger TicketLedger) *Sale {
	return &Sale{
		catalog: catalog,
		pricing: pricing,
		seats:   seats,
		ledger:  ledger,
		now:     time.Now,
		state:   StateCollectingBuyer,
	}
}

func (s *Sale) State() SaleState   { return s.state }
func (s *Sale) Buyer() string      { return s.buyer }
func (s *Sale) Movie() model.Movie { return s.movie }
func (s *Sale) Showtime() string   { return s.showtime }
func (s *Sale) Seat() string       { return s.seat }
func (s *Sale) TicketType() string { return s.ticketType }
func (s *Sale) Price() float64     { return s.price }

// ValidateBuyerName checks the buyer-name policy: non-empty after
// trimming, no digits, every character a letter or whitespace.
func ValidateBuyerName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return &InvalidInputError{Field: "name"}
	}
	for _, r := range trimmed {
		if unicode.IsDigit(r) {
			return &InvalidInputError{Field: "name"}
		}
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return &InvalidInputError{Field: "name"}
		}
	}
	return nil
}

// SetBuyer records the validated buyer name and advances to movie
// selection.
func (s *Sale) SetBuyer(name string) error {
	if s.state != StateCollectingBuyer {
		return ErrSaleClosed
	}
	if err := ValidateBuyerName(name); err != nil {
		return err
	}
	s.buyer = strings.TrimSpace(name)
	s.state = StateSelectingMovie
	return nil
}

// SelectMovie records a known catalog movie and advances to showtime
// selection.
func (s *Sale) SelectMovie(id int) error {
	if s.state != StateSelectingMovie {
		return ErrSaleClosed
	}
	if !s.catalog.Has(id) {
		return &InvalidInputError{Field: "movie"}
	}
	movie, err := s.catalog.Get(id)
	if err != nil {
		return err
	}
	s.movie = movie
	s.state = StateSelectingTime
	return nil
}

// SelectTime records one of the chosen movie's showtime labels.
func (s *Sale) SelectTime(label string) error {
	if s.state != StateSelectingTime {
		return ErrSaleClosed
	}
	if !s.movie.HasTime(label) {
		return &InvalidInputError{Field: "time"}
	}
	s.showtime = label
	s.state = StateSelectingSeat
	return nil
}

// SeatMap returns the availability map of the chosen showing, for
// rendering and selection.
func (s *Sale) SeatMap() (model.SeatMap, error) {
	if s.showtime == "" {
		return nil, ErrSaleClosed
	}
	return s.seats.Get(model.ShowingKey(s.movie.ID, s.showtime))
}

// CheckSeat validates a seat label against the chosen showing without
// recording it: unknown labels are invalid input, sold seats conflict.
func (s *Sale) CheckSeat(label string) error {
	seatMap, err := s.SeatMap()
	if err != nil {
		return err
	}
	free, ok := seatMap[label]
	if !ok {
		return &InvalidInputError{Field: "seat"}
	}
	if !free {
		return &ConflictError{Reason: "seat_taken"}
	}
	return nil
}

// SelectSeat records an available seat and advances to ticket-type
// selection. The seat map is not mutated; the seat is only taken at
// Confirm.
func (s *Sale) SelectSeat(label string) error {
	if s.state != StateSelectingSeat {
		return ErrSaleClosed
	}
	if err := s.CheckSeat(label); err != nil {
		return err
	}
	s.seat = label
	s.state = StateSelectingType
	return nil
}

// SelectType records a ticket type by its 1-based position in the
// pricing table's stable order.
func (s *Sale) SelectType(ordinal int) error {
	if s.state != StateSelectingType {
		return ErrSaleClosed
	}
	types := s.pricing.Types()
	if ordinal < 1 || ordinal > len(types) {
		return &InvalidInputError{Field: "ticket_type"}
	}
	name := types[ordinal-1]
	price, err := s.pricing.PriceOf(name)
	if err != nil {
		return err
	}
	s.ticketType = name
	s.price = price
	s.state = StateAwaitingConfirmation
	return nil
}

// Confirm commits the sale: the seat is marked sold and persisted, then
// the ticket is appended to the ledger. The seat commit happens before
// the append; if the append fails afterwards the seat stays sold with
// no ticket record, and nothing is rolled back. A storage failure on
// either write closes the sale; it cannot be retried. A failed seat
// commit additionally reverts the in-memory seat, so the state never
// diverges from disk.
func (s *Sale) Confirm() (model.Ticket, error) {
	if s.state != StateAwaitingConfirmation {
		return model.Ticket{}, ErrSaleClosed
	}
	key := model.ShowingKey(s.movie.ID, s.showtime)
	seatMap, err := s.seats.Get(key)
	if err != nil {
		return model.Ticket{}, err
	}
	if !seatMap[s.seat] {
		return model.Ticket{}, &ConflictError{Reason: "seat_taken"}
	}

	seatMap[s.seat] = false
	if err := s.seats.Commit(); err != nil {
		seatMap[s.seat] = true
		s.state = StateCancelled
		return model.Ticket{}, err
	}

	ticket := model.Ticket{
		Timestamp: s.now().Format(model.TimestampLayout),
		Movie:     s.movie.Title,
		Time:      s.showtime,
		Seat:      s.seat,
		Type:      s.ticketType,
		Price:     s.price,
		Buyer:     s.buyer,
	}
	if err := s.ledger.Append(ticket); err != nil {
		s.state = StateCancelled
		return model.Ticket{}, err
	}
	s.state = StateCommitted
	return ticket, nil
}

// Cancel discards the sale. Cancellation is checked before any
// mutation, so nothing was written.
func (s *Sale) Cancel() {
	if s.state == StateCommitted {
		return
	}
	s.state = StateCancelled
}
