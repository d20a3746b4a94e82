package model

import "strconv"

// TimestampLayout is the textual format of a ticket's sale moment.
const TimestampLayout = "2006-01-02 15:04:05"

// LedgerHeader is the fixed column order of the ticket ledger.
var LedgerHeader = []string{"timestamp", "movie", "time", "seat", "ticket_type", "price", "buyer"}

// Ticket is one finalized sale. It is created only at confirmation and
// never changed after that; its lifecycle ends at the ledger append.
type Ticket struct {
	Timestamp string
	Movie     string
	Time      string
	Seat      string
	Type      string
	Price     float64
	Buyer     string
}

// Row renders the ticket in ledger column order.
func (t Ticket) Row() []string {
	return []string{
		t.Timestamp,
		t.Movie,
		t.Time,
		t.Seat,
		t.Type,
		FormatPrice(t.Price),
		t.Buyer,
	}
}

// FormatPrice renders a price with two-decimal currency semantics.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}
