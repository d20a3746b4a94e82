package service

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cinema-box-office/model"
	"cinema-box-office/store"
)

type saleFixture struct {
	catalog    *Catalog
	pricing    *Pricing
	session    *SeatSession
	ledger     *store.Ledger
	ledgerPath string
}

func newSaleFixture(t *testing.T) saleFixture {
	t.Helper()
	dir := t.TempDir()
	catalog := NewCatalog([]model.Movie{{ID: 1, Title: "Test Movie", Times: []string{"14:00"}}})
	pricing := NewPricing([]TicketType{{Name: "Adult", Price: 60.0}, {Name: "Student", Price: 40.0}})
	session := NewSeatSession(store.NewSeatStore(filepath.Join(dir, "seats.json")), []string{"A", "B"}, 2, catalog)
	if err := session.LoadOrInit(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	ledgerPath := filepath.Join(dir, "tickets.csv")
	return saleFixture{
		catalog:    catalog,
		pricing:    pricing,
		session:    session,
		ledger:     store.NewLedger(ledgerPath),
		ledgerPath: ledgerPath,
	}
}

func (f saleFixture) newSale() *Sale {
	sale := NewSale(f.catalog, f.pricing, f.session, f.ledger)
	sale.now = func() time.Time {
		return time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	}
	return sale
}

func (f saleFixture) ledgerLines(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(f.ledgerPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func runToConfirmation(t *testing.T, sale *Sale) {
	t.Helper()
	if err := sale.SetBuyer("Ada Lovelace"); err != nil {
		t.Fatalf("set buyer: %v", err)
	}
	if err := sale.SelectMovie(1); err != nil {
		t.Fatalf("select movie: %v", err)
	}
	if err := sale.SelectTime("14:00"); err != nil {
		t.Fatalf("select time: %v", err)
	}
	if err := sale.SelectSeat("A1"); err != nil {
		t.Fatalf("select seat: %v", err)
	}
	if err := sale.SelectType(1); err != nil {
		t.Fatalf("select type: %v", err)
	}
}

func TestValidateBuyerName(t *testing.T) {
	valid := []string{"Ada", "Ada Lovelace", " Ada Lovelace ", "Çiğdem Yılmaz"}
	for _, name := range valid {
		if err := ValidateBuyerName(name); err != nil {
			t.Errorf("expected %q valid, got %v", name, err)
		}
	}

	invalid := []string{"", "   ", "Ada1", "4da", "Ada-Lovelace", "Ada_Lovelace", "Ada!"}
	for _, name := range invalid {
		err := ValidateBuyerName(name)
		if err == nil {
			t.Errorf("expected %q rejected", name)
			continue
		}
		var fieldErr *InvalidInputError
		if !errors.As(err, &fieldErr) || fieldErr.Field != "name" {
			t.Errorf("expected InvalidInput(name) for %q, got %v", name, err)
		}
	}
}

func TestSale_HappyPath(t *testing.T) {
	f := newSaleFixture(t)
	sale := f.newSale()
	runToConfirmation(t, sale)

	if sale.State() != StateAwaitingConfirmation {
		t.Fatalf("expected AwaitingConfirmation, got %d", sale.State())
	}

	ticket, err := sale.Confirm()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if sale.State() != StateCommitted {
		t.Fatalf("expected Committed, got %d", sale.State())
	}
	if ticket.Timestamp != "2026-08-29 10:00:00" {
		t.Fatalf("unexpected timestamp: %s", ticket.Timestamp)
	}

	seats, err := f.session.Get("1_14:00")
	if err != nil {
		t.Fatal(err)
	}
	if seats["A1"] {
		t.Fatal("expected A1 sold")
	}
	if !seats["A2"] || !seats["B1"] || !seats["B2"] {
		t.Fatal("expected other seats untouched")
	}

	lines := f.ledgerLines(t)
	if len(lines) != 2 {
		t.Fatalf("expected header plus 1 row, got %d lines", len(lines))
	}
	if lines[1] != "2026-08-29 10:00:00,Test Movie,14:00,A1,Adult,60.00,Ada Lovelace" {
		t.Fatalf("unexpected ledger row: %s", lines[1])
	}
}

func TestSale_SoldSeatRejectedWithoutMutation(t *testing.T) {
	f := newSaleFixture(t)
	first := f.newSale()
	runToConfirmation(t, first)
	if _, err := first.Confirm(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	second := f.newSale()
	if err := second.SetBuyer("Grace Hopper"); err != nil {
		t.Fatal(err)
	}
	if err := second.SelectMovie(1); err != nil {
		t.Fatal(err)
	}
	if err := second.SelectTime("14:00"); err != nil {
		t.Fatal(err)
	}

	err := second.SelectSeat("A1")
	var conflict *ConflictError
	if !errors.As(err, &conflict) || conflict.Reason != "seat_taken" {
		t.Fatalf("expected Conflict(seat_taken), got %v", err)
	}
	if second.State() != StateSelectingSeat {
		t.Fatal("expected sale to stay at seat selection for a re-prompt")
	}

	seats, err := f.session.Get("1_14:00")
	if err != nil {
		t.Fatal(err)
	}
	if !seats["A2"] || !seats["B1"] || !seats["B2"] {
		t.Fatal("expected state unchanged by rejected selection")
	}
	if lines := f.ledgerLines(t); len(lines) != 2 {
		t.Fatalf("expected no new ledger rows, got %d lines", len(lines))
	}
}

func TestSale_CancelWritesNothing(t *testing.T) {
	f := newSaleFixture(t)
	sale := f.newSale()
	runToConfirmation(t, sale)

	sale.Cancel()
	if sale.State() != StateCancelled {
		t.Fatalf("expected Cancelled, got %d", sale.State())
	}

	seats, err := f.session.Get("1_14:00")
	if err != nil {
		t.Fatal(err)
	}
	for label, free := range seats {
		if !free {
			t.Fatalf("expected every seat still free, %s was sold", label)
		}
	}
	if lines := f.ledgerLines(t); lines != nil {
		t.Fatalf("expected no ledger file, got %d lines", len(lines))
	}

	if _, err := sale.Confirm(); !errors.Is(err, ErrSaleClosed) {
		t.Fatalf("expected ErrSaleClosed after cancellation, got %v", err)
	}
}

func TestSale_ValidationRejections(t *testing.T) {
	f := newSaleFixture(t)
	sale := f.newSale()

	if err := sale.SetBuyer("Ada Lovelace"); err != nil {
		t.Fatal(err)
	}

	err := sale.SelectMovie(42)
	var fieldErr *InvalidInputError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "movie" {
		t.Fatalf("expected InvalidInput(movie), got %v", err)
	}
	if err := sale.SelectMovie(1); err != nil {
		t.Fatal(err)
	}

	err = sale.SelectTime("23:59")
	if !errors.As(err, &fieldErr) || fieldErr.Field != "time" {
		t.Fatalf("expected InvalidInput(time), got %v", err)
	}
	if err := sale.SelectTime("14:00"); err != nil {
		t.Fatal(err)
	}

	err = sale.SelectSeat("Z9")
	if !errors.As(err, &fieldErr) || fieldErr.Field != "seat" {
		t.Fatalf("expected InvalidInput(seat), got %v", err)
	}
	if err := sale.SelectSeat("B2"); err != nil {
		t.Fatal(err)
	}

	err = sale.SelectType(3)
	if !errors.As(err, &fieldErr) || fieldErr.Field != "ticket_type" {
		t.Fatalf("expected InvalidInput(ticket_type), got %v", err)
	}
	err = sale.SelectType(0)
	if !errors.As(err, &fieldErr) || fieldErr.Field != "ticket_type" {
		t.Fatalf("expected InvalidInput(ticket_type), got %v", err)
	}
	if err := sale.SelectType(2); err != nil {
		t.Fatal(err)
	}
	if sale.TicketType() != "Student" || sale.Price() != 40.0 {
		t.Fatalf("expected Student at 40.00, got %s at %v", sale.TicketType(), sale.Price())
	}
}

func TestSale_OperationsOutOfOrder(t *testing.T) {
	f := newSaleFixture(t)
	sale := f.newSale()

	if err := sale.SelectMovie(1); !errors.Is(err, ErrSaleClosed) {
		t.Fatalf("expected ErrSaleClosed before buyer is set, got %v", err)
	}
	if _, err := sale.Confirm(); !errors.Is(err, ErrSaleClosed) {
		t.Fatalf("expected ErrSaleClosed before selections, got %v", err)
	}
}

type failingSeatStore struct {
	inner *store.SeatStore
	fail  bool
}

func (f *failingSeatStore) Exists() bool                   { return f.inner.Exists() }
func (f *failingSeatStore) Load() (model.SeatState, error) { return f.inner.Load() }

func (f *failingSeatStore) Save(state model.SeatState) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.inner.Save(state)
}

type failingLedger struct{}

func (failingLedger) Append(model.Ticket) error { return errors.New("disk full") }

func TestSale_SeatCommitFailureAbortsSale(t *testing.T) {
	dir := t.TempDir()
	catalog := NewCatalog([]model.Movie{{ID: 1, Title: "Test Movie", Times: []string{"14:00"}}})
	pricing := NewPricing([]TicketType{{Name: "Adult", Price: 60.0}})
	seatStore := &failingSeatStore{inner: store.NewSeatStore(filepath.Join(dir, "seats.json"))}
	session := NewSeatSession(seatStore, []string{"A", "B"}, 2, catalog)
	if err := session.LoadOrInit(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	ledgerPath := filepath.Join(dir, "tickets.csv")

	sale := NewSale(catalog, pricing, session, store.NewLedger(ledgerPath))
	runToConfirmation(t, sale)

	seatStore.fail = true
	if _, err := sale.Confirm(); err == nil {
		t.Fatal("expected storage error from failed commit")
	}
	if sale.State() != StateCancelled {
		t.Fatalf("expected sale closed after failed commit, got %d", sale.State())
	}

	seats, err := session.Get("1_14:00")
	if err != nil {
		t.Fatal(err)
	}
	if !seats["A1"] {
		t.Fatal("expected seat reverted after failed commit")
	}
	if _, err := os.Stat(ledgerPath); !os.IsNotExist(err) {
		t.Fatal("expected no ledger file after failed commit")
	}

	if _, err := sale.Confirm(); !errors.Is(err, ErrSaleClosed) {
		t.Fatalf("expected ErrSaleClosed on retry, got %v", err)
	}

	// Once storage recovers, a fresh sale can take the same seat.
	seatStore.fail = false
	next := NewSale(catalog, pricing, session, store.NewLedger(ledgerPath))
	runToConfirmation(t, next)
	if _, err := next.Confirm(); err != nil {
		t.Fatalf("expected fresh sale to succeed, got %v", err)
	}
}

func TestSale_LedgerAppendFailureClosesSale(t *testing.T) {
	f := newSaleFixture(t)
	sale := NewSale(f.catalog, f.pricing, f.session, failingLedger{})
	runToConfirmation(t, sale)

	if _, err := sale.Confirm(); err == nil {
		t.Fatal("expected storage error from failed append")
	}
	if sale.State() != StateCancelled {
		t.Fatalf("expected sale closed after failed append, got %d", sale.State())
	}

	// The seat commit precedes the append and is not rolled back.
	seats, err := f.session.Get("1_14:00")
	if err != nil {
		t.Fatal(err)
	}
	if seats["A1"] {
		t.Fatal("expected seat to stay sold after failed append")
	}

	if _, err := sale.Confirm(); !errors.Is(err, ErrSaleClosed) {
		t.Fatalf("expected ErrSaleClosed on retry, got %v", err)
	}
}

func TestSale_SecondBuyerSharesSession(t *testing.T) {
	f := newSaleFixture(t)
	first := f.newSale()
	runToConfirmation(t, first)
	if _, err := first.Confirm(); err != nil {
		t.Fatal(err)
	}

	second := f.newSale()
	if err := second.SetBuyer("Grace Hopper"); err != nil {
		t.Fatal(err)
	}
	if err := second.SelectMovie(1); err != nil {
		t.Fatal(err)
	}
	if err := second.SelectTime("14:00"); err != nil {
		t.Fatal(err)
	}
	if err := second.SelectSeat("A2"); err != nil {
		t.Fatal(err)
	}
	if err := second.SelectType(2); err != nil {
		t.Fatal(err)
	}
	if _, err := second.Confirm(); err != nil {
		t.Fatal(err)
	}

	lines := f.ledgerLines(t)
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[2], "A2,Student,40.00,Grace Hopper") {
		t.Fatalf("unexpected second row: %s", lines[2])
	}
}
